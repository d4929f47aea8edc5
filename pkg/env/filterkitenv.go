package env

import "github.com/opencost/filterkit/pkg/util/worker"

const (
	WorkersEnvVar     = "FILTERKIT_WORKERS"
	MetricsFileEnvVar = "FILTERKIT_METRICS_FILE"
	BatchSizeEnvVar   = "FILTERKIT_BATCH_SIZE"

	IgnoreDecodeErrorsEnvVar = "FILTERKIT_IGNORE_DECODE_ERRORS"
)

// GetWorkers returns the number of workers used to evaluate records concurrently, which
// defaults to the number of CPUs.
func GetWorkers() int {
	workers := GetInt(WorkersEnvVar, worker.OptimalWorkerCount())
	if workers < 1 {
		return 1
	}
	return workers
}

// GetMetricsFile returns the path metrics are written to after an evaluation, or the empty
// string when metrics should not be written.
func GetMetricsFile() string {
	return Get(MetricsFileEnvVar, "")
}

// GetBatchSize returns the number of records pushed to the worker pool as a single ordered
// group.
func GetBatchSize() int {
	size := GetInt(BatchSizeEnvVar, 256)
	if size < 1 {
		return 1
	}
	return size
}

// IsIgnoreDecodeErrors returns true when records which fail to decode should only be logged
// rather than failing the evaluation.
func IsIgnoreDecodeErrors() bool {
	return GetBool(IgnoreDecodeErrorsEnvVar, false)
}
