package eval

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/opencost/filterkit/pkg/filterspec"
	"github.com/opencost/filterkit/pkg/log"
	"github.com/opencost/filterkit/pkg/metrics"
	"github.com/opencost/filterkit/pkg/util/json"
	"github.com/opencost/filterkit/pkg/util/worker"
)

// maxLineSize bounds a single JSON record on the input.
const maxLineSize = 16 * 1024 * 1024

// EvalOpts contain the configuration of a single evaluation run.
type EvalOpts struct {
	Config      string
	Input       string
	Output      string
	Workers     int
	BatchSize   int
	MetricsFile string

	// IgnoreDecodeErrors logs records which cannot be decoded instead of failing the run
	IgnoreDecodeErrors bool
}

type result struct {
	record  map[string]any
	matched bool
}

// Execute evaluates every record of the input against the chain described by opts.Config
// and writes the matched, transformed records to the output in input order. Lines which
// cannot be decoded are skipped and reported together in the returned error, unless
// opts.IgnoreDecodeErrors is set.
func Execute(ctx context.Context, opts *EvalOpts) error {
	defer log.Profile(time.Now(), "eval")

	spec, err := filterspec.Load(opts.Config)
	if err != nil {
		return err
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		log.Debugf("Loaded chain spec:\n%s", spew.Sdump(spec))
	}

	chain, err := filterspec.Compile(spec)
	if err != nil {
		return errors.Wrapf(err, "compiling %s", opts.Config)
	}

	recorder := metrics.NewRecorder()
	chain = chain.WithRecorder(recorder)

	in, closeIn, err := openInput(opts.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	runErr := Run(ctx, chain, in, out, opts.Workers, opts.BatchSize, recorder)

	var decodeErrs *multierror.Error
	if opts.IgnoreDecodeErrors && errors.As(runErr, &decodeErrs) {
		log.Warnf("Ignoring %d undecodable records: %s", decodeErrs.Len(), decodeErrs)
		runErr = nil
	}

	if opts.MetricsFile != "" {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			runErr = multierror.Append(runErr, err)
		}
	}

	return runErr
}

// Run streams JSON line records from r through chain using a pool of workers and writes
// the matched records to w. Records are pushed to the pool in ordered batches of batchSize
// so the output keeps the input order.
func Run(ctx context.Context, chain *filterspec.Chain, r io.Reader, w io.Writer, workers, batchSize int, recorder *metrics.Recorder) error {
	if batchSize < 1 {
		batchSize = 1
	}
	if recorder == nil {
		recorder = metrics.Default()
	}

	pool := worker.NewWorkerPool(workers, func(record map[string]any) result {
		out, ok := chain.Apply(record)
		return result{record: out, matched: ok}
	})
	defer pool.Shutdown()

	bw := bufio.NewWriter(w)
	encoder := json.NewEncoder(bw)

	var decodeErrs *multierror.Error
	var read, written int

	batch := make([]map[string]any, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		group := worker.NewOrderedGroup(pool, len(batch))
		for _, record := range batch {
			if err := group.Push(record); err != nil {
				return err
			}
		}

		for _, res := range group.Wait() {
			if !res.matched {
				continue
			}
			if err := encoder.Encode(res.record); err != nil {
				return errors.Wrap(err, "writing record")
			}
			written++
		}

		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++

		if err := ctx.Err(); err != nil {
			return err
		}

		text := scanner.Bytes()
		if len(bytes.TrimSpace(text)) == 0 {
			continue
		}

		read++
		recorder.RecordRead()

		var record map[string]any
		if err := json.Unmarshal(text, &record); err != nil {
			log.DedupedWarningf(5, "Skipping undecodable record: %s", err)
			decodeErrs = multierror.Append(decodeErrs, errors.Wrapf(err, "line %d", line))
			continue
		}
		if record == nil {
			decodeErrs = multierror.Append(decodeErrs, fmt.Errorf("line %d: record is not an object", line))
			continue
		}

		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading records")
	}
	if err := flush(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing records")
	}

	log.Infof("Evaluated %d records: %d written, %d undecodable", read, written, decodeErrs.Len())

	return decodeErrs.ErrorOrNil()
}

// Validate compiles the chain description at path and writes its normalized YAML form
// to w.
func Validate(path string, w io.Writer) error {
	spec, err := filterspec.Load(path)
	if err != nil {
		return err
	}

	if _, err := filterspec.Compile(spec); err != nil {
		return errors.Wrapf(err, "compiling %s", path)
	}

	b, err := spec.YAML()
	if err != nil {
		return errors.Wrap(err, "rendering chain spec")
	}

	_, err = w.Write(b)
	return err
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening input %s", path)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "creating output %s", path)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			log.Errorf("Closing output %s: %s", path, err)
		}
	}, nil
}
