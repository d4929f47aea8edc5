package eval

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencost/filterkit/pkg/filterspec"
	"github.com/opencost/filterkit/pkg/metrics"
	"github.com/opencost/filterkit/pkg/util/json"
)

const chainYAML = `
predicates:
  - kind: contains
    value:
      kind: pod
transforms:
  - kind: splitRange
    field: cpu
    into: cpuRange
    range:
      step: 2
`

func compile(t *testing.T) *filterspec.Chain {
	t.Helper()

	spec, err := filterspec.Parse([]byte(chainYAML))
	require.NoError(t, err)

	chain, err := filterspec.Compile(spec)
	require.NoError(t, err)
	return chain
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestRun_PreservesOrder(t *testing.T) {
	var in strings.Builder
	var expected []float64
	for i := 0; i < 50; i++ {
		kind := "pod"
		if i%3 == 0 {
			kind = "node"
		} else {
			expected = append(expected, float64(i))
		}
		fmt.Fprintf(&in, `{"kind":%q,"cpu":%d,"i":%d}`+"\n", kind, i%10, i)
	}

	recorder := metrics.NewRecorder()
	var out bytes.Buffer
	err := Run(context.Background(), compile(t), strings.NewReader(in.String()), &out, 4, 7, recorder)
	require.NoError(t, err)

	records := decodeLines(t, out.String())

	var actual []float64
	for _, record := range records {
		assert.Equal(t, "pod", record["kind"])
		actual = append(actual, record["i"].(float64))
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("output order: %s", diff)
	}

	assert.Equal(t, "4-6", records[3]["cpuRange"], "record i=5 has cpu 5")

	reg := recorder.Registry()
	expectedMetrics := `
# HELP filterkit_records_read_total filterkit_records_read_total Total number of records read
# TYPE filterkit_records_read_total counter
filterkit_records_read_total 50
# HELP filterkit_records_matched_total filterkit_records_matched_total Total number of records passing the chain predicates
# TYPE filterkit_records_matched_total counter
filterkit_records_matched_total 33
# HELP filterkit_records_dropped_total filterkit_records_dropped_total Total number of records rejected by the chain predicates
# TYPE filterkit_records_dropped_total counter
filterkit_records_dropped_total 17
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expectedMetrics),
		"filterkit_records_read_total", "filterkit_records_matched_total", "filterkit_records_dropped_total"))
}

func TestRun_AggregatesDecodeErrors(t *testing.T) {
	in := strings.Join([]string{
		`{"kind":"pod","cpu":1}`,
		`not json`,
		``,
		`[1,2]`,
		`null`,
		`{"kind":"pod","cpu":3}`,
	}, "\n")

	var out bytes.Buffer
	err := Run(context.Background(), compile(t), strings.NewReader(in), &out, 2, 10, metrics.NewRecorder())
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a multierror, got %T", err)
	require.Len(t, merr.Errors, 3)
	assert.Contains(t, merr.Errors[0].Error(), "line 2")
	assert.Contains(t, merr.Errors[1].Error(), "line 4")
	assert.Contains(t, merr.Errors[2].Error(), "line 5")

	records := decodeLines(t, out.String())
	require.Len(t, records, 2)
	assert.Equal(t, "0-2", records[0]["cpuRange"])
	assert.Equal(t, "2-4", records[1]["cpuRange"])
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, compile(t), strings.NewReader(`{"kind":"pod"}`+"\n"), &out, 1, 1, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecute_Files(t *testing.T) {
	dir := t.TempDir()

	config := filepath.Join(dir, "chain.yaml")
	input := filepath.Join(dir, "in.jsonl")
	output := filepath.Join(dir, "out.jsonl")
	metricsFile := filepath.Join(dir, "filterkit.prom")

	require.NoError(t, os.WriteFile(config, []byte(chainYAML), 0644))
	require.NoError(t, os.WriteFile(input, []byte("{\"kind\":\"pod\",\"cpu\":9}\n{\"kind\":\"node\",\"cpu\":1}\n"), 0644))

	err := Execute(context.Background(), &EvalOpts{
		Config:      config,
		Input:       input,
		Output:      output,
		Workers:     2,
		BatchSize:   16,
		MetricsFile: metricsFile,
	})
	require.NoError(t, err)

	b, err := os.ReadFile(output)
	require.NoError(t, err)

	records := decodeLines(t, string(b))
	require.Len(t, records, 1)
	assert.Equal(t, "8-10", records[0]["cpuRange"])

	m, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(m), "filterkit_records_read_total 2")
}

func TestExecute_IgnoreDecodeErrors(t *testing.T) {
	dir := t.TempDir()

	config := filepath.Join(dir, "chain.yaml")
	input := filepath.Join(dir, "in.jsonl")
	output := filepath.Join(dir, "out.jsonl")

	require.NoError(t, os.WriteFile(config, []byte(chainYAML), 0644))
	require.NoError(t, os.WriteFile(input, []byte("{oops\n{\"kind\":\"pod\",\"cpu\":1}\n"), 0644))

	opts := &EvalOpts{Config: config, Input: input, Output: output, Workers: 1, BatchSize: 1}
	require.Error(t, Execute(context.Background(), opts))

	opts.IgnoreDecodeErrors = true
	require.NoError(t, Execute(context.Background(), opts))

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, decodeLines(t, string(b)), 1)
}

func TestExecute_InvalidChain(t *testing.T) {
	config := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(config, []byte("predicates:\n  - kind: nope\n"), 0644))

	err := Execute(context.Background(), &EvalOpts{Config: config})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestValidate(t *testing.T) {
	config := filepath.Join(t.TempDir(), "chain.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"predicates":[{"kind":"equal","field":"a","value":"x"}]}`), 0644))

	var out bytes.Buffer
	require.NoError(t, Validate(config, &out))

	spec, err := filterspec.Parse(out.Bytes())
	require.NoError(t, err)
	require.Len(t, spec.Predicates, 1)
	assert.Equal(t, "x", spec.Predicates[0].Value)
}
