package label

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alitto/pond"
	"golang.org/x/exp/slices"

	"pvlkit/util/parse"
	"pvlkit/util/source"
)

// BatchError represents error thrown if some of input labels failed
type BatchError struct {
	Failed []string
	Total  int
}

// Error is used to satisfy golang error interface
func (e BatchError) Error() string {
	return fmt.Sprintf("Failed to process %v of %v labels: %v", len(e.Failed), e.Total, strings.Join(e.Failed, ", "))
}

// Batch processes every label of <inputs> as <job> says using cfg.Batch.Workers workers.
//
// A failed input is logged and does not stop the others. Returns BatchError listing failed inputs if any.
func (r repo) Batch(job Job, inputs []string) error {
	r.log.InfoFi("Processing labels", "amount", len(inputs), "workers", r.cfg.Batch.Workers)

	pool := pond.New(max(r.cfg.Batch.Workers, 1), 0, pond.MinWorkers(0))
	var mut sync.Mutex
	var failed []string

	for _, input := range inputs {
		input := input
		pool.Submit(func() {
			output := OutputPath(input, job.Output, len(inputs), job.JSON)
			if err := r.Process(job, input, output); err != nil {
				r.log.ErrorFi("Unable to process label", "input", input, "error", err)
				mut.Lock()
				failed = append(failed, input)
				mut.Unlock()
			}
		})
	}

	pool.StopAndWait()

	if len(failed) > 0 {
		slices.Sort(failed)
		return BatchError{Failed: failed, Total: len(inputs)}
	}
	return nil
}

// OutputPath returns path to write result of <input> to.
//
// With several inputs <output> is a directory and the result is named after the input, with ".json" extension if
// <asJSON> is set. Standard output is kept as is.
func OutputPath(input, output string, inputs int, asJSON bool) string {
	if output == source.Stdio || inputs < 2 {
		return output
	}
	name := parse.LastPathItem(filepath.ToSlash(input), "/")
	if asJSON {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	}
	return filepath.Join(output, name)
}
