// Package batch parses multiple OOXML packages concurrently, fanning work
// out across a fixed worker pool and collecting one result per input.
package batch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vortex/officedoc/pkg/officedoc"
	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// Result is one input's outcome. ID is a synthetic identifier generated by
// the worker when the input's parse finishes, independent of Path, so
// callers can correlate a Result back to its request without relying on
// filesystem paths (which need not be unique across batches run against
// temp-upload directories).
type Result struct {
	ID   string
	Path string
	Doc  *model.Document
	Err  error
}

// Pool parses a batch of OOXML files using a fixed number of workers.
type Pool struct {
	Workers int
}

// New returns a Pool with the given worker count, clamped to at least 1.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{Workers: workers}
}

// ParseFiles parses every path in paths concurrently and returns one
// Result per input, in no particular order. A per-file error is recorded
// on that file's Result rather than aborting the batch.
func (p *Pool) ParseFiles(paths []string) []Result {
	jobs := make(chan string, len(paths))
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)

	results := make(chan Result, len(paths))
	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				doc, err := officedoc.ParseFile(path)
				results <- Result{ID: uuid.NewString(), Path: path, Doc: doc, Err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, len(paths))
	for r := range results {
		out = append(out, r)
	}
	return out
}

// ParseBytes parses each entry of data concurrently, keyed by the caller's
// own label (e.g. an upload form field name or client-supplied request id)
// rather than a filesystem path.
func (p *Pool) ParseBytes(inputs map[string][]byte) []Result {
	type job struct {
		label string
		data  []byte
	}
	jobs := make(chan job, len(inputs))
	for label, data := range inputs {
		jobs <- job{label: label, data: data}
	}
	close(jobs)

	results := make(chan Result, len(inputs))
	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				doc, err := officedoc.ParseBytes(j.data)
				results <- Result{ID: uuid.NewString(), Path: j.label, Doc: doc, Err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, len(inputs))
	for r := range results {
		out = append(out, r)
	}
	return out
}
