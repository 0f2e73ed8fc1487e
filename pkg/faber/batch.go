package faber

import (
	"os"
	"runtime"
	"sync"

	"github.com/faber-lang/faber/internal/codegen"
)

// BatchOptions configures a CompileBatch run: which target to generate and
// how wide the worker pool may grow.
type BatchOptions struct {
	Target      string
	Gen         codegen.Options
	Concurrency int // 0 means runtime.NumCPU()
}

// CompileBatch compiles each file in files independently and in parallel
// (SPEC_FULL.md §5) on a fixed pool of opts.Concurrency workers
// (runtime.NumCPU() when zero, capped at len(files)), with no shared mutable
// state across compile(file) invocations. Results preserve the input order
// regardless of completion order.
func CompileBatch(files []string, opts BatchOptions) []Result {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = compileOne(files[i], opts)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func compileOne(file string, opts BatchOptions) Result {
	content, err := os.ReadFile(file)
	if err != nil {
		return Result{File: file, ReadErr: err}
	}
	return Compile(file, string(content), opts.Target, opts.Gen)
}
