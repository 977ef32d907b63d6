// Package parallel runs export jobs with a bounded worker count and
// reports progress as each one finishes.
package parallel

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/devdeck/internal/ui"
)

// Result holds the outcome of one job.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Output  string // file written, when the job produced one
	Elapsed time.Duration
}

// Task is one unit of work. Fn receives the group context and should
// stop early once it is cancelled.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (string, error)
}

// Runner executes tasks with a concurrency limit. A nil Progress
// silences per-task lines.
type Runner struct {
	Concurrency int
	Progress    io.Writer
	// FailFast cancels the remaining tasks after the first failure.
	FailFast bool
}

// Run is a convenience for Runner{Concurrency: n, Progress: w}.Run.
func Run(ctx context.Context, tasks []Task, concurrency int, w io.Writer) []Result {
	return Runner{Concurrency: concurrency, Progress: w}.Run(ctx, tasks)
}

// Run executes tasks and returns results in submission order. Tasks
// skipped because the context ended carry the context error.
func (r Runner) Run(ctx context.Context, tasks []Task) []Result {
	n := r.Concurrency
	if n < 1 {
		n = 4
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)

	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Name: task.Name, Err: err}
				return nil
			}
			start := time.Now()
			out, err := task.Fn(gctx)
			res := Result{Name: task.Name, OK: err == nil, Err: err, Output: out, Elapsed: time.Since(start)}

			mu.Lock()
			results[i] = res
			r.report(res)
			mu.Unlock()

			if err != nil && r.FailFast {
				return err
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (r Runner) report(res Result) {
	if r.Progress == nil {
		return
	}
	if res.Err != nil {
		fmt.Fprintf(r.Progress, "  %s %s %s\n", ui.StatusIcon(false), res.Name, ui.Bad.Sprintf("(%v)", res.Err))
		return
	}
	fmt.Fprintf(r.Progress, "  %s %s %s %s\n", ui.StatusIcon(true), res.Name,
		ui.Subtle.Sprint(res.Output), ui.Subtle.Sprintf("%dms", res.Elapsed.Milliseconds()))
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
