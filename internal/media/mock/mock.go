// Package mock provides a test double for media.Runner.
//
// Runner never starts a process. Set Handler to script per-command output,
// then inspect Calls to check what would have been executed.
//
// Example:
//
//	r := &mock.Runner{Handler: func(name string, args []string) ([]byte, []byte, error) {
//	    return []byte(`{"streams":[]}`), nil, nil
//	}}
//	p := &media.Prober{Runner: r, FFprobe: "ffprobe"}
package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/linuxmatters/autocut/internal/media"
)

// Call records a single invocation of Runner.Run.
type Call struct {
	Name string
	Args []string
}

// Runner is a mock implementation of media.Runner. It is safe for
// concurrent use.
type Runner struct {
	mu sync.Mutex

	// Handler produces the result of each call. If nil, Run returns empty
	// output and no error.
	Handler func(name string, args []string) (stdout, stderr []byte, err error)

	// Calls records every call to Run in the order they were made.
	Calls []Call
}

// Run records the call and delegates to Handler.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, Call{Name: name, Args: slices.Clone(args)})
	handler := r.Handler
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if handler == nil {
		return nil, nil, nil
	}
	return handler(name, args)
}

// CallCount returns the number of recorded calls. Thread-safe.
func (r *Runner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}

// Ensure Runner implements media.Runner at compile time.
var _ media.Runner = (*Runner)(nil)
