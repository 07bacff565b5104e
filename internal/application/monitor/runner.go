package monitor

import (
	"context"
	"sync"
)

// loopRunner runs blocking work on its own goroutine and posts the
// continuation back to the event loop
type loopRunner struct {
	ctx    context.Context
	posted chan<- func()
	work   *sync.WaitGroup
}

func newLoopRunner(ctx context.Context, posted chan<- func()) loopRunner {
	return loopRunner{ctx: ctx, posted: posted, work: &sync.WaitGroup{}}
}

func (r loopRunner) Run(work func(), done func()) {
	r.work.Add(1)
	go func() {
		work()
		r.work.Done()
		r.post(done)
	}()
}

// post queues f for the event loop. It is dropped once the loop is gone.
func (r loopRunner) post(f func()) {
	select {
	case r.posted <- f:
	case <-r.ctx.Done():
	}
}

// wait blocks until every started work function has returned
func (r loopRunner) wait() {
	r.work.Wait()
}
