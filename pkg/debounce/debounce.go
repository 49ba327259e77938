// Package debounce coalesces bursts of requests so that only the latest one
// runs. A request submitted while another is still waiting out the window
// replaces it; a request already running is told to stop through its
// context.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrStopped is returned by Submit after Stop.
var ErrStopped = errors.New("debouncer stopped")

// Task is the debounced work. It should return early once ctx is done.
type Task func(ctx context.Context)

type job struct {
	id     string
	task   Task
	ctx    context.Context
	cancel context.CancelFunc
	timer  *time.Timer
}

// Debouncer is a single-slot, latest-wins queue.
type Debouncer struct {
	window       time.Duration
	onSuperseded func(id string)

	mu      sync.Mutex
	pending *job
	running *job
	stopped bool
	wg      sync.WaitGroup
}

// New creates a debouncer that waits window before running a task.
// onSuperseded, if not nil, is called with the id of every task dropped
// before it started.
func New(window time.Duration, onSuperseded func(id string)) *Debouncer {
	return &Debouncer{
		window:       window,
		onSuperseded: onSuperseded,
	}
}

// Submit schedules task under id, superseding the pending task and
// cancelling the running one.
func (d *Debouncer) Submit(id string, task Task) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return ErrStopped
	}

	dropped := d.dropPendingLocked()
	if d.running != nil {
		log.Debugf("Cancelling running request %s", d.running.id)
		d.running.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &job{id: id, task: task, ctx: ctx, cancel: cancel}
	d.pending = j
	d.wg.Add(1)
	j.timer = time.AfterFunc(d.window, func() { d.fire(j) })
	d.mu.Unlock()

	d.notify(dropped)
	return nil
}

// dropPendingLocked removes the pending job, if any, and returns its id.
func (d *Debouncer) dropPendingLocked() []string {
	if d.pending == nil {
		return nil
	}
	j := d.pending
	d.pending = nil
	j.timer.Stop()
	j.cancel()
	d.wg.Done()
	log.Debugf("Request %s superseded", j.id)
	return []string{j.id}
}

func (d *Debouncer) notify(ids []string) {
	if d.onSuperseded == nil {
		return
	}
	for _, id := range ids {
		d.onSuperseded(id)
	}
}

func (d *Debouncer) fire(j *job) {
	d.mu.Lock()
	if d.pending != j {
		// superseded after the timer went off
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.running = j
	d.mu.Unlock()

	defer d.wg.Done()
	defer j.cancel()

	j.task(j.ctx)

	d.mu.Lock()
	if d.running == j {
		d.running = nil
	}
	d.mu.Unlock()
}

// Wait blocks until every submitted task has run or been dropped.
func (d *Debouncer) Wait() {
	d.wg.Wait()
}

// Stop drops the pending task, cancels the running one and waits for it to
// return. Later calls to Submit fail with ErrStopped.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	dropped := d.dropPendingLocked()
	if d.running != nil {
		d.running.cancel()
	}
	d.mu.Unlock()

	d.notify(dropped)
	d.wg.Wait()
}
