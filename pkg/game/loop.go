package game

import (
	"context"
	"time"

	"github.com/gonewx/bastion/pkg/logger"
	"github.com/sirupsen/logrus"
)

// request is one call executed on the loop goroutine between ticks.
type request struct {
	fn   func(s *Simulation) error
	done chan error
}

// Loop is the single goroutine that owns a Simulation. It ticks at the
// catalog's tick rate and runs submitted calls between ticks, in arrival order.
type Loop struct {
	sim      *Simulation
	requests chan request
	stopped  chan struct{}
	log      *logrus.Entry

	// OnSnapshot receives a snapshot every SnapshotEvery ticks, on the loop
	// goroutine. It must not block.
	OnSnapshot    func(snap Snapshot)
	SnapshotEvery int
}

// NewLoop wraps sim. The loop does nothing until Run is called.
func NewLoop(sim *Simulation, log logrus.FieldLogger) *Loop {
	return &Loop{
		sim:           sim,
		requests:      make(chan request, 64),
		stopped:       make(chan struct{}),
		log:           logger.For(log, "Loop"),
		SnapshotEvery: 1,
	}
}

// Run ticks the simulation until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	rate := l.sim.Catalog().Simulation.TickRate
	step := time.Second / time.Duration(rate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	l.log.Infof("[Loop] running at %d ticks/s", rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.log.Info("[Loop] stopped")
			return ctx.Err()

		case req := <-l.requests:
			req.done <- req.fn(l.sim)

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := l.sim.Tick(dt); err != nil {
				l.log.WithError(err).Error("[Loop] tick failed")
				return err
			}
			l.publish()
		}
	}
}

func (l *Loop) publish() {
	if l.OnSnapshot == nil || l.SnapshotEvery <= 0 {
		return
	}
	if l.sim.TickCount()%uint64(l.SnapshotEvery) != 0 {
		return
	}
	l.OnSnapshot(l.sim.Snapshot())
}

// Do runs fn on the loop goroutine and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func(s *Simulation) error) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case l.requests <- req:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-l.stopped:
		select {
		case err := <-req.done:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
