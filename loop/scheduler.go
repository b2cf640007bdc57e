package loop

import (
	"context"
	"log"
	"sync"
	"time"
)

// Scheduler drives the controller on fixed intervals and exposes the manual
// trigger. The controller itself takes no locks; the mutex here is the host's
// guarantee that ticks against the same being never overlap.
type Scheduler struct {
	controller      *Controller
	tickInterval    time.Duration
	recoverInterval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewScheduler(controller *Controller, tickInterval, recoverInterval time.Duration) *Scheduler {
	return &Scheduler{
		controller:      controller,
		tickInterval:    tickInterval,
		recoverInterval: recoverInterval,
	}
}

// Start launches the periodic loop in a background goroutine
func (s *Scheduler) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		tick := time.NewTicker(s.tickInterval)
		defer tick.Stop()
		recovery := time.NewTicker(s.recoverInterval)
		defer recovery.Stop()

		log.Printf("[scheduler] Running: tick every %s, recovery every %s", s.tickInterval, s.recoverInterval)
		for {
			select {
			case <-s.stop:
				return
			case <-tick.C:
				if _, err := s.TriggerNow(context.Background()); err != nil {
					log.Printf("[scheduler] Tick failed: %v", err)
				}
			case <-recovery.C:
				s.mu.Lock()
				err := s.controller.RecoverEnergy(context.Background())
				s.mu.Unlock()
				if err != nil {
					log.Printf("[scheduler] Recovery failed: %v", err)
				}
			}
		}
	}()
}

// Stop halts the periodic loop and waits for the current tick to finish
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
}

// TriggerNow runs one tick immediately, serialized against scheduled ticks
func (s *Scheduler) TriggerNow(ctx context.Context) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Tick(ctx)
}
