package rate

import (
	"context"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultWarmRatesJobDuration = 30 * time.Second

type Scheduler struct {
	refresher adapters.RateRefresher
	bases     []domain.CurrencyCode
	// -----
	warmRatesJobDuration time.Duration
	mu                   sync.Mutex
	sched                gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if _, warmErr := WarmRates(jobCtx, execID, s.refresher, s.bases); warmErr != nil {
			logrus.Errorf("Warm rates job %s failed: %v", execID, warmErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.warmRatesJobDuration),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)

	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(refresher adapters.RateRefresher, bases []domain.CurrencyCode, warmRatesJobDuration time.Duration) *Scheduler {
	if warmRatesJobDuration <= 0 {
		warmRatesJobDuration = defaultWarmRatesJobDuration
	}
	return &Scheduler{
		refresher:            refresher,
		bases:                slices.Clone(bases),
		warmRatesJobDuration: warmRatesJobDuration,
	}
}
