package rate

import (
	"context"
	"errors"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const perRequestTimeout = 5 * time.Second

var ErrNothingWarmed = errors.New("no base currency was refreshed")

type warmResult struct {
	Base  domain.CurrencyCode
	Count int
}

// WarmRates refreshes cached provider answers for every base currency, so that requests
// hitting the primary provider are served from cache while it is fresh.
func WarmRates(ctx context.Context, execID string, refresher adapters.RateRefresher, bases []domain.CurrencyCode) (int, error) {
	if len(bases) == 0 {
		logrus.Infof("Nothing to warm this time; execID: %s", execID)
		return 0, nil
	}

	// STEP 1: creating workQueue with base codes ("USD", "EUR", etc)
	workQueue := make(chan domain.CurrencyCode, len(bases))
	for _, base := range bases {
		workQueue <- base
	}
	close(workQueue)

	// STEP 2: running workers in parallel. Each worker puts its results into channel
	resultsCh := make(chan warmResult, len(bases))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runWorker(ctx, workerID, workQueue, refresher, resultsCh)
		}(i)
	}

	wg.Wait()
	close(resultsCh)

	// STEP 3: counting refreshed bases
	refreshed := 0
	quotes := 0
	for res := range resultsCh {
		refreshed++
		quotes += res.Count
	}

	if refreshed == 0 {
		return 0, ErrNothingWarmed
	}
	logrus.Infof("%d of %d bases were refreshed (%d quotes); execID %s", refreshed, len(bases), quotes, execID)
	return refreshed, nil
}

func runWorker(ctx context.Context, workerID int, workQueue <-chan domain.CurrencyCode, refresher adapters.RateRefresher, resultsCh chan<- warmResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case base, ok := <-workQueue:
			if !ok {
				return
			}
			processBase(ctx, workerID, base, refresher, resultsCh)
		}
	}
}

// processBase refreshes one base; failures are left for the next run
func processBase(ctx context.Context, workerID int, base domain.CurrencyCode, refresher adapters.RateRefresher, resultsCh chan<- warmResult) {
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	count, err := refresher.Refresh(reqCtx, base.String())
	if err != nil {
		logrus.Warnf("Base '%s' wasn't refreshed by Worker %d as external api call returned error: %s", base, workerID, err)
		return
	}
	resultsCh <- warmResult{Base: base, Count: count}
}
