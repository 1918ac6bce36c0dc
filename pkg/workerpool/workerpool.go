// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// Process runs process for every item on workerCount goroutines.
// With failFast the first error stops handing out work; items already running
// finish under the caller's ctx. Otherwise every item is processed and the
// errors are joined.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	failFast bool,
	process func(context.Context, T) error,
) error {
	if workerCount < 1 {
		workerCount = 1
	}

	var (
		mu       sync.Mutex
		errs     []error
		wg       sync.WaitGroup
		stopOnce sync.Once
	)
	stop := make(chan struct{})
	tasks := make(chan T)
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if err := process(ctx, item); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					if failFast {
						stopOnce.Do(func() { close(stop) })
					}
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case <-stop:
			break feed
		default:
		}
		select {
		case <-ctx.Done():
			break feed
		case <-stop:
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return ctx.Err()
}
