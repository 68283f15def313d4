package annotate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// sends one batch to a provider
type batchFunc func(ctx context.Context, items []Item) ([]Result, error)

func splitBatches(items []Item, size int) [][]Item {
	var batches [][]Item
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}

// runs batches one after another, stopping at the first failure
func runSequential(
	ctx context.Context,
	items []Item,
	size int,
	fn batchFunc,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	var all []Result
	for i, batch := range splitBatches(items, size) {
		results, err := fn(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i, err)
		}
		all = append(all, results...)
	}

	sortResults(all)
	return all, nil
}

// Items are split into batches of size. Each batch becomes one API request.
// Workers (up to concurrency) pull batches from a shared queue; the first
// failure cancels the rest.
func runConcurrent(
	ctx context.Context,
	items []Item,
	size int,
	concurrency int,
	fn batchFunc,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	batches := splitBatches(items, size)
	if len(batches) == 1 {
		return fn(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []Result
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					results, err := fn(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var all []Result
	var firstErr error
	done := 0
	for result := range resultChan {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("batch %d failed: %w", result.Index, result.Error)
				cancel()
			}
			continue
		}
		all = append(all, result.Results...)
		done++
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if done != len(batches) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("only %d of %d batches completed", done, len(batches))
	}

	sortResults(all)
	return all, nil
}
