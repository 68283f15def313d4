package annotate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Index: i, Text: strings.Repeat("x", i+1)}
	}
	return items
}

// echoes each item's text upper-cased, in reverse order to exercise sorting
func echoBatch(calls *atomic.Int32) batchFunc {
	return func(ctx context.Context, items []Item) ([]Result, error) {
		calls.Add(1)
		results := make([]Result, 0, len(items))
		for i := len(items) - 1; i >= 0; i-- {
			results = append(results, Result{Index: items[i].Index, Text: strings.ToUpper(items[i].Text)})
		}
		return results, nil
	}
}

func expectedEcho(items []Item) []Result {
	want := make([]Result, len(items))
	for i, it := range items {
		want[i] = Result{Index: it.Index, Text: strings.ToUpper(it.Text)}
	}
	return want
}

func TestSplitBatches(t *testing.T) {
	batches := splitBatches(makeItems(7), 3)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[2]) != 1 || batches[2][0].Index != 6 {
		t.Errorf("unexpected last batch %+v", batches[2])
	}
}

func TestRunSequential(t *testing.T) {
	var calls atomic.Int32
	items := makeItems(5)

	got, err := runSequential(context.Background(), items, 2, echoBatch(&calls))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(expectedEcho(items), got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 requests, got %d", calls.Load())
	}
}

func TestRunSequentialStopsOnError(t *testing.T) {
	var calls int
	fn := func(ctx context.Context, items []Item) ([]Result, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("quota")
		}
		return []Result{{Index: items[0].Index, Text: "ok"}}, nil
	}

	_, err := runSequential(context.Background(), makeItems(6), 2, fn)
	if err == nil || !strings.Contains(err.Error(), "batch 1 failed: quota") {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
}

func TestRunConcurrent(t *testing.T) {
	var calls atomic.Int32
	items := makeItems(23)

	got, err := runConcurrent(context.Background(), items, 4, 3, echoBatch(&calls))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(expectedEcho(items), got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if calls.Load() != 6 {
		t.Errorf("expected 6 requests, got %d", calls.Load())
	}
}

func TestRunConcurrentBoundsWorkers(t *testing.T) {
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	fn := func(ctx context.Context, items []Item) ([]Result, error) {
		mu.Lock()
		active++
		maxSeen = max(maxSeen, active)
		mu.Unlock()

		defer func() {
			mu.Lock()
			active--
			mu.Unlock()
		}()
		return []Result{{Index: items[0].Index, Text: "ok"}}, nil
	}

	if _, err := runConcurrent(context.Background(), makeItems(20), 1, 2, fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxSeen > 2 {
		t.Errorf("expected at most 2 concurrent requests, saw %d", maxSeen)
	}
}

func TestRunConcurrentFailure(t *testing.T) {
	fn := func(ctx context.Context, items []Item) ([]Result, error) {
		if items[0].Index == 4 {
			return nil, errors.New("rate limited")
		}
		return []Result{{Index: items[0].Index, Text: "ok"}}, nil
	}

	_, err := runConcurrent(context.Background(), makeItems(8), 2, 2, fn)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunConcurrentCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := runConcurrent(ctx, makeItems(10), 2, 2, echoBatch(&calls))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	var calls atomic.Int32
	got, err := runConcurrent(context.Background(), nil, 5, 2, echoBatch(&calls))
	if err != nil || len(got) != 0 || calls.Load() != 0 {
		t.Errorf("expected empty result without requests, got %v %v %d", got, err, calls.Load())
	}
}
