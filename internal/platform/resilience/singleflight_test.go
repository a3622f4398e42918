package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_ConcurrentCallersShareOneRun(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, _ := g.Do("settle:2024-01-15", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "settled", nil
			})
			if err != nil {
				t.Errorf("shared call failed: %v", err)
				return
			}
			if got, _ := value.(string); got != "settled" {
				t.Errorf("caller got %q, want the shared result", got)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var counter int32

	for _, key := range []string{"settle:2024-01-15", "settle:2024-01-16"} {
		if _, err, _ := g.Do(key, func() (any, error) {
			atomic.AddInt32(&counter, 1)
			return nil, nil
		}); err != nil {
			t.Fatalf("call for %s failed: %v", key, err)
		}
	}

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected one run per slate key, got %d", got)
	}
}
