package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[[]byte]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			body, err, _ := g.Do("https://club.example.com/fixtures", func() ([]byte, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return []byte("[]"), nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if string(body) != "[]" {
				t.Errorf("unexpected body %q", body)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunAgain(t *testing.T) {
	var g SingleFlight[int]
	calls := 0

	for i := 0; i < 3; i++ {
		v, err, shared := g.Do("k", func() (int, error) {
			calls++
			return calls, nil
		})
		if err != nil || shared || v != i+1 {
			t.Fatalf("call %d: v=%d err=%v shared=%v", i, v, err, shared)
		}
	}
}

func TestSingleFlight_ZeroValueOnError(t *testing.T) {
	var g SingleFlight[[]string]
	v, err, _ := g.Do("k", func() ([]string, error) {
		return nil, errBoom
	})
	if err != errBoom || v != nil {
		t.Fatalf("expected error passthrough, got v=%v err=%v", v, err)
	}
	g.Forget("k")
}
