package resilience

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	t.Parallel()

	var (
		m       KeyedMutex[int64]
		wg      sync.WaitGroup
		counter int
	)
	const workers = 50
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := m.Lock(42)
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("expected %d increments, got %d", workers, counter)
	}
	if n := m.size(); n != 0 {
		t.Fatalf("expected idle locks to be released, %d remain", n)
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	t.Parallel()

	var m KeyedMutex[string]
	unlockA := m.Lock("a")
	unlockB := m.Lock("b")
	unlockB()
	unlockA()
	unlockA()

	if n := m.size(); n != 0 {
		t.Fatalf("expected no locks left, got %d", n)
	}
}
