package id

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	g := NewUUIDGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, _ := g.NewID()
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("expected a valid uuid, got %q: %v", a, err)
	}
}

func TestSequence_ConcurrentIDsAreUnique(t *testing.T) {
	t.Parallel()

	seq := NewSequence(10)
	const workers, perWorker = 8, 100

	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				v := seq.NextID()
				mu.Lock()
				seen[v] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d unique ids, got %d", workers*perWorker, len(seen))
	}
	if next := seq.NextID(); next != 10+workers*perWorker+1 {
		t.Fatalf("unexpected next id %d", next)
	}
}

func TestSequence_Observe(t *testing.T) {
	t.Parallel()

	seq := NewSequence(5)
	seq.Observe(3)
	if got := seq.NextID(); got != 6 {
		t.Fatalf("observing a lower id must not rewind, got %d", got)
	}
	seq.Observe(100)
	if got := seq.NextID(); got != 101 {
		t.Fatalf("expected 101 after observing 100, got %d", got)
	}
}
