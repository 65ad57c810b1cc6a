package fmap

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Shared View
// --------------------------------------------------------------------------

func TestSharedMapConcurrentWriters(t *testing.T) {
	shared := NewShared[int, int](NewEngine[int, int](compare.Ints().Equality))

	const (
		writers   = 8
		perWriter = 1000
	)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, _, err := shared.Put(base+i, i); err != nil {
					t.Errorf("Put failed: %v", err)
					return
				}
			}
		}(w * perWriter)
	}
	wg.Wait()

	if shared.Size() != writers*perWriter {
		t.Fatalf("size %d, want %d", shared.Size(), writers*perWriter)
	}
}

func TestSharedMapReadersDuringWrites(t *testing.T) {
	shared := NewShared[int, int](NewEngine[int, int](compare.Ints().Equality))

	done := make(chan struct{})
	var wg sync.WaitGroup

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				_, _ = shared.Get(50)
				_ = shared.ContainsKey(99)
				shared.ForEach(func(int, int) bool { return true })
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		if _, _, err := shared.Put(i%100, i); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if i%5 == 0 {
			if _, _, err := shared.Remove(i % 100); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
		}
	}
	close(done)
	wg.Wait()
}

func TestSharedMapSplitSharesLock(t *testing.T) {
	shared := NewShared[int, int](NewEngine[int, int](compare.Ints().Equality))
	const n = 1000
	for i := 0; i < n; i++ {
		if _, _, err := shared.Put(i, 0); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	shards := shared.Split(4)

	// Concurrent mutation through sibling shards serializes on the parent's
	// lock.
	var wg sync.WaitGroup
	for _, shard := range shards {
		wg.Add(1)
		go func(shard collection.Map[int, int]) {
			defer wg.Done()
			var keys []int
			shard.ForEach(func(k, _ int) bool {
				keys = append(keys, k)
				return true
			})
			for _, k := range keys {
				if _, _, err := shard.Replace(k, 1); err != nil {
					t.Errorf("Replace failed: %v", err)
					return
				}
			}
		}(shard)
	}
	wg.Wait()

	shared.ForEach(func(k, v int) bool {
		if v != 1 {
			t.Errorf("key %d not overwritten", k)
		}
		return true
	})
}

// --------------------------------------------------------------------------
// Atomic View
// --------------------------------------------------------------------------

func TestAtomicMapUpdateIsolation(t *testing.T) {
	atomicView := NewAtomic[int, string](NewEngine[int, string](compare.Ints().Equality))
	if _, _, err := atomicView.Put(1, "one"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	updateEntered := make(chan struct{})
	finishUpdate := make(chan struct{})
	updateDone := make(chan error, 1)

	go func() {
		updateDone <- atomicView.Update(func(live collection.Map[int, string]) error {
			if _, _, err := live.Put(2, "two"); err != nil {
				return err
			}
			// The update scope sees its own writes immediately.
			if !live.ContainsKey(2) {
				t.Error("update scope does not see its own write")
			}
			close(updateEntered)
			<-finishUpdate
			_, _, err := live.Put(3, "three")
			return err
		})
	}()

	<-updateEntered
	// While the update is in progress, readers see the pre-update snapshot.
	if atomicView.ContainsKey(2) {
		t.Error("reader sees in-progress update")
	}
	close(finishUpdate)
	if err := <-updateDone; err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// After the scope ends the full update is visible at once.
	if atomicView.Size() != 3 {
		t.Errorf("size %d after update, want 3", atomicView.Size())
	}
}

func TestAtomicMapIteratorIsSnapshot(t *testing.T) {
	atomicView := NewAtomic[int, string](NewEngine[int, string](compare.Ints().Equality))
	for i := 0; i < 5; i++ {
		if _, _, err := atomicView.Put(i, "v"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	it := atomicView.Iterator()

	if _, _, err := atomicView.Put(99, "late"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	count := 0
	for it.HasNext() {
		if _, err := it.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != 5 {
		t.Errorf("iterator yielded %d entries, want 5", count)
	}

	if err := it.Remove(); err == nil {
		t.Error("Remove on snapshot iterator should fail")
	}
}

// --------------------------------------------------------------------------
// Parallel View
// --------------------------------------------------------------------------

func TestParallelMapForEachVisitsAll(t *testing.T) {
	engine := NewEngine[int, int](compare.Ints().Equality)
	const n = 10000
	for i := 0; i < n; i++ {
		if _, _, err := engine.Put(i, 1); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	parallel := NewParallel[int, int](engine, 4)

	var mu sync.Mutex
	total := 0
	seen := make(map[int]bool)
	parallel.ForEach(func(k, v int) bool {
		mu.Lock()
		total += v
		seen[k] = true
		mu.Unlock()
		return true
	})

	if total != n {
		t.Errorf("parallel sum = %d, want %d", total, n)
	}
	if len(seen) != n {
		t.Errorf("visited %d distinct keys, want %d", len(seen), n)
	}
}

func TestParallelMapDoPropagatesError(t *testing.T) {
	engine := NewEngine[int, string](compare.Ints().Equality)
	for i := 0; i < 100; i++ {
		if _, _, err := engine.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	parallel := NewParallel[int, string](engine, 4)

	wantErr := errors.New("worker failure")
	var mu sync.Mutex
	calls := 0
	err := parallel.Do(func(shard collection.Map[int, string]) error {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do returned %v, want %v", err, wantErr)
	}
	if calls != 5 {
		t.Errorf("fn called %d times, want 5", calls)
	}
}

func TestParallelMapOverShared(t *testing.T) {
	shared := NewShared[int, int](NewEngine[int, int](compare.Ints().Equality))
	const n = 1000
	for i := 0; i < n; i++ {
		if _, _, err := shared.Put(i, 0); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	parallel := NewParallel[int, int](shared, 4)
	err := parallel.Do(func(shard collection.Map[int, int]) error {
		var keys []int
		shard.ForEach(func(k, _ int) bool {
			keys = append(keys, k)
			return true
		})
		for _, k := range keys {
			if _, _, err := shard.Replace(k, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	shared.ForEach(func(k, v int) bool {
		if v != 1 {
			t.Errorf("key %d not overwritten", k)
		}
		return true
	})
}
