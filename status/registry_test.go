package status

import (
	"sync"
	"testing"
)

// TestMetricMapCachesPointer verifies repeated Get returns the same metric
func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyFrames)
	a.Add(3)
	if b := r.Ints.Get(KeyFrames); b != a || b.Load() != 3 {
		t.Errorf("Get returned new metric or lost value: %d", b.Load())
	}
	if r.TotalCount() != 1 {
		t.Errorf("TotalCount() = %d, want 1", r.TotalCount())
	}
}

// TestMetricMapConcurrentGet verifies concurrent registration yields one metric
func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 32)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("x")
		}(i)
	}
	wg.Wait()
	for _, p := range ptrs {
		if p != ptrs[0] {
			t.Fatal("concurrent Get created distinct metrics")
		}
	}
}

// TestSnapshotOrder verifies ints precede floats and keys are sorted
func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyTicks).Store(7)
	r.Ints.Get(KeyFrames).Store(100)
	r.Floats.Get(KeyFPS).Set(59.94)

	got := r.Snapshot()
	want := []Entry{
		{KeyFrames, "100"},
		{KeyTicks, "7"},
		{KeyFPS, "59.9"},
	}
	if len(got) != len(want) || len(got) != r.TotalCount() {
		t.Fatalf("Snapshot() = %+v, TotalCount() = %d", got, r.TotalCount())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
