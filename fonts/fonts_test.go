package fonts

import "testing"

// TestRefCountedClosesOnlyAtZero covers spec §5's refcount contract: the
// close callback must fire exactly once, and only once the count returns
// to zero after matching Reference/Release calls.
func TestRefCountedClosesOnlyAtZero(t *testing.T) {
	closed := 0
	rc := NewRefCounted(func() { closed++ })

	rc.Reference() // count now 2
	rc.Reference() // count now 3
	rc.Release()   // count now 2
	if closed != 0 {
		t.Fatalf("closed=%d after partial release, want 0", closed)
	}

	rc.Release() // count now 1
	if closed != 0 {
		t.Fatalf("closed=%d with one reference still outstanding, want 0", closed)
	}

	rc.Release() // count now 0
	if closed != 1 {
		t.Fatalf("closed=%d after final release, want 1", closed)
	}
}
