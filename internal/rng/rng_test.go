package rng

import "testing"

func TestDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestKnownSequence(t *testing.T) {
	// s1 = 42*1664525 + 1013904223 (mod 2^32)
	g := New(42)
	want := uint32(42*1664525 + 1013904223)
	if got := g.Next(); got != want {
		t.Errorf("first draw = %d, expected %d", got, want)
	}
	want = want*1664525 + 1013904223
	if got := g.Next(); got != want {
		t.Errorf("second draw = %d, expected %d", got, want)
	}
}

func TestSeedUsesLow32Bits(t *testing.T) {
	a := New(7)
	b := New(7 + 1<<32)
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			t.Fatal("seeds equal mod 2^32 should produce the same stream")
		}
	}
}

func TestFloat64Range(t *testing.T) {
	g := New(123)
	for i := 0; i < 10000; i++ {
		f := g.Float64()
		if f < 0 || f > 1 {
			t.Fatalf("Float64() = %f out of [0, 1]", f)
		}
	}
}

func TestIntRangeBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"digit", 1, 9},
		{"operand start", 2, 9},
		{"single", 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(99)
			seen := make(map[int]bool)
			for i := 0; i < 5000; i++ {
				n := g.IntRange(tc.min, tc.max)
				if n < tc.min || n > tc.max {
					t.Fatalf("IntRange(%d, %d) = %d", tc.min, tc.max, n)
				}
				seen[n] = true
			}
			if len(seen) != tc.max-tc.min+1 {
				t.Errorf("expected every value to appear, saw %d distinct", len(seen))
			}
		})
	}
}

func TestIntRangeEmptyReturnsMin(t *testing.T) {
	g := New(5)
	if n := g.IntRange(2, 1); n != 2 {
		t.Errorf("IntRange(2, 1) = %d, expected 2", n)
	}
}

func TestIntRangeTopOfStream(t *testing.T) {
	// Find a state that yields exactly 0xFFFFFFFF on the next draw:
	// state*a + c = 0xFFFFFFFF has a unique solution since a is odd.
	g := &LCG{state: inverseStep(0xFFFFFFFF)}
	if n := g.IntRange(1, 9); n != 9 {
		t.Errorf("IntRange at f=1.0 = %d, expected clamp to 9", n)
	}
	g = &LCG{state: inverseStep(0xFFFFFFFF)}
	if i := g.Index(4); i != 3 {
		t.Errorf("Index at f=1.0 = %d, expected 3", i)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	g := New(2024)
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	g.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 11 {
		t.Errorf("shuffle lost elements: %v", items)
	}
}

func TestPick(t *testing.T) {
	g := New(1)
	ops := []string{"+", "-"}
	for i := 0; i < 100; i++ {
		p := Pick(g, ops)
		if p != "+" && p != "-" {
			t.Fatalf("Pick returned %q", p)
		}
	}
}

// inverseStep returns the state whose successor is s.
func inverseStep(s uint32) uint32 {
	// Modular inverse of the multiplier mod 2^32 via Newton iteration.
	inv := uint32(multiplier)
	for i := 0; i < 5; i++ {
		inv *= 2 - multiplier*inv
	}
	return (s - increment) * inv
}
