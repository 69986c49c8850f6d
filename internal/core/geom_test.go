package core

import (
	"math/rand"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "shared vertical edge counts as contact",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 0, 10, 10),
			expected: true,
		},
		{
			name:     "shared horizontal edge counts as contact",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 10, 10, 10),
			expected: true,
		},
		{
			name:     "corner touch",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 10, 1, 1),
			expected: true,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 20, 20),
			b:        NewBox(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "gap just past the edge",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10.01, 0, 10, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestBoxIntersectsSymmetricRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		a := NewBox(rng.Float64()*20, rng.Float64()*20, rng.Float64()*8, rng.Float64()*8)
		b := NewBox(rng.Float64()*20, rng.Float64()*20, rng.Float64()*8, rng.Float64()*8)
		if a.Intersects(b) != b.Intersects(a) {
			t.Fatalf("Intersects not symmetric for %+v and %+v", a, b)
		}
	}
}

func TestBoxOverlaps(t *testing.T) {
	ground := NewBox(0, 10, 20, 1)
	standing := NewBox(2, 9, 1, 1)
	if standing.Overlaps(ground) {
		t.Error("Overlaps() = true for an entity resting on top, expected false")
	}
	if !standing.Intersects(ground) {
		t.Error("Intersects() = false for an entity resting on top, expected true")
	}
	sunk := standing.Translate(Vec{Y: 0.5})
	if !sunk.Overlaps(ground) {
		t.Error("Overlaps() = false for a sunk entity, expected true")
	}
}

func TestBoxContains(t *testing.T) {
	outer := NewBox(0, 0, 10, 10)

	tests := []struct {
		name     string
		inner    Box
		expected bool
	}{
		{"inside", NewBox(2, 2, 3, 3), true},
		{"same box", outer, true},
		{"partly outside", NewBox(8, 8, 3, 3), false},
		{"fully outside", NewBox(20, 20, 1, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := outer.Contains(tc.inner); got != tc.expected {
				t.Errorf("Contains(%+v) = %v, expected %v", tc.inner, got, tc.expected)
			}
		})
	}
}

func TestBoxHelpers(t *testing.T) {
	b := BoxAt(5, 5, 2, 4)
	if b.X != 4 || b.Y != 3 {
		t.Errorf("BoxAt() = %+v, expected X=4 Y=3", b)
	}
	if c := b.Center(); c.X != 5 || c.Y != 5 {
		t.Errorf("Center() = %+v, expected (5, 5)", c)
	}
	if b.Right() != 6 || b.Bottom() != 7 {
		t.Errorf("Right/Bottom = %v/%v, expected 6/7", b.Right(), b.Bottom())
	}
	in := b.Inset(0.5)
	if in.W != 1 || in.H != 3 {
		t.Errorf("Inset() = %+v, expected W=1 H=3", in)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(2.5) != 1 {
		t.Errorf("Sign() returned unexpected values: %v %v %v", Sign(-3), Sign(0), Sign(2.5))
	}
}
