package facematch

import (
	"math"
	"testing"
)

func gradientDescriptor(n int, step float64) Descriptor {
	d := make(Descriptor, n)
	for i := range d {
		d[i] = float64(i) * step
	}
	return d
}

func TestCompare_IdenticalDescriptors(t *testing.T) {
	d := gradientDescriptor(100, 1.5)

	score := Compare(d, d)

	if math.Abs(score-100) > 1e-9 {
		t.Errorf("expected score 100 for identical descriptors, got %f", score)
	}
}

func TestCompare_Symmetric(t *testing.T) {
	a := Descriptor{10, 20, 15, 40, 35, 60, 55, 80}
	b := Descriptor{12, 18, 20, 38, 30, 65, 50, 85}

	ab := Compare(a, b)
	ba := Compare(b, a)

	if ab != ba {
		t.Errorf("expected symmetric scores, got %f and %f", ab, ba)
	}
}

func TestCompare_NilInputs(t *testing.T) {
	d := gradientDescriptor(10, 1)

	if got := Compare(nil, d); got != 0 {
		t.Errorf("expected 0 for nil first input, got %f", got)
	}

	if got := Compare(d, nil); got != 0 {
		t.Errorf("expected 0 for nil second input, got %f", got)
	}

	if got := Compare(nil, nil); got != 0 {
		t.Errorf("expected 0 for both nil, got %f", got)
	}
}

func TestCompare_LengthMismatch(t *testing.T) {
	a := gradientDescriptor(10, 1)
	b := gradientDescriptor(20, 1)

	if got := Compare(a, b); got != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %f", got)
	}
}

func TestCompare_ZeroVariance(t *testing.T) {
	flat := Descriptor{50, 50, 50, 50}
	varying := Descriptor{10, 20, 30, 40}

	if got := Compare(flat, varying); got != 0 {
		t.Errorf("expected 0 for zero-variance input, got %f", got)
	}

	if got := Compare(flat, flat); got != 0 {
		t.Errorf("expected 0 for two flat inputs, got %f", got)
	}
}

func TestCompare_NegativeCorrelationClamped(t *testing.T) {
	a := Descriptor{0, 10, 20, 30, 40}
	b := Descriptor{40, 30, 20, 10, 0}

	if got := Compare(a, b); got != 0 {
		t.Errorf("expected perfectly anti-correlated inputs to clamp to 0, got %f", got)
	}
}

func TestCompare_BoundedRange(t *testing.T) {
	inputs := []struct {
		a, b Descriptor
	}{
		{gradientDescriptor(50, 1), gradientDescriptor(50, 2)},
		{Descriptor{1, 5, 2, 8, 3}, Descriptor{9, 2, 7, 1, 6}},
		{Descriptor{0, 255, 0, 255}, Descriptor{255, 0, 255, 0}},
	}

	for i, in := range inputs {
		score := Compare(in.a, in.b)
		if score < 0 || score > 100 {
			t.Errorf("case %d: score %f outside [0,100]", i, score)
		}
	}
}

func TestCompare_LinearlyRelated(t *testing.T) {
	// b = 2a + 5 has correlation exactly 1.
	a := gradientDescriptor(20, 3)
	b := make(Descriptor, len(a))
	for i := range a {
		b[i] = 2*a[i] + 5
	}

	score := Compare(a, b)
	if math.Abs(score-100) > 1e-9 {
		t.Errorf("expected 100 for linearly related descriptors, got %f", score)
	}
}

func BenchmarkCompare(b *testing.B) {
	x := gradientDescriptor(10000, 0.02)
	y := gradientDescriptor(10000, 0.025)

	b.ResetTimer()
	for range b.N {
		Compare(x, y)
	}
}
