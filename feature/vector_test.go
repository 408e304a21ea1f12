package feature

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{
			name: "identical vectors",
			a:    Vector{0.5, 0.3, 0.2},
			b:    Vector{0.5, 0.3, 0.2},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    Vector{1, 0},
			b:    Vector{0, 1},
			want: 0,
		},
		{
			name: "zero vector on one side",
			a:    Vector{0, 0, 0},
			b:    Vector{1, 2, 3},
			want: 0,
		},
		{
			name: "both zero vectors",
			a:    Vector{0, 0},
			b:    Vector{0, 0},
			want: 0,
		},
		{
			name: "dimension mismatch",
			a:    Vector{1, 2},
			b:    Vector{1, 2, 3},
			want: 0,
		},
		{
			name: "known similarity",
			a:    Vector{1, 1},
			b:    Vector{1, 0},
			want: 1 / math.Sqrt2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosine_ScaleInvariant(t *testing.T) {
	a := Vector{0.2, 0.5, 0.8}
	b := Vector{0.4, 1.0, 1.6} // a 的 2 倍

	got := Cosine(a, b)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Cosine(a, 2a) = %v, want 1", got)
	}
}

func TestVector_Empty(t *testing.T) {
	if !(Vector{}).Empty() {
		t.Error("empty vector should report Empty")
	}
	if (Vector{0.1}).Empty() {
		t.Error("non-empty vector should not report Empty")
	}
}
