package tower

import (
	"math"
	"testing"
)

const eps = 1e-9

func span(min, max float64) Span {
	e := Extent{Min: min, Max: max}
	return Span{Extent: e, CenterX: e.Center()}
}

func TestComputeOverlap(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr Span
		hit        bool
		overlap    float64
		cut        float64
		front      bool
		center     float64
	}{
		{
			name:    "partial overlap on the front",
			prev:    span(0, 2),
			curr:    span(1, 3),
			hit:     true,
			overlap: 1,
			cut:     1,
			front:   true,
			center:  1.5,
		},
		{
			name:    "partial overlap on the back",
			prev:    span(0, 2),
			curr:    span(-1.5, 0.5),
			hit:     true,
			overlap: 0.5,
			cut:     1.5,
			front:   false,
			center:  0.25,
		},
		{
			name:    "exact alignment",
			prev:    span(0, 2),
			curr:    span(0, 2),
			hit:     true,
			overlap: 2,
			cut:     0,
			front:   false,
			center:  1,
		},
		{
			name:    "narrower current inside previous",
			prev:    span(0, 4),
			curr:    span(1, 2),
			hit:     true,
			overlap: 1,
			cut:     0,
			front:   false,
			center:  1.5,
		},
		{
			name: "no overlap",
			prev: span(0, 2),
			curr: span(5, 7),
			hit:  false,
		},
		{
			name: "touching edges",
			prev: span(0, 2),
			curr: span(2, 4),
			hit:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeOverlap(tc.prev, tc.curr)
			if got.Hit != tc.hit {
				t.Fatalf("Hit = %v, expected %v", got.Hit, tc.hit)
			}
			if !tc.hit {
				return
			}
			if math.Abs(got.OverlapLength-tc.overlap) > eps {
				t.Errorf("OverlapLength = %f, expected %f", got.OverlapLength, tc.overlap)
			}
			if math.Abs(got.CutLength-tc.cut) > eps {
				t.Errorf("CutLength = %f, expected %f", got.CutLength, tc.cut)
			}
			if got.CutFront != tc.front {
				t.Errorf("CutFront = %v, expected %v", got.CutFront, tc.front)
			}
			if math.Abs(got.NewCenterX-tc.center) > eps {
				t.Errorf("NewCenterX = %f, expected %f", got.NewCenterX, tc.center)
			}
		})
	}
}

func TestComputeOverlapNoOverlapLength(t *testing.T) {
	got := ComputeOverlap(span(0, 2), span(5, 7))
	if got.Hit {
		t.Fatal("expected a miss")
	}
	if got.OverlapLength != -3 {
		t.Errorf("OverlapLength = %f, expected -3", got.OverlapLength)
	}
}

func TestComputeOverlapConservation(t *testing.T) {
	prev := span(-3, 3)
	for offset := -5.9; offset < 6; offset += 0.37 {
		curr := span(-3+offset, 3+offset)
		got := ComputeOverlap(prev, curr)
		if !got.Hit {
			t.Fatalf("offset %f: expected overlap", offset)
		}
		if got.OverlapLength > curr.Length()+eps {
			t.Errorf("offset %f: overlap %f exceeds current length %f", offset, got.OverlapLength, curr.Length())
		}
		if math.Abs(got.CutLength+got.OverlapLength-curr.Length()) > eps {
			t.Errorf("offset %f: cut %f + overlap %f != length %f",
				offset, got.CutLength, got.OverlapLength, curr.Length())
		}
		if math.Abs(got.NewCenterX-(got.Min+got.Max)/2) > eps {
			t.Errorf("offset %f: center %f not between %f and %f", offset, got.NewCenterX, got.Min, got.Max)
		}
	}
}

func TestComputeOverlapIsPure(t *testing.T) {
	prev, curr := span(0, 2), span(0.7, 2.7)
	a := ComputeOverlap(prev, curr)
	b := ComputeOverlap(prev, curr)
	if a != b {
		t.Errorf("ComputeOverlap() not idempotent: %+v vs %+v", a, b)
	}
}

func TestExtentAt(t *testing.T) {
	e := ExtentAt(5, 4)
	if e.Min != 3 || e.Max != 7 {
		t.Errorf("ExtentAt(5, 4) = %+v, expected [3,7]", e)
	}
	if e.Length() != 4 {
		t.Errorf("Length() = %f, expected 4", e.Length())
	}
	if e.Center() != 5 {
		t.Errorf("Center() = %f, expected 5", e.Center())
	}
}
