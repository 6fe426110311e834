package catchment

import (
	"math"
	"testing"
)

// equilateralTriple returns three unit circles centered on the vertices of
// an equilateral triangle with side 1. Their common intersection is the
// classic Reuleaux-style region of area (pi - sqrt(3))/2, and the
// intersection points of each pair coincide with the third center.
func equilateralTriple() []Circle {
	return []Circle{
		C(0, 0, 1),
		C(1, 0, 1),
		C(0.5, math.Sqrt(3)/2, 1),
	}
}

func TestIntersectAll_Trivial(t *testing.T) {
	tests := []struct {
		name    string
		circles []Circle
		expect  float64
	}{
		{"no circles", nil, 0},
		{"single circle", []Circle{C(2, 3, 1.5)}, math.Pi * 1.5 * 1.5},
		{"single zero radius", []Circle{C(0, 0, 0)}, 0},
		{"two disjoint", []Circle{C(0, 0, 1), C(3, 0, 1)}, 0},
		{"three with one disjoint pair", []Circle{C(0, 0, 1), C(0.5, 0, 1), C(10, 0, 1)}, 0},
		{"contained pair", []Circle{C(0, 0, 5), C(1, 0, 1)}, math.Pi},
		{"coincident pair", []Circle{C(1, 1, 2), C(1, 1, 2)}, 4 * math.Pi},
		{"chain of containment", []Circle{C(0, 0, 5), C(0.5, 0, 2), C(0.5, 0.5, 1)}, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntersectAll(tt.circles)
			if err != nil {
				t.Fatalf("IntersectAll: %v", err)
			}
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("IntersectAll = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestIntersectAll_SingleCircleWithinTolerance(t *testing.T) {
	got, err := IntersectAll([]Circle{C(0, 0, 1)})
	if err != nil {
		t.Fatalf("IntersectAll: %v", err)
	}
	if math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("IntersectAll single unit circle = %v, want pi within 1e-9", got)
	}
}

func TestIntersectAll_TwoCrossing(t *testing.T) {
	got, err := IntersectAll([]Circle{C(0, 0, 1), C(0.5, 0, 1)})
	if err != nil {
		t.Fatalf("IntersectAll: %v", err)
	}
	if math.Abs(got-2.152111) > 1e-5 {
		t.Errorf("IntersectAll two unit circles at 0.5 = %v, want ~2.152111", got)
	}
}

func TestIntersectAll_EquilateralTriple(t *testing.T) {
	want := (math.Pi - math.Sqrt(3)) / 2

	got, err := IntersectAll(equilateralTriple())
	if err != nil {
		t.Fatalf("IntersectAll: %v", err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("IntersectAll = %v, want %v", got, want)
	}
}

func TestIntersectAll_OrderIndependent(t *testing.T) {
	base := equilateralTriple()
	want, err := IntersectAll(base)
	if err != nil {
		t.Fatalf("IntersectAll: %v", err)
	}

	permutations := [][]int{
		{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, perm := range permutations {
		shuffled := make([]Circle, len(base))
		for i, idx := range perm {
			shuffled[i] = base[idx]
		}
		got, err := IntersectAll(shuffled)
		if err != nil {
			t.Fatalf("IntersectAll(%v): %v", perm, err)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("IntersectAll(%v) = %v, want %v", perm, got, want)
		}
	}
}

// Inserting a circle that wholly contains the current intersection region
// must not change the result.
func TestIntersectAll_ContainingCircleInvariance(t *testing.T) {
	base := equilateralTriple()
	want, err := IntersectAll(base)
	if err != nil {
		t.Fatalf("IntersectAll(base): %v", err)
	}

	tests := []struct {
		name  string
		extra Circle
	}{
		{"contains every circle", C(0.5, math.Sqrt(3)/6, 5)},
		{"contains every circle tightly", C(0.5, math.Sqrt(3)/6, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntersectAll(append(base[:len(base):len(base)], tt.extra))
			if err != nil {
				t.Fatalf("IntersectAll: %v", err)
			}
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("IntersectAll with containing circle = %v, want %v", got, want)
			}
		})
	}
}

func TestIntersectAll_AgainstSampling(t *testing.T) {
	tests := []struct {
		name    string
		circles []Circle
	}{
		{"two unit circles", []Circle{C(0, 0, 1), C(0.5, 0, 1)}},
		{"equilateral triple", equilateralTriple()},
		{"four way overlap", []Circle{
			C(0, 0, 1.2), C(1, 0, 1.2), C(0.5, 0.8, 1.2), C(0.5, 0.3, 1.1),
		}},
		{"mixed radii", []Circle{C(0, 0, 2), C(1.5, 0, 1.4), C(0.7, 1, 1.6)}},
		// A thin lens clipped top and bottom, so the small circle
		// contributes two separate boundary arcs.
		{"lens clipped by third disk", []Circle{
			C(0.5, 0, 1), C(-0.5, 0, 1), C(0, 0, 0.8),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exact, err := IntersectAll(tt.circles)
			if err != nil {
				t.Fatalf("IntersectAll: %v", err)
			}
			approx := IntersectAllApprox(tt.circles)
			if math.Abs(exact-approx) > 0.05 {
				t.Errorf("exact %v and sampled %v disagree beyond 0.05", exact, approx)
			}
		})
	}
}

func TestIntersectAll_ResultWithinBound(t *testing.T) {
	circles := []Circle{C(0, 0, 2), C(1.5, 0, 1.4), C(0.7, 1, 1.6)}

	got, err := IntersectAll(circles)
	if err != nil {
		t.Fatalf("IntersectAll: %v", err)
	}

	minArea := math.Inf(1)
	for _, c := range circles {
		minArea = math.Min(minArea, c.Area())
	}
	if got < 0 || got > minArea {
		t.Errorf("IntersectAll = %v outside [0, %v]", got, minArea)
	}
}

func TestMinorSegmentInside(t *testing.T) {
	// Chord on the y axis from (0,-1) to (0,1), region centroid to the left.
	centroid := Pt(-0.5, 0)
	pa, pb := Pt(0, -1), Pt(0, 1)

	tests := []struct {
		name   string
		center Point
		expect bool
	}{
		// Center on the centroid side: arc bulges away, minor segment.
		{"center with centroid", Pt(-2, 0), true},
		{"center on chord", Pt(0, 0), true},
		// Center beyond the chord: region wraps the major segment.
		{"center beyond chord", Pt(2, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := minorSegmentInside(centroid, pa, pb, tt.center); got != tt.expect {
				t.Errorf("minorSegmentInside = %v, want %v", got, tt.expect)
			}
		})
	}

	// The decision cannot depend on chord endpoint order.
	if minorSegmentInside(centroid, pa, pb, Pt(-2, 0)) != minorSegmentInside(centroid, pb, pa, Pt(-2, 0)) {
		t.Error("minorSegmentInside depends on chord endpoint order")
	}
}

func TestShoelace(t *testing.T) {
	tests := []struct {
		name   string
		pts    []Point
		expect float64
	}{
		{"too few points", []Point{Pt(0, 0), Pt(1, 0)}, 0},
		{"unit square", []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}, 1},
		{"unit square clockwise", []Point{Pt(0, 1), Pt(1, 1), Pt(1, 0), Pt(0, 0)}, 1},
		{"right triangle", []Point{Pt(0, 0), Pt(2, 0), Pt(0, 2)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shoelace(tt.pts); math.Abs(got-tt.expect) > 1e-12 {
				t.Errorf("shoelace = %v, want %v", got, tt.expect)
			}
		})
	}
}

func BenchmarkIntersectAll_Triple(b *testing.B) {
	circles := equilateralTriple()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := IntersectAll(circles); err != nil {
			b.Fatal(err)
		}
	}
}
