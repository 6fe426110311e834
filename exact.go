package catchment

import (
	"math"
	"sort"
)

// boundaryPoint is a pairwise intersection point tagged with the index pair
// of circles that produced it.
type boundaryPoint struct {
	p    Point
	i, j int
}

// vertex is a surviving boundary point: one produced by two non-dominated
// circles and lying inside every other disk. Duplicates from tangent
// configurations are welded into a single vertex, accumulating the set of
// circles whose boundary passes through it.
type vertex struct {
	p       Point
	i, j    int // producing pair of the first occurrence
	circles map[int]bool
}

// arc is one piece of the region boundary: the part of circle ci's
// boundary running counter-clockwise from vertex a to vertex b.
type arc struct {
	ci   int
	a, b pointKey
}

// pointKey is a stable discretized identity for a boundary point. Raw
// floating equality is too brittle to build adjacency on: the same vertex
// can be produced by two different pairs with coordinates differing in the
// last bits. Quantizing to the epsMember grid welds those copies together.
type pointKey struct {
	x, y int64
}

func keyFor(p Point) pointKey {
	return pointKey{
		x: int64(math.Round(p.X / epsMember)),
		y: int64(math.Round(p.Y / epsMember)),
	}
}

// IntersectAll returns the exact area common to every circle in the list.
// The result is order-independent, and unchanged by inserting a circle that
// wholly contains the current intersection region.
//
// The region, when non-empty, is convex and decomposes into the polygon of
// its boundary vertices plus one circular segment per boundary arc. A
// boundary that cannot be walked into a single closed loop (unexpected
// adjacency from multi-tangent configurations) is surfaced as a
// DegenerateTopologyError rather than truncated to a partially-correct
// polygon.
func IntersectAll(circles []Circle) (float64, error) {
	switch len(circles) {
	case 0:
		return 0, nil
	case 1:
		return circles[0].Area(), nil
	}

	n := len(circles)

	// Pairwise pass: any disjoint pair empties the whole intersection; a
	// containment pair makes the containing circle redundant (the region
	// already lies inside it, so it adds no boundary constraint).
	dominated := make([]bool, n)
	var points []boundaryPoint
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ix := Classify(circles[i], circles[j])
			switch ix.Relationship() {
			case RelNone:
				return 0, nil
			case RelInside, RelEqual:
				if ix.Inside().Equal(circles[i]) {
					dominated[j] = true
				} else {
					dominated[i] = true
				}
			case RelCrossing:
				a, b := ix.Points()
				points = append(points, boundaryPoint{a, i, j}, boundaryPoint{b, i, j})
			}
		}
	}

	vertices := surviveFilter(circles, dominated, points)

	switch len(vertices) {
	case 0, 1:
		// No crossing survives. The region is a whole disk if a single
		// circle constrains it, empty otherwise.
		remaining := -1
		count := 0
		for k := range circles {
			if !dominated[k] {
				remaining = k
				count++
			}
		}
		if count == 1 {
			return circles[remaining].Area(), nil
		}
		return 0, nil

	case 2:
		// The boundary degenerates to a two-circle lens. Both surviving
		// vertices must come from the same producing pair.
		var vs []*vertex
		for _, v := range vertices {
			vs = append(vs, v)
		}
		if vs[0].i != vs[1].i || vs[0].j != vs[1].j {
			return 0, &DegenerateTopologyError{At: vs[1].p, Visited: 1, Total: 2}
		}
		return LensArea(circles[vs[0].i], circles[vs[0].j])
	}

	arcs := boundaryArcs(circles, dominated, vertices)

	polygon, err := walkBoundary(vertices, arcs)
	if err != nil {
		return 0, err
	}

	// The centroid of the surviving vertices lies inside the region
	// because the region is convex; it orients the per-arc chord normals
	// below.
	var centroid Point
	for _, p := range polygon {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Div(float64(len(polygon)))

	total := shoelace(polygon)
	for _, a := range arcs {
		pa := vertices[a.a].p
		pb := vertices[a.b].p
		c := circles[a.ci]

		seg, err := SegmentArea(c.R, pa.Distance(pb))
		if err != nil {
			return 0, err
		}
		if minorSegmentInside(centroid, pa, pb, c.Origin) {
			total += seg
		} else {
			total += c.Area() - seg
		}
	}

	minArea := math.Inf(1)
	for _, c := range circles {
		if a := c.Area(); a < minArea {
			minArea = a
		}
	}
	if math.IsNaN(total) || total < -epsArea || total > minArea+epsArea {
		return 0, &NumericConsistencyError{Op: "IntersectAll", Value: total, Lo: 0, Hi: minArea}
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

// surviveFilter keeps the boundary points produced by two non-dominated
// circles that lie inside every other disk, welded by quantized key.
func surviveFilter(circles []Circle, dominated []bool, points []boundaryPoint) map[pointKey]*vertex {
	vertices := make(map[pointKey]*vertex)
	for _, bp := range points {
		if dominated[bp.i] || dominated[bp.j] {
			continue
		}
		insideAll := true
		for k := range circles {
			if k == bp.i || k == bp.j {
				continue
			}
			if !circles[k].Contains(bp.p) {
				insideAll = false
				break
			}
		}
		if !insideAll {
			continue
		}
		key := keyFor(bp.p)
		v, ok := vertices[key]
		if !ok {
			v = &vertex{p: bp.p, i: bp.i, j: bp.j, circles: make(map[int]bool)}
			vertices[key] = v
		}
		v.circles[bp.i] = true
		v.circles[bp.j] = true
	}
	return vertices
}

// boundaryArcs finds the pieces of circle boundary that bound the region.
// The surviving vertices on each circle are sorted by angle around its
// center; each consecutive counter-clockwise pair encloses a candidate arc,
// kept when the arc's midpoint lies inside every disk. A circle may
// contribute more than one arc: a thin overlap clipped by a third disk
// meets the same circle twice.
func boundaryArcs(circles []Circle, dominated []bool, vertices map[pointKey]*vertex) []arc {
	byCircle := make(map[int][]pointKey)
	for key, v := range vertices {
		for ci := range v.circles {
			if !dominated[ci] {
				byCircle[ci] = append(byCircle[ci], key)
			}
		}
	}

	var arcs []arc
	for ci, keys := range byCircle {
		if len(keys) < 2 {
			// The boundary touches the region at a single welded point
			// and contributes no arc.
			continue
		}
		c := circles[ci]

		sort.Slice(keys, func(a, b int) bool {
			angA := vertices[keys[a]].p.Sub(c.Origin).Atan2()
			angB := vertices[keys[b]].p.Sub(c.Origin).Atan2()
			return angA < angB
		})

		for i := range keys {
			a := keys[i]
			b := keys[(i+1)%len(keys)]
			mid := arcMidpoint(c, vertices[a].p, vertices[b].p)

			onBoundary := true
			for k := range circles {
				if k == ci {
					continue
				}
				if !circles[k].Contains(mid) {
					onBoundary = false
					break
				}
			}
			if onBoundary {
				arcs = append(arcs, arc{ci: ci, a: a, b: b})
			}
		}
	}
	return arcs
}

// arcMidpoint returns the point halfway along the counter-clockwise arc of
// c from p1 to p2.
func arcMidpoint(c Circle, p1, p2 Point) Point {
	ang1 := p1.Sub(c.Origin).Atan2()
	ang2 := p2.Sub(c.Origin).Atan2()
	dtheta := ang2 - ang1
	if dtheta < 0 {
		dtheta += 2 * math.Pi
	}
	mid := ang1 + dtheta/2
	return c.Origin.Add(Pt(math.Cos(mid), math.Sin(mid)).Mul(c.R))
}

// walkBoundary orders the surviving vertices into a single closed polygon
// loop, two vertices being adjacent when a boundary arc joins them. A
// vertex without exactly two incident arcs, or a loop that closes before
// visiting every vertex, is a degenerate boundary and is reported as such
// instead of walked partially.
func walkBoundary(vertices map[pointKey]*vertex, arcs []arc) ([]Point, error) {
	adj := make(map[pointKey][]pointKey, len(vertices))
	for _, a := range arcs {
		adj[a.a] = append(adj[a.a], a.b)
		adj[a.b] = append(adj[a.b], a.a)
	}

	for key, v := range vertices {
		if len(adj[key]) != 2 {
			return nil, &DegenerateTopologyError{At: v.p, Visited: 0, Total: len(vertices)}
		}
	}

	var start pointKey
	for key := range vertices {
		start = key
		break
	}

	polygon := make([]Point, 0, len(vertices))
	prev, cur := start, start
	for {
		polygon = append(polygon, vertices[cur].p)

		next := adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		if next == prev {
			// Both neighbors point back the way we came.
			return nil, &DegenerateTopologyError{At: vertices[cur].p, Visited: len(polygon), Total: len(vertices)}
		}

		if next == start {
			if len(polygon) != len(vertices) {
				// Closed early: the boundary splits into multiple loops.
				return nil, &DegenerateTopologyError{At: vertices[cur].p, Visited: len(polygon), Total: len(vertices)}
			}
			return polygon, nil
		}
		prev, cur = cur, next
	}
}

// shoelace returns the absolute polygon area of the given vertex loop.
func shoelace(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(area) / 2
}

// minorSegmentInside decides which segment an arc's chord contributes: the
// minor one (the usual case) or the major one.
//
// The chord runs pa..pb. The outward normal is the chord perpendicular
// oriented away from the region's centroid. If the circle's own center sits
// on the centroid side of the chord, the arc bulges outward and the region
// gains only the minor segment; a center beyond the chord means the region
// wraps most of that circle and gains the major segment.
//
// Kept as a pure function of (centroid, pa, pb, center) so it is testable
// independently of the polygon-walk machinery.
func minorSegmentInside(centroid, pa, pb, center Point) bool {
	chord := pb.Sub(pa).Normalize()
	normal := chord.Perp()

	// Orient the normal away from the centroid.
	if centroid.Sub(pa).Dot(normal) > 0 {
		normal = normal.Mul(-1)
	}

	// Center offset from the chord, tested against the outward normal.
	return center.Sub(pa).Dot(normal) <= 0
}
