// Package catchment computes areas of overlapping circular regions in the
// plane and solves circle radii so that each circle's exclusive area (its
// disk net of overlap with neighboring circles) hits a target value.
//
// # Overview
//
// The package underlies a catchment-area model: each input point (a facility
// location) carries a target exclusive area it should occupy once overlaps
// with previously placed neighbors are removed. The engine turns those
// targets into concrete radii.
//
// # Quick Start
//
//	import "github.com/gogeo/catchment"
//
//	targets := []catchment.TargetPoint{
//	    {Origin: catchment.Pt(0, 0), TargetArea: 4.0},
//	    {Origin: catchment.Pt(1.5, 0), TargetArea: 4.0},
//	}
//	circles, err := catchment.ScaleAll(targets, catchment.SolveOptions{})
//
// # Architecture
//
// The engine is layered, leaves first:
//
//   - Classify: pairwise circle relationship (none / inside / crossing)
//   - LensArea, SegmentArea: closed-form two-circle overlap
//   - IntersectAll: exact N-circle common-intersection area via boundary
//     decomposition (polygon plus circular segments)
//   - TotalIntersection: area of a focal circle covered by a union of
//     others, by inclusion-exclusion over IntersectAll
//   - Group: connected overlap clusters
//   - Overlap, IntersectAllApprox: grid sampling estimators, used as a
//     tolerance-bounded oracle for the exact engine
//   - ScaleToExclusiveArea, ScaleAll: damped iterative radius solver and
//     the sequential multi-point placement driver
//
// Collaborators live in subpackages: raster (PNG output of solved circles)
// and ingest (CSV targets, postcode geolocation, planar projection).
//
// # Coordinate System
//
// Coordinates are planar, in a fixed projected unit (kilometers throughout
// the ingest package). The engine itself is unit-agnostic; areas are in the
// square of whatever unit positions use.
//
// # Concurrency
//
// All computations are pure functions over immutable inputs and safe to call
// concurrently on independent data. Only the sampling estimators are
// internally parallel; ScaleAll is serial by data dependency.
package catchment
