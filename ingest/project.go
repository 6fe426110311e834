package ingest

import (
	geo "github.com/kellydunn/golang-geo"

	"github.com/gogeo/catchment"
)

// Project converts lat/long target records into planar kilometer
// coordinates for the engine, using a local equirectangular projection
// about the records' mean location.
//
// Each coordinate is a signed great-circle distance along one axis: X is
// the distance from the reference meridian measured along the reference
// latitude, Y the distance from the reference parallel. For catchment-sized
// extents (tens of kilometers) the distortion is far below the engine's
// tolerances, so a full map projection would buy nothing here.
//
// The returned points align one-to-one with the input records.
func Project(records []TargetRecord) []catchment.TargetPoint {
	if len(records) == 0 {
		return nil
	}

	// Reference at the mean location keeps the signed distances small and
	// the distortion symmetric. Unit weights make the Scaler a plain mean;
	// callers aggregating their own records may weight differently.
	var latAve, longAve Scaler
	for _, r := range records {
		latAve.Add(r.Lat, 1)
		longAve.Add(r.Long, 1)
	}
	lat0, _ := latAve.Ave()
	long0, _ := longAve.Ave()

	ref := geo.NewPoint(lat0, long0)

	points := make([]catchment.TargetPoint, len(records))
	for i, r := range records {
		x := ref.GreatCircleDistance(geo.NewPoint(lat0, r.Long))
		if r.Long < long0 {
			x = -x
		}
		y := ref.GreatCircleDistance(geo.NewPoint(r.Lat, long0))
		if r.Lat < lat0 {
			y = -y
		}

		points[i] = catchment.TargetPoint{
			Origin:     catchment.Pt(x, y),
			TargetArea: r.TargetArea,
		}
	}
	return points
}
