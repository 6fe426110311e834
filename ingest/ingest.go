// Package ingest produces the engine's inputs from external data: CSV
// target-point records, postcode geolocation, and the local planar
// projection that turns lat/long into the kilometer coordinates the engine
// works in.
//
// It sits entirely outside the core: the engine never reads files, and
// ingest never computes areas.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gogeo/catchment"
)

// TargetRecord is one row of a targets CSV: a named location with the
// exclusive area (km²) its catchment circle should occupy.
type TargetRecord struct {
	ID         string
	Lat        float64
	Long       float64
	TargetArea float64
}

// Expected column orders of the two targets CSV shapes.
var (
	targetHeader   = []string{"id", "lat", "long", "target_area"}
	postcodeHeader = []string{"id", "postcode", "target_area"}
)

// LoadTargets reads target records from CSV. The first row must be the
// header "id,lat,long,target_area". Malformed data rows are skipped with a
// warning rather than failing the whole load, matching how the upstream
// data files behave: a handful of rows with missing coordinates is normal.
func LoadTargets(r io.Reader) ([]TargetRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Row length is checked in parseTarget so short rows are skipped, not
	// fatal.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}
	if err := checkHeader(header, targetHeader); err != nil {
		return nil, err
	}

	log := catchment.Logger()
	var records []TargetRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row %d: %w", line, err)
		}

		rec, err := parseTarget(row)
		if err != nil {
			log.Warn("ingest: skipping malformed target row",
				slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseTarget(row []string) (TargetRecord, error) {
	if len(row) != len(targetHeader) {
		return TargetRecord{}, fmt.Errorf("expected %d fields, got %d", len(targetHeader), len(row))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return TargetRecord{}, fmt.Errorf("lat: %w", err)
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return TargetRecord{}, fmt.Errorf("long: %w", err)
	}
	area, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return TargetRecord{}, fmt.Errorf("target_area: %w", err)
	}
	if area <= 0 {
		return TargetRecord{}, fmt.Errorf("target_area must be positive, got %g", area)
	}

	return TargetRecord{
		ID:         strings.TrimSpace(row[0]),
		Lat:        lat,
		Long:       long,
		TargetArea: area,
	}, nil
}

// LoadPostcodeTargets reads target records keyed by postcode instead of
// coordinates. The first row must be the header "id,postcode,target_area";
// each postcode is resolved to lat/long through the cache. Malformed rows
// and postcodes missing from the cache are skipped with a warning, the same
// policy LoadTargets applies.
func LoadPostcodeTargets(r io.Reader, cache *LocationCache) ([]TargetRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}
	if err := checkHeader(header, postcodeHeader); err != nil {
		return nil, err
	}

	log := catchment.Logger()
	var records []TargetRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row %d: %w", line, err)
		}

		rec, err := parsePostcodeTarget(row, cache)
		if err != nil {
			log.Warn("ingest: skipping postcode target row",
				slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePostcodeTarget(row []string, cache *LocationCache) (TargetRecord, error) {
	if len(row) != len(postcodeHeader) {
		return TargetRecord{}, fmt.Errorf("expected %d fields, got %d", len(postcodeHeader), len(row))
	}

	loc, ok := cache.Lookup(row[1])
	if !ok {
		return TargetRecord{}, fmt.Errorf("postcode %q not in location cache", strings.TrimSpace(row[1]))
	}
	area, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return TargetRecord{}, fmt.Errorf("target_area: %w", err)
	}
	if area <= 0 {
		return TargetRecord{}, fmt.Errorf("target_area must be positive, got %g", area)
	}

	return TargetRecord{
		ID:         strings.TrimSpace(row[0]),
		Lat:        loc.Lat,
		Long:       loc.Long,
		TargetArea: area,
	}, nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("ingest: expected header %v, got %v", want, got)
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return fmt.Errorf("ingest: expected header %v, got %v", want, got)
		}
	}
	return nil
}

// WritePlacements writes solved circles alongside their source records as
// CSV: id,lat,long,target_area,x_km,y_km,radius_km. Records and circles
// align one-to-one, as produced by catchment.ScaleAll.
func WritePlacements(w io.Writer, records []TargetRecord, points []catchment.TargetPoint, circles []catchment.Circle) error {
	if len(records) != len(circles) || len(points) != len(circles) {
		return fmt.Errorf("ingest: %d records, %d points and %d circles do not align",
			len(records), len(points), len(circles))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "lat", "long", "target_area", "x_km", "y_km", "radius_km"}); err != nil {
		return fmt.Errorf("ingest: write header: %w", err)
	}

	for i, rec := range records {
		row := []string{
			rec.ID,
			formatFloat(rec.Lat),
			formatFloat(rec.Long),
			formatFloat(rec.TargetArea),
			formatFloat(points[i].Origin.X),
			formatFloat(points[i].Origin.Y),
			formatFloat(circles[i].R),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ingest: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
