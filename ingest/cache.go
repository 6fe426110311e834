package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/gogeo/catchment"
)

// LocationCache maps postcodes to lat/long locations. Upstream postcode
// lookups are slow, so resolved locations are persisted as CSV
// (postcode,lat,long) and reloaded on the next run.
type LocationCache struct {
	locations map[string]Location
}

// Location is a geographic coordinate pair.
type Location struct {
	Lat, Long float64
}

// NewLocationCache returns an empty cache.
func NewLocationCache() *LocationCache {
	return &LocationCache{locations: make(map[string]Location)}
}

// LoadLocationCache reads a postcode,lat,long CSV (no header). Malformed
// rows are skipped with a warning; the cache is best-effort by nature.
func LoadLocationCache(r io.Reader) (*LocationCache, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	c := NewLocationCache()
	log := catchment.Logger()
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read location row %d: %w", line, err)
		}
		if len(row) != 3 {
			log.Warn("ingest: skipping malformed location row", slog.Int("line", line))
			continue
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		long, errLong := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if errLat != nil || errLong != nil {
			log.Warn("ingest: skipping malformed location row", slog.Int("line", line))
			continue
		}
		c.Put(row[0], Location{Lat: lat, Long: long})
	}
	return c, nil
}

// Lookup returns the cached location for a postcode, normalizing case and
// surrounding whitespace.
func (c *LocationCache) Lookup(postcode string) (Location, bool) {
	loc, ok := c.locations[normalizePostcode(postcode)]
	return loc, ok
}

// Put stores a location under a postcode.
func (c *LocationCache) Put(postcode string, loc Location) {
	c.locations[normalizePostcode(postcode)] = loc
}

// Len returns the number of cached postcodes.
func (c *LocationCache) Len() int {
	return len(c.locations)
}

// Save writes the cache as postcode,lat,long CSV, sorted by postcode so
// the persisted file diffs cleanly between runs.
func (c *LocationCache) Save(w io.Writer) error {
	codes := make([]string, 0, len(c.locations))
	for code := range c.locations {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	cw := csv.NewWriter(w)
	for _, code := range codes {
		loc := c.locations[code]
		row := []string{code, formatFloat(loc.Lat), formatFloat(loc.Long)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ingest: write location %s: %w", code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func normalizePostcode(postcode string) string {
	return strings.ToUpper(strings.TrimSpace(postcode))
}
