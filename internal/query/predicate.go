// Package query turns job-listing filter parameters into an intermediate
// list of typed predicate clauses and lowers them to parameterized SQL.
// Keeping the two steps separate lets the predicate semantics be unit
// tested without a database.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Filter struct {
	Status     string
	JobTypes   []string
	City       string
	Skills     []string
	DatePosted string
	Search     string

	MinPay *float64
	MaxPay *float64

	EmployerID *uuid.UUID

	Proximity *Proximity
}

// Proximity restricts results to a great-circle radius around a reference
// point and switches ordering to distance-ascending.
type Proximity struct {
	Lon               float64
	Lat               float64
	MaxDistanceMeters float64
}

// Clause is one predicate with ?-style placeholders; lowering renumbers
// them into $n form.
type Clause struct {
	Expr string
	Args []any
}

var dateWindows = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"3d":  3 * 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// DateWindow maps a recency keyword to its lookback duration. Unrecognized
// values apply no filter.
func DateWindow(s string) (time.Duration, bool) {
	d, ok := dateWindows[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// Clauses builds the non-geospatial predicate list. The order is fixed so
// both ranking strategies compile the exact same clause set.
func (f Filter) Clauses(now time.Time) []Clause {
	out := make([]Clause, 0, 8)

	if s := strings.TrimSpace(f.Status); s != "" {
		out = append(out, Clause{Expr: "status = ?", Args: []any{s}})
	}

	if types := lowered(f.JobTypes); len(types) > 0 {
		out = append(out, Clause{Expr: "lower(job_type) = ANY(?)", Args: []any{types}})
	}

	if c := strings.TrimSpace(f.City); c != "" {
		out = append(out, Clause{Expr: "city ILIKE ?", Args: []any{"%" + escapeLike(c) + "%"}})
	}

	if skills := lowered(f.Skills); len(skills) > 0 {
		out = append(out, Clause{
			Expr: "EXISTS (SELECT 1 FROM unnest(required_skills) AS s WHERE lower(s) = ANY(?))",
			Args: []any{skills},
		})
	}

	if w, ok := DateWindow(f.DatePosted); ok {
		out = append(out, Clause{Expr: "posted_at >= ?", Args: []any{now.Add(-w)}})
	}

	// pay filters are interval overlap, not containment: the job's
	// [min,max] range must intersect the caller's acceptable band
	if f.MinPay != nil {
		out = append(out, Clause{Expr: "pay_rate_max >= ?", Args: []any{*f.MinPay}})
	}
	if f.MaxPay != nil {
		out = append(out, Clause{Expr: "pay_rate_min <= ?", Args: []any{*f.MaxPay}})
	}

	if f.EmployerID != nil {
		out = append(out, Clause{Expr: "employer_id = ?", Args: []any{*f.EmployerID}})
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		pat := "%" + escapeLike(s) + "%"
		out = append(out, Clause{Expr: "(title ILIKE ? OR description ILIKE ?)", Args: []any{pat, pat}})
	}

	return out
}

// ProximityFromStrings parses the lon/lat/maxDistance query triple.
// Partially supplied or malformed values yield nil: proximity is treated as
// absent entirely, never partially applied.
func ProximityFromStrings(lonStr, latStr, maxDistStr string) *Proximity {
	lonStr = strings.TrimSpace(lonStr)
	latStr = strings.TrimSpace(latStr)
	maxDistStr = strings.TrimSpace(maxDistStr)
	if lonStr == "" || latStr == "" || maxDistStr == "" {
		return nil
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	dist, err := strconv.ParseFloat(maxDistStr, 64)
	if err != nil || dist <= 0 {
		return nil
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil
	}

	return &Proximity{Lon: lon, Lat: lat, MaxDistanceMeters: dist}
}

func lowered(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
