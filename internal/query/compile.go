package query

import (
	"strconv"
	"strings"
	"time"
)

// Plan is an executable listing plan. DistanceSelect (when present) is the
// first fragment of the final statement, so its placeholders are numbered
// before Where's. CountWhere carries the same predicates renumbered from $1
// for the COUNT statement, keeping totals consistent across both paths.
type Plan struct {
	DistanceSelect string
	Where          string
	OrderBy        string
	Args           []any

	CountWhere string
	CountArgs  []any
}

// Strategy produces a ranked, paginated result plan. Two implementations
// exist: plain filtering ordered by recency, and proximity ranking ordered
// by distance. Every non-geospatial predicate compiles identically on both.
type Strategy interface {
	Plan(f Filter, now time.Time) Plan
}

// StrategyFor selects the ranking strategy by proximity presence.
func StrategyFor(f Filter) Strategy {
	if f.Proximity != nil {
		return proximityStrategy{}
	}
	return plainStrategy{}
}

// Compile is the convenience entry point used by the repository.
func Compile(f Filter, now time.Time) Plan {
	return StrategyFor(f).Plan(f, now)
}

type plainStrategy struct{}

func (plainStrategy) Plan(f Filter, now time.Time) Plan {
	clauses := f.Clauses(now)

	where, args := lower(clauses, 1)
	countWhere, countArgs := lower(clauses, 1)

	return Plan{
		Where:      where,
		OrderBy:    "posted_at DESC",
		Args:       args,
		CountWhere: countWhere,
		CountArgs:  countArgs,
	}
}

type proximityStrategy struct{}

const distanceExpr = "earth_distance(ll_to_earth(?, ?), ll_to_earth(latitude, longitude))"

func (proximityStrategy) Plan(f Filter, now time.Time) Plan {
	p := f.Proximity
	clauses := f.Clauses(now)

	// the bounding-box clause lets the GiST index prune before the exact
	// great-circle distance check
	geo := []Clause{
		{
			Expr: "earth_box(ll_to_earth(?, ?), ?) @> ll_to_earth(latitude, longitude)",
			Args: []any{p.Lat, p.Lon, p.MaxDistanceMeters},
		},
		{
			Expr: distanceExpr + " <= ?",
			Args: []any{p.Lat, p.Lon, p.MaxDistanceMeters},
		},
	}

	sel := renumber(distanceExpr, 1)
	selArgs := []any{p.Lat, p.Lon}

	where, whereArgs := lower(append(clauses, geo...), 1+len(selArgs))
	countWhere, countArgs := lower(append(clauses, geo...), 1)

	return Plan{
		DistanceSelect: sel + " AS distance_meters",
		Where:          where,
		OrderBy:        "distance_meters ASC, posted_at DESC",
		Args:           append(selArgs, whereArgs...),
		CountWhere:     countWhere,
		CountArgs:      countArgs,
	}
}

// lower joins clauses with AND and renumbers ? placeholders starting at
// the given ordinal. An empty clause list compiles to TRUE so callers can
// always interpolate a WHERE.
func lower(clauses []Clause, start int) (string, []any) {
	if len(clauses) == 0 {
		return "TRUE", nil
	}

	exprs := make([]string, 0, len(clauses))
	args := make([]any, 0, len(clauses))
	n := start
	for _, c := range clauses {
		exprs = append(exprs, renumber(c.Expr, n))
		n += strings.Count(c.Expr, "?")
		args = append(args, c.Args...)
	}
	return strings.Join(exprs, " AND "), args
}

// renumber rewrites each ? in expr to $start, $start+1, ...
func renumber(expr string, start int) string {
	var b strings.Builder
	n := start
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteByte(expr[i])
	}
	return b.String()
}
