package query

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCompile_EmptyFilter(t *testing.T) {
	plan := Compile(Filter{}, time.Now())

	if plan.DistanceSelect != "" {
		t.Fatalf("expected no distance select, got %q", plan.DistanceSelect)
	}
	if plan.Where != "TRUE" {
		t.Fatalf("expected TRUE where, got %q", plan.Where)
	}
	if plan.OrderBy != "posted_at DESC" {
		t.Fatalf("unexpected order by: %q", plan.OrderBy)
	}
	if len(plan.Args) != 0 || len(plan.CountArgs) != 0 {
		t.Fatalf("expected no args, got %v / %v", plan.Args, plan.CountArgs)
	}
	if plan.CountWhere != "TRUE" {
		t.Fatalf("expected TRUE count where, got %q", plan.CountWhere)
	}
}

func TestCompile_PlainRenumbersSequentially(t *testing.T) {
	f := Filter{Status: "Active", City: "Dallas", MinPay: float64Ptr(12)}
	plan := Compile(f, time.Now())

	want := `status = $1 AND city ILIKE $2 AND pay_rate_max >= $3`
	if plan.Where != want {
		t.Fatalf("expected %q, got %q", want, plan.Where)
	}
	if len(plan.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(plan.Args))
	}
	if plan.CountWhere != want {
		t.Fatalf("count where diverged: %q vs %q", plan.CountWhere, want)
	}
	if !reflect.DeepEqual(plan.Args, plan.CountArgs) {
		t.Fatalf("count args diverged: %v vs %v", plan.Args, plan.CountArgs)
	}
}

func TestCompile_ProximityPlan(t *testing.T) {
	f := Filter{
		Status:    "Active",
		Proximity: &Proximity{Lon: -97.74, Lat: 30.27, MaxDistanceMeters: 5000},
	}
	plan := Compile(f, time.Now())

	if plan.DistanceSelect != "earth_distance(ll_to_earth($1, $2), ll_to_earth(latitude, longitude)) AS distance_meters" {
		t.Fatalf("unexpected distance select: %q", plan.DistanceSelect)
	}
	if plan.OrderBy != "distance_meters ASC, posted_at DESC" {
		t.Fatalf("unexpected order by: %q", plan.OrderBy)
	}

	// select placeholders come first, so the where clauses start at $3
	if !strings.HasPrefix(plan.Where, "status = $3 AND ") {
		t.Fatalf("unexpected where: %q", plan.Where)
	}
	if !strings.Contains(plan.Where, "earth_box(ll_to_earth($4, $5), $6) @> ll_to_earth(latitude, longitude)") {
		t.Fatalf("missing bounding box clause: %q", plan.Where)
	}
	if !strings.Contains(plan.Where, "earth_distance(ll_to_earth($7, $8), ll_to_earth(latitude, longitude)) <= $9") {
		t.Fatalf("missing distance clause: %q", plan.Where)
	}

	wantArgs := []any{30.27, -97.74, "Active", 30.27, -97.74, 5000.0, 30.27, -97.74, 5000.0}
	if !reflect.DeepEqual(plan.Args, wantArgs) {
		t.Fatalf("unexpected args: %v", plan.Args)
	}
}

func TestCompile_ProximityCountNumberedFromOne(t *testing.T) {
	f := Filter{
		Status:    "Active",
		Proximity: &Proximity{Lon: 10, Lat: 20, MaxDistanceMeters: 100},
	}
	plan := Compile(f, time.Now())

	if !strings.HasPrefix(plan.CountWhere, "status = $1 AND ") {
		t.Fatalf("unexpected count where: %q", plan.CountWhere)
	}
	wantArgs := []any{"Active", 20.0, 10.0, 100.0, 20.0, 10.0, 100.0}
	if !reflect.DeepEqual(plan.CountArgs, wantArgs) {
		t.Fatalf("unexpected count args: %v", plan.CountArgs)
	}
}

// Both strategies must apply the identical non-geospatial predicate set so
// a filter never matches different jobs depending on ranking mode.
func TestCompile_StrategiesShareFilterSemantics(t *testing.T) {
	now := time.Now()
	f := Filter{
		Status:     "Active",
		JobTypes:   []string{"Contract"},
		City:       "Houston",
		Skills:     []string{"plumbing"},
		DatePosted: "30d",
		MinPay:     float64Ptr(18),
		MaxPay:     float64Ptr(55),
		Search:     "pipe",
	}

	plain := Compile(f, now)

	withProx := f
	withProx.Proximity = &Proximity{Lon: 1, Lat: 2, MaxDistanceMeters: 300}
	prox := Compile(withProx, now)

	// strip the two geo predicates and the geo args off the proximity count
	// plan; what remains must equal the plain plan exactly
	geoStart := strings.Index(prox.CountWhere, " AND earth_box(")
	if geoStart < 0 {
		t.Fatalf("geo clauses missing from count where: %q", prox.CountWhere)
	}
	if got := prox.CountWhere[:geoStart]; got != plain.CountWhere {
		t.Fatalf("filter predicates diverged:\nplain: %q\nprox:  %q", plain.CountWhere, got)
	}
	if got := prox.CountArgs[:len(plain.CountArgs)]; !reflect.DeepEqual(got, plain.CountArgs) {
		t.Fatalf("filter args diverged:\nplain: %v\nprox:  %v", plain.CountArgs, got)
	}
}

func TestRenumber(t *testing.T) {
	if got := renumber("a = ? AND b = ?", 4); got != "a = $4 AND b = $5" {
		t.Fatalf("unexpected renumber: %q", got)
	}
	if got := renumber("no placeholders", 1); got != "no placeholders" {
		t.Fatalf("unexpected renumber: %q", got)
	}
}

func TestStrategyFor(t *testing.T) {
	if _, ok := StrategyFor(Filter{}).(plainStrategy); !ok {
		t.Fatal("expected plain strategy without proximity")
	}
	f := Filter{Proximity: &Proximity{Lon: 1, Lat: 2, MaxDistanceMeters: 3}}
	if _, ok := StrategyFor(f).(proximityStrategy); !ok {
		t.Fatal("expected proximity strategy")
	}
}
