package query

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func float64Ptr(v float64) *float64 { return &v }

func TestFilter_Clauses_Empty(t *testing.T) {
	if got := (Filter{}).Clauses(time.Now()); len(got) != 0 {
		t.Fatalf("expected no clauses, got %d", len(got))
	}
}

func TestFilter_Clauses_BlankValuesIgnored(t *testing.T) {
	f := Filter{
		Status:     "   ",
		City:       "",
		JobTypes:   []string{"", "  "},
		Skills:     []string{" "},
		DatePosted: "yesterday",
		Search:     "",
	}
	if got := f.Clauses(time.Now()); len(got) != 0 {
		t.Fatalf("expected no clauses, got %d: %+v", len(got), got)
	}
}

func TestFilter_Clauses_Order(t *testing.T) {
	empID := uuid.New()
	f := Filter{
		Status:     "Active",
		JobTypes:   []string{"Full-time"},
		City:       "Austin",
		Skills:     []string{"Welding"},
		DatePosted: "7d",
		MinPay:     float64Ptr(15),
		MaxPay:     float64Ptr(40),
		EmployerID: &empID,
		Search:     "roof",
	}

	clauses := f.Clauses(time.Now())
	want := []string{
		"status = ?",
		"lower(job_type) = ANY(?)",
		"city ILIKE ?",
		"EXISTS (SELECT 1 FROM unnest(required_skills) AS s WHERE lower(s) = ANY(?))",
		"posted_at >= ?",
		"pay_rate_max >= ?",
		"pay_rate_min <= ?",
		"employer_id = ?",
		"(title ILIKE ? OR description ILIKE ?)",
	}
	if len(clauses) != len(want) {
		t.Fatalf("expected %d clauses, got %d", len(want), len(clauses))
	}
	for i, c := range clauses {
		if c.Expr != want[i] {
			t.Fatalf("clause %d: expected %q, got %q", i, want[i], c.Expr)
		}
	}
}

func TestFilter_Clauses_PayOverlap(t *testing.T) {
	f := Filter{MinPay: float64Ptr(20), MaxPay: float64Ptr(35)}
	clauses := f.Clauses(time.Now())
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	// minPay bounds the job's upper rate, maxPay bounds the lower rate
	if clauses[0].Expr != "pay_rate_max >= ?" || clauses[0].Args[0] != 20.0 {
		t.Fatalf("unexpected minPay clause: %+v", clauses[0])
	}
	if clauses[1].Expr != "pay_rate_min <= ?" || clauses[1].Args[0] != 35.0 {
		t.Fatalf("unexpected maxPay clause: %+v", clauses[1])
	}
}

func TestFilter_Clauses_DateWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"24h", 24 * time.Hour},
		{"3d", 3 * 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"30d", 30 * 24 * time.Hour},
		{" 7D ", 7 * 24 * time.Hour},
	}
	for _, tc := range cases {
		clauses := Filter{DatePosted: tc.in}.Clauses(now)
		if len(clauses) != 1 {
			t.Fatalf("%q: expected 1 clause, got %d", tc.in, len(clauses))
		}
		got, ok := clauses[0].Args[0].(time.Time)
		if !ok {
			t.Fatalf("%q: expected time.Time arg, got %T", tc.in, clauses[0].Args[0])
		}
		if !got.Equal(now.Add(-tc.want)) {
			t.Fatalf("%q: expected cutoff %v, got %v", tc.in, now.Add(-tc.want), got)
		}
	}
}

func TestFilter_Clauses_UnknownDateWindowIgnored(t *testing.T) {
	for _, in := range []string{"", "1y", "48h", "all"} {
		if clauses := (Filter{DatePosted: in}).Clauses(time.Now()); len(clauses) != 0 {
			t.Fatalf("%q: expected no clauses, got %d", in, len(clauses))
		}
	}
}

func TestFilter_Clauses_CityEscapesWildcards(t *testing.T) {
	clauses := Filter{City: "100%_real\\town"}.Clauses(time.Now())
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	arg := clauses[0].Args[0].(string)
	if arg != `%100\%\_real\\town%` {
		t.Fatalf("unexpected pattern: %q", arg)
	}
}

func TestFilter_Clauses_SkillsLowered(t *testing.T) {
	clauses := Filter{Skills: []string{" Welding ", "CARPENTRY", ""}}.Clauses(time.Now())
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	skills := clauses[0].Args[0].([]string)
	if len(skills) != 2 || skills[0] != "welding" || skills[1] != "carpentry" {
		t.Fatalf("unexpected skills arg: %v", skills)
	}
}

func TestFilter_Clauses_SearchMatchesTitleOrDescription(t *testing.T) {
	clauses := Filter{Search: "roof repair"}.Clauses(time.Now())
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	c := clauses[0]
	if !strings.Contains(c.Expr, "title ILIKE") || !strings.Contains(c.Expr, "description ILIKE") {
		t.Fatalf("unexpected expr: %q", c.Expr)
	}
	if len(c.Args) != 2 || c.Args[0] != c.Args[1] {
		t.Fatalf("expected the same pattern twice, got %v", c.Args)
	}
}

func TestProximityFromStrings_Complete(t *testing.T) {
	p := ProximityFromStrings("-97.74", "30.27", "5000")
	if p == nil {
		t.Fatal("expected proximity, got nil")
	}
	if p.Lon != -97.74 || p.Lat != 30.27 || p.MaxDistanceMeters != 5000 {
		t.Fatalf("unexpected proximity: %+v", p)
	}
}

func TestProximityFromStrings_PartialOrInvalid(t *testing.T) {
	cases := []struct {
		name              string
		lon, lat, maxDist string
	}{
		{"all empty", "", "", ""},
		{"missing lat", "-97.74", "", "5000"},
		{"missing dist", "-97.74", "30.27", ""},
		{"malformed lon", "east", "30.27", "5000"},
		{"malformed dist", "-97.74", "30.27", "far"},
		{"zero dist", "-97.74", "30.27", "0"},
		{"negative dist", "-97.74", "30.27", "-10"},
		{"lon out of range", "-181", "30.27", "5000"},
		{"lat out of range", "-97.74", "91", "5000"},
	}
	for _, tc := range cases {
		if p := ProximityFromStrings(tc.lon, tc.lat, tc.maxDist); p != nil {
			t.Fatalf("%s: expected nil, got %+v", tc.name, p)
		}
	}
}
