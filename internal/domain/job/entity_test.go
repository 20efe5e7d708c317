package job

import "testing"

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{
		"Full-time":   TypeFullTime,
		"full-time":   TypeFullTime,
		" PART-TIME ": TypePartTime,
		"contract":    TypeContract,
	} {
		got, ok := ParseType(in)
		if !ok || got != want {
			t.Fatalf("ParseType(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseType("gig"); ok {
		t.Fatal("expected unknown type to fail")
	}
}

func TestParseStatus(t *testing.T) {
	got, ok := ParseStatus(" active ")
	if !ok || got != StatusActive {
		t.Fatalf("ParseStatus = %q, %v", got, ok)
	}
	if _, ok := ParseStatus("archived"); ok {
		t.Fatal("expected unknown status to fail")
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusActive.Terminal() {
		t.Fatal("Active is not terminal")
	}
	if !StatusFilled.Terminal() || !StatusClosed.Terminal() {
		t.Fatal("Filled and Closed are terminal")
	}
}

func TestPointIsSentinel(t *testing.T) {
	if !(Point{}).IsSentinel() {
		t.Fatal("zero point is the sentinel")
	}
	if (Point{Lon: -97.74, Lat: 30.27}).IsSentinel() {
		t.Fatal("resolved point is not the sentinel")
	}
}
