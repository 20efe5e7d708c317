package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workhub/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*NominatimClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNominatimClient(config.GeocoderConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil), srv
}

func TestNominatimClient_Resolve_Success(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431","display_name":"Austin, Travis County, Texas, USA"}]`))
	})

	res, err := client.Resolve(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotQuery != "Austin" {
		t.Fatalf("expected q=Austin, got %q", gotQuery)
	}
	if res.Lat != 30.2672 || res.Lon != -97.7431 {
		t.Fatalf("unexpected coordinates: %+v", res)
	}
	if res.FormattedAddress != "Austin, Travis County, Texas, USA" {
		t.Fatalf("unexpected address: %q", res.FormattedAddress)
	}
}

func TestNominatimClient_Resolve_EmptyResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.Resolve(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestNominatimClient_Resolve_ProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.Resolve(context.Background(), "Austin")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNominatimClient_Resolve_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewNominatimClient(config.GeocoderConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)

	_, err := client.Resolve(context.Background(), "Austin")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNominatimClient_Resolve_EmptyInput(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for empty input")
	})

	_, err := client.Resolve(context.Background(), "   ")
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestNominatimClient_Resolve_BadCoordinates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"north","lon":"west"}]`))
	})

	_, err := client.Resolve(context.Background(), "Austin")
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestNominatimClient_Resolve_APIKeyForwarded(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`[{"lat":"1","lon":"2","display_name":"x"}]`))
	}))
	defer srv.Close()
	client := NewNominatimClient(config.GeocoderConfig{BaseURL: srv.URL, APIKey: "secret"}, nil)

	if _, err := client.Resolve(context.Background(), "Austin"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotKey != "secret" {
		t.Fatalf("expected key forwarded, got %q", gotKey)
	}
}

func TestFormattedAddress_Fallbacks(t *testing.T) {
	p := nominatimPlace{}
	if got := formattedAddress(p, "original"); got != "original" {
		t.Fatalf("expected original input, got %q", got)
	}

	p.Address.Town = "Smallville"
	p.Address.Country = "USA"
	if got := formattedAddress(p, "original"); got != "Smallville, USA" {
		t.Fatalf("expected town+country, got %q", got)
	}

	p.DisplayName = "Smallville, Kansas, USA"
	if got := formattedAddress(p, "original"); got != "Smallville, Kansas, USA" {
		t.Fatalf("expected display name, got %q", got)
	}
}
