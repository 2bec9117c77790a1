package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestService starts a fake character service. Every URL it hands out
// points back at the server itself.
func newTestService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/api/character", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			http.Error(w, "unexpected page", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"info": {"count": 826, "pages": 42, "next": "%[1]s/api/character?page=2", "prev": null},
			"results": [
				{"id": 1, "name": "Rick Sanchez", "status": "Alive", "species": "Human",
				 "image": "%[1]s/api/character/avatar/1.jpeg",
				 "episode": ["%[1]s/api/episode/1", "%[1]s/api/episode/2"],
				 "location": {"name": "Citadel of Ricks", "url": "%[1]s/api/location/3"}},
				{"id": 2, "name": "Morty Smith", "status": "Alive", "species": "Human",
				 "image": "%[1]s/api/character/avatar/2.jpeg",
				 "episode": ["%[1]s/api/episode/1"],
				 "location": {"name": "Citadel of Ricks", "url": "%[1]s/api/location/3"}}
			]
		}`, srv.URL)
	})
	mux.HandleFunc("/api/character/2", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 2, "name": "Morty Smith", "status": "Alive", "episode": []}`)
	})
	mux.HandleFunc("/api/episode/1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 1, "name": "Pilot", "air_date": "December 2, 2013", "episode": "S01E01"}`)
	})
	mux.HandleFunc("/api/episode/nameless", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 99}`)
	})
	mux.HandleFunc("/api/location/3", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"id": 3, "name": "Citadel of Ricks", "type": "Space station",
			"residents": ["%[1]s/api/character/2"]}`, srv.URL)
	})
	mux.HandleFunc("/api/broken", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"name": `)
	})
	mux.HandleFunc("/api/headers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id": 7, "name": %q, "species": %q, "status": %q}`,
			r.Header.Get("X-Test"), r.Header.Get("Cookie"), r.Header.Get("User-Agent"))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(srv.URL+"/api", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// TestNewClient tests client construction.
func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("accepts https base URL", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(DefaultBaseURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.BaseURL() != DefaultBaseURL {
			t.Errorf("expected %q, got %q", DefaultBaseURL, c.BaseURL())
		}
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("/api")
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("ftp://example.com/api")
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})

	t.Run("rejects malformed proxy address", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient(DefaultBaseURL, WithProxy("localhost"))
		if !errors.Is(err, ErrInvalidProxyAddress) {
			t.Errorf("expected ErrInvalidProxyAddress, got %v", err)
		}
	})

	t.Run("accepts SOCKS5 proxy address", func(t *testing.T) {
		t.Parallel()
		if _, err := NewClient(DefaultBaseURL, WithProxy("127.0.0.1:9050")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestIsValidProxyAddress tests proxy address validation.
func TestIsValidProxyAddress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		address string
		valid   bool
	}{
		{"127.0.0.1:9050", true},
		{"localhost:1080", true},
		{"[::1]:9050", true},
		{"127.0.0.1", false},
		{":9050", false},
		{"host:0", false},
		{"host:65536", false},
		{"host:abc", false},
	}

	for _, tc := range testCases {
		t.Run(tc.address, func(t *testing.T) {
			t.Parallel()
			if got := isValidProxyAddress(tc.address); got != tc.valid {
				t.Errorf("isValidProxyAddress(%q) = %v, expected %v", tc.address, got, tc.valid)
			}
		})
	}
}

// TestListingURL tests listing URL construction.
func TestListingURL(t *testing.T) {
	t.Parallel()

	c, err := NewClient("https://rickandmortyapi.com/api")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ListingURL(); got != "https://rickandmortyapi.com/api/character?page=1" {
		t.Errorf("unexpected listing URL %q", got)
	}
	if got := c.CharacterURL(42); got != "https://rickandmortyapi.com/api/character/42" {
		t.Errorf("unexpected character URL %q", got)
	}
}

// TestFetchCharacters tests the listing results fetch.
func TestFetchCharacters(t *testing.T) {
	t.Parallel()

	srv := newTestService(t)
	c := newTestClient(t, srv)

	characters, err := c.FetchCharacters(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(characters))
	}
	rick := characters[0]
	if rick.ID != 1 || rick.Name != "Rick Sanchez" || rick.Status != "Alive" {
		t.Errorf("unexpected first character %+v", rick)
	}
	if len(rick.Episode) != 2 {
		t.Errorf("expected 2 episode refs, got %d", len(rick.Episode))
	}
	if rick.Location.URL != srv.URL+"/api/location/3" {
		t.Errorf("unexpected location url %q", rick.Location.URL)
	}
}

// TestFetchPageInfo tests the listing info fetch.
func TestFetchPageInfo(t *testing.T) {
	t.Parallel()

	srv := newTestService(t)
	c := newTestClient(t, srv)

	info, err := c.FetchPageInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Count != 826 || info.Pages != 42 {
		t.Errorf("unexpected info %+v", info)
	}
}

// TestFetchEpisode tests episode dereferencing.
func TestFetchEpisode(t *testing.T) {
	t.Parallel()

	srv := newTestService(t)
	c := newTestClient(t, srv)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		ep, err := c.FetchEpisode(context.Background(), srv.URL+"/api/episode/1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.Name != "Pilot" || ep.Code != "S01E01" {
			t.Errorf("unexpected episode %+v", ep)
		}
	})

	t.Run("missing name is a decode failure", func(t *testing.T) {
		t.Parallel()
		_, err := c.FetchEpisode(context.Background(), srv.URL+"/api/episode/nameless")
		if !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("404 is a bad response", func(t *testing.T) {
		t.Parallel()
		_, err := c.FetchEpisode(context.Background(), srv.URL+"/api/episode/404")
		if !errors.Is(err, ErrBadResponse) {
			t.Fatalf("expected ErrBadResponse, got %v", err)
		}
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StatusError, got %T", err)
		}
		if se.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", se.StatusCode)
		}
	})

	t.Run("invalid JSON is a decode failure", func(t *testing.T) {
		t.Parallel()
		_, err := c.FetchEpisode(context.Background(), srv.URL+"/api/broken")
		if !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("relative URL is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := c.FetchEpisode(context.Background(), "/api/episode/1")
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})
}

// TestFetchLocationAndCharacter tests location and resident dereferencing.
func TestFetchLocationAndCharacter(t *testing.T) {
	t.Parallel()

	srv := newTestService(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	loc, err := c.FetchLocation(ctx, srv.URL+"/api/location/3")
	if err != nil {
		t.Fatalf("FetchLocation: %v", err)
	}
	if loc.Name != "Citadel of Ricks" || len(loc.Residents) != 1 {
		t.Fatalf("unexpected location %+v", loc)
	}

	resident, err := c.FetchCharacter(ctx, loc.Residents[0])
	if err != nil {
		t.Fatalf("FetchCharacter: %v", err)
	}
	if resident.ID != 2 || resident.Name != "Morty Smith" {
		t.Errorf("unexpected resident %+v", resident)
	}

	// An episode body lacks residents.
	if _, err := c.FetchLocation(ctx, srv.URL+"/api/episode/1"); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

// TestNetworkFailure tests that transport errors are ErrNetwork.
func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base+"/api", WithTimeout(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.FetchCharacters(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

// TestListingErrors tests listing failure propagation.
func TestListingErrors(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		c := newTestClient(t, srv)
		if _, err := c.FetchCharacters(context.Background()); !errors.Is(err, ErrBadResponse) {
			t.Errorf("expected ErrBadResponse, got %v", err)
		}
		if _, err := c.FetchPageInfo(context.Background()); !errors.Is(err, ErrBadResponse) {
			t.Errorf("expected ErrBadResponse, got %v", err)
		}
	})

	t.Run("missing results field", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"error": "There is nothing here"}`)
		}))
		t.Cleanup(srv.Close)

		c := newTestClient(t, srv)
		if _, err := c.FetchCharacters(context.Background()); !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
		if _, err := c.FetchPageInfo(context.Background()); !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("body over the limit", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `{"results": [], "info": {"count": 0}, "pad": %q}`, strings.Repeat("x", 1024))
		}))
		t.Cleanup(srv.Close)

		c := newTestClient(t, srv, WithMaxBodySize(128))
		if _, err := c.FetchCharacters(context.Background()); !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})
}

// TestHeaderInjection tests that configured headers and cookies are sent.
func TestHeaderInjection(t *testing.T) {
	t.Parallel()

	srv := newTestService(t)
	c := newTestClient(t, srv,
		WithHeaders(map[string]string{"X-Test": "value"}),
		WithCookie("session=abc"),
		WithUserAgent("rmcatalog-test"),
	)

	echo, err := c.FetchCharacter(context.Background(), srv.URL+"/api/headers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if echo.Name != "value" {
		t.Errorf("expected X-Test header 'value', got %q", echo.Name)
	}
	if echo.Species != "session=abc" {
		t.Errorf("expected cookie 'session=abc', got %q", echo.Species)
	}
	if echo.Status != "rmcatalog-test" {
		t.Errorf("expected user agent 'rmcatalog-test', got %q", echo.Status)
	}
}
