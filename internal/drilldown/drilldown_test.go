package drilldown

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/api"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// fakeService serves locations and characters from memory.
// Unknown URLs produce a 404 StatusError.
type fakeService struct {
	locations  map[string]model.Location
	characters map[string]model.Character
}

func (f *fakeService) FetchLocation(_ context.Context, u string) (model.Location, error) {
	loc, ok := f.locations[u]
	if !ok {
		return model.Location{}, &api.StatusError{URL: u, StatusCode: http.StatusNotFound}
	}
	return loc, nil
}

func (f *fakeService) FetchCharacter(_ context.Context, u string) (model.Character, error) {
	c, ok := f.characters[u]
	if !ok {
		return model.Character{}, &api.StatusError{URL: u, StatusCode: http.StatusNotFound}
	}
	return c, nil
}

// TestResolve tests drill-down resolution.
func TestResolve(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		locations: map[string]model.Location{
			"https://x/location/1": {
				ID:        1,
				Name:      "Earth (C-137)",
				Residents: []string{"https://x/character/1", "https://x/character/404", "https://x/character/2"},
			},
			"https://x/location/empty": {ID: 2, Name: "Nowhere"},
		},
		characters: map[string]model.Character{
			"https://x/character/1": {ID: 1, Name: "Rick Sanchez", Status: "Alive"},
			"https://x/character/2": {ID: 2, Name: "Morty Smith", Status: "Alive"},
		},
	}

	t.Run("drops failed residents and keeps order", func(t *testing.T) {
		t.Parallel()

		res, err := NewEngine(svc).Resolve(context.Background(), "https://x/location/1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Location.Name != "Earth (C-137)" {
			t.Errorf("unexpected location name %q", res.Location.Name)
		}
		if len(res.Residents) != 2 {
			t.Fatalf("expected 2 residents, got %d", len(res.Residents))
		}
		if res.Residents[0].ID != 1 || res.Residents[1].ID != 2 {
			t.Errorf("unexpected resident order %d, %d", res.Residents[0].ID, res.Residents[1].ID)
		}
		if len(res.Dropped) != 1 || res.Dropped[0] != "https://x/character/404" {
			t.Errorf("unexpected dropped list %v", res.Dropped)
		}
	})

	t.Run("location without residents", func(t *testing.T) {
		t.Parallel()

		res, err := NewEngine(svc).Resolve(context.Background(), "https://x/location/empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Residents) != 0 {
			t.Errorf("expected no residents, got %d", len(res.Residents))
		}
	})

	t.Run("failed location aborts", func(t *testing.T) {
		t.Parallel()

		_, err := NewEngine(svc).Resolve(context.Background(), "https://x/location/missing")
		if !errors.Is(err, ErrLocation) {
			t.Errorf("expected ErrLocation, got %v", err)
		}
		if !errors.Is(err, api.ErrBadResponse) {
			t.Errorf("expected the api error to be wrapped, got %v", err)
		}
	})
}

// TestResolveOverHTTP exercises the engine against the real client.
func TestResolveOverHTTP(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/location/20", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"id": 20, "name": "Earth (Replacement Dimension)",
			"residents": ["%[1]s/api/character/1", "%[1]s/api/character/2"]}`, srv.URL)
	})
	mux.HandleFunc("/api/character/1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 1, "name": "Rick Sanchez", "status": "Alive", "episode": []}`)
	})
	mux.HandleFunc("/api/character/2", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "Character not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/location/bad", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(client, WithConcurrency(1))

	res, err := e.Resolve(context.Background(), srv.URL+"/api/location/20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Residents) != 1 || res.Residents[0].Name != "Rick Sanchez" {
		t.Errorf("expected only Rick, got %+v", res.Residents)
	}

	if _, err := e.Resolve(context.Background(), srv.URL+"/api/location/bad"); !errors.Is(err, api.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
