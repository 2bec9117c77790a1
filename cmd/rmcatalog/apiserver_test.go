package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/config"
)

// newTestAPI serves a three-character catalog:
//
//	1 Rick Sanchez  Alive  first seen in Pilot            lives in Citadel of Ricks
//	2 Morty Smith   Alive  first seen in Pilot            lives in Earth (C-137)
//	3 Birdperson    Dead   first seen in Ricksy Business  location unknown
//
// Citadel of Ricks lists Rick and a resident that answers 404.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	rick := func() string {
		return fmt.Sprintf(`{"id": 1, "name": "Rick Sanchez", "status": "Alive", "species": "Human",
			"image": "%[1]s/api/character/avatar/1.jpeg",
			"episode": ["%[1]s/api/episode/1", "%[1]s/api/episode/2"],
			"location": {"name": "Citadel of Ricks", "url": "%[1]s/api/location/3"}}`, srv.URL)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/character", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"info": {"count": 826, "pages": 42, "next": "%[1]s/api/character?page=2", "prev": null},
			"results": [
				%[2]s,
				{"id": 2, "name": "Morty Smith", "status": "Alive", "species": "Human",
				 "episode": ["%[1]s/api/episode/1"],
				 "location": {"name": "Earth (C-137)", "url": "%[1]s/api/location/1"}},
				{"id": 3, "name": "Birdperson", "status": "Dead", "species": "Bird-Person",
				 "episode": ["%[1]s/api/episode/2"],
				 "location": {"name": "unknown", "url": ""}}
			]}`, srv.URL, rick())
	})
	mux.HandleFunc("/api/character/1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, rick())
	})
	mux.HandleFunc("/api/character/404", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "Character not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/episode/1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 1, "name": "Pilot", "episode": "S01E01"}`)
	})
	mux.HandleFunc("/api/episode/2", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 2, "name": "Ricksy Business", "episode": "S01E11"}`)
	})
	mux.HandleFunc("/api/location/3", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"id": 3, "name": "Citadel of Ricks",
			"residents": ["%[1]s/api/character/1", "%[1]s/api/character/404"]}`, srv.URL)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testConfig returns a config pointed at srv with no file or env layering.
func testConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()

	cfg := config.NewConfig()
	cfg.BaseURL = srv.URL + "/api"
	cfg.DBDir = t.TempDir()
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
