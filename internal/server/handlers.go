package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/five82/beerdex/internal/catalog"
)

const (
	catalogRoute = "/data/beers/beers.json"
	detailRoute  = "/data/beers/details/{id:[A-Za-z0-9._-]+}.json"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.serveJSONFile(w, r, filepath.Join(s.dataDir, "beers", "beers.json"), "catalog")
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !catalog.ValidID(id) {
		writeError(w, http.StatusNotFound, "beer not found")
		return
	}
	s.serveJSONFile(w, r, filepath.Join(s.dataDir, "beers", "details", id+".json"), "beer")
}

func (s *Server) serveJSONFile(w http.ResponseWriter, r *http.Request, path, what string) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, what+" not found")
			return
		}
		s.logger.WithError(err).WithField("path", path).Error("open data file")
		writeError(w, http.StatusInternalServerError, "read "+what)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

type healthResponse struct {
	Status string `json:"status"`
	Beers  int    `json:"beers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, "beers", "beers.json"))
	if err != nil {
		s.logger.WithError(err).Warn("health check: catalog unreadable")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	var beers []json.RawMessage
	if err := json.Unmarshal(data, &beers); err != nil {
		s.logger.WithFields(logrus.Fields{"error": err}).Warn("health check: catalog invalid")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "invalid catalog"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Beers: len(beers)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
