package apiserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"saxvideo/fingering"
	"saxvideo/videogenerator"
)

type KeyResponse struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	LaneY  float64 `json:"lane_y"`
}

// KeyUsageResponse is one key together with every pitch that presses it.
type KeyUsageResponse struct {
	KeyResponse
	Pitches []int `json:"pitches"`
}

type FingeringResponse struct {
	Pitch int      `json:"pitch"`
	Name  string   `json:"name"`
	Keys  []string `json:"keys"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	addr     string
	origins  []string
	renderer *videogenerator.Renderer
}

func New(addr string, origins []string, r *videogenerator.Renderer) *Server {
	return &Server{addr: addr, origins: origins, renderer: r}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("could not write response")
	}
}

// pitchVar parses the {pitch} route variable, answering the request itself
// when it is missing, malformed or outside the fingering table.
func pitchVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	pitch, err := strconv.Atoi(mux.Vars(r)["pitch"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "pitch must be an integer"})
		return 0, false
	}
	if !fingering.InRange(pitch) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: "no fingering for " + fingering.NoteName(pitch),
		})
		return 0, false
	}
	return pitch, true
}

func keyResponse(k fingering.KeyID) KeyResponse {
	var key = fingering.Layout(k)
	return KeyResponse{
		Name:   k.String(),
		Label:  key.Label,
		X:      key.Position.X,
		Y:      key.Position.Y,
		Radius: key.Radius,
		LaneY:  key.LaneY,
	}
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	var keys = make([]KeyResponse, 0, len(fingering.Keys()))
	for _, k := range fingering.Keys() {
		keys = append(keys, keyResponse(k))
	}
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var name = mux.Vars(r)["name"]
	k, ok := fingering.ParseKey(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown key " + name})
		return
	}

	var usage = KeyUsageResponse{KeyResponse: keyResponse(k), Pitches: []int{}}
	for pitch := fingering.LowestPitch; pitch <= fingering.HighestPitch; pitch++ {
		if fingering.Pressed(pitch).Has(k) {
			usage.Pitches = append(usage.Pitches, pitch)
		}
	}
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleFingering(w http.ResponseWriter, r *http.Request) {
	pitch, ok := pitchVar(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, FingeringResponse{
		Pitch: pitch,
		Name:  fingering.NoteName(pitch),
		Keys:  fingering.Pressed(pitch).Strings(),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	pitch, ok := pitchVar(w, r)
	if !ok {
		return
	}

	var canvas = videogenerator.NewImageCanvas(videogenerator.ChartResolution)
	s.renderer.DrawChart(canvas, pitch)

	w.Header().Set("Content-Type", "image/png")
	if err := canvas.EncodePNG(w); err != nil {
		logrus.WithError(err).WithField("pitch", pitch).Error("could not encode chart")
	}
}

// Handler returns the routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/keys", s.handleKeys).Methods(http.MethodGet)
	r.HandleFunc("/keys/{name}", s.handleKey).Methods(http.MethodGet)
	r.HandleFunc("/fingering/{pitch}", s.handleFingering).Methods(http.MethodGet)
	r.HandleFunc("/chart/{pitch}.png", s.handleChart).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(r)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", s.addr).Info("Running server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "api server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
