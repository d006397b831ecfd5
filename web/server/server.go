package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/df07/go-diffuse-raytracer/pkg/loaders"
	"github.com/df07/go-diffuse-raytracer/pkg/log"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

var logger = log.New("web")

const shutdownTimeout = 5 * time.Second

// Server handles web requests for the raytracer
type Server struct {
	scenesDir string
	config    renderer.Config
	router    *mux.Router
}

// NewServer creates a web server that looks up scene files in scenesDir and
// renders with config. The config seed is the default for requests that do
// not name one.
func NewServer(scenesDir string, config renderer.Config) *Server {
	s := &Server{
		scenesDir: scenesDir,
		config:    config,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/scenes", s.handleListScenes).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}", s.handleSceneConfig).Methods(http.MethodGet)
	api.HandleFunc("/render", s.handleRender).Methods(http.MethodGet)
	api.HandleFunc("/inspect", s.handleInspect).Methods(http.MethodGet)
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Noticef("starting web server on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Notice("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SceneResponse describes a scene available for rendering
type SceneResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group"`
	Type        string `json:"type"`
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	infos, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	scenes := make([]SceneResponse, len(infos))
	for i, info := range infos {
		scenes[i] = SceneResponse{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Group:       info.Group,
			Type:        info.Type,
		}
	}
	writeJSON(w, http.StatusOK, scenes)
}

// SceneConfigResponse holds the render defaults of a scene
type SceneConfigResponse struct {
	Scene           string     `json:"scene"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	SamplesPerPixel int        `json:"samplesPerPixel"`
	MaxDepth        int        `json:"maxDepth"`
	AspectRatio     float64    `json:"aspectRatio"`
	Center          [3]float64 `json:"center"`
	Objects         int        `json:"objects"`
}

func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sc, err := s.createScene(mux.Vars(r)["id"], renderer.CameraConfig{})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	cam := sc.Camera
	writeJSON(w, http.StatusOK, SceneConfigResponse{
		Scene:           sc.Name,
		Width:           sc.Width,
		Height:          cam.ImageHeight(sc.Width),
		SamplesPerPixel: cam.SamplesPerPixel,
		MaxDepth:        cam.MaxDepth,
		AspectRatio:     cam.AspectRatio,
		Center:          [3]float64{cam.Center.X, cam.Center.Y, cam.Center.Z},
		Objects:         sc.ObjectCount(),
	})
}

// createScene accepts built-in IDs and the names of scene files directly
// inside the scenes directory, never paths
func (s *Server) createScene(id string, overrides renderer.CameraConfig) (*scene.Scene, error) {
	return scene.CreateByName(s.scenesDir, id, overrides)
}

// statusFor maps scene and render errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrInvalidScene),
		errors.Is(err, loaders.ErrInvalidPath),
		errors.Is(err, errInvalidParam),
		errors.Is(err, renderer.ErrInvalidConfig),
		errors.Is(err, renderer.ErrInvalidCamera),
		errors.Is(err, renderer.ErrInvalidSamples),
		errors.Is(err, renderer.ErrInvalidDepth),
		errors.Is(err, renderer.ErrInvalidWidth):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warningf("could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error(err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
