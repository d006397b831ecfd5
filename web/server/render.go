package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

const (
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 1000
)

var errInvalidParam = errors.New("invalid request parameter")

// RenderRequest represents a render request from the client.
// A zero width or sample count keeps the scene's own setting.
type RenderRequest struct {
	Scene           string
	Width           int
	SamplesPerPixel int
	MaxDepth        int // -1 keeps the scene value
	Seed            int64
	Format          string // "ppm" or "png"
}

// handleRender renders a frame and writes it as the response body
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := s.createScene(req.Scene, renderer.CameraConfig{
		SamplesPerPixel: req.SamplesPerPixel,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if req.MaxDepth >= 0 {
		sc.Camera.MaxDepth = req.MaxDepth
	}

	width := sc.Width
	if req.Width != 0 {
		width = req.Width
	}

	config := s.config
	config.Seed = req.Seed
	config.Logger = logger

	rt, err := renderer.NewRaytracer(sc.World, sc.Camera, config)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	// Use request context to stop rendering on client disconnection
	img, stats, err := rt.Render(r.Context(), width)
	if err != nil {
		if r.Context().Err() != nil {
			logger.Infof("render of %s cancelled: %v", sc.Name, err)
			return
		}
		writeError(w, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	contentType := "image/x-portable-pixmap"
	if req.Format == "png" {
		contentType = "image/png"
		err = img.WritePNG(&buf)
	} else {
		err = img.WritePPM(&buf)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Infof("rendered %s at %dx%d in %s", sc.Name, stats.Width, stats.Height, stats.RenderTime)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	w.Header().Set("X-Total-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("could not write image: %v", err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Format: "ppm"}

	if sceneID := values.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 0, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, 0, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", -1, 0, maxDepth); err != nil {
		return nil, err
	}

	req.Seed = s.config.Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: seed %q", errInvalidParam, value)
		}
	}

	if format := values.Get("format"); format != "" {
		req.Format = strings.ToLower(format)
	}
	if req.Format != "ppm" && req.Format != "png" {
		return nil, fmt.Errorf("%w: unknown format %q", errInvalidParam, req.Format)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", errInvalidParam, key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%w: %s must be between %d and %d, got %d", errInvalidParam, key, min, max, parsed)
	}
	return parsed, nil
}
