package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool       `json:"hit"`
	GeometryType string     `json:"geometryType,omitempty"`
	ObjectIndex  int        `json:"objectIndex"`
	Point        [3]float64 `json:"point"`
	Normal       [3]float64 `json:"normal"`
	Distance     float64    `json:"distance"`
	FrontFace    bool       `json:"frontFace"`
	Center       [3]float64 `json:"center"`
	Radius       float64    `json:"radius,omitempty"`
	Background   [3]float64 `json:"background"`
}

// handleInspect casts the center ray of a pixel and describes the first
// object it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	sceneID := values.Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sc, err := s.createScene(sceneID, renderer.CameraConfig{})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	width, err := parseIntParam(values, "width", sc.Width, 1, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	camera, err := renderer.NewCamera(sc.Camera, width)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	x, y, err := parsePixel(values, camera.ImageWidth(), camera.ImageHeight())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, camera, x, y))
}

func parsePixel(values url.Values, width, height int) (int, int, error) {
	if values.Get("x") == "" || values.Get("y") == "" {
		return 0, 0, fmt.Errorf("%w: x and y are required", errInvalidParam)
	}
	x, err := parseIntParam(values, "x", 0, 0, width-1)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseIntParam(values, "y", 0, 0, height-1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// inspectPixel finds the closest object along the pixel's center ray. Each
// top-level object is tested separately so the hit can be attributed.
func inspectPixel(sc *scene.Scene, camera *renderer.Camera, x, y int) InspectResponse {
	ray := camera.CenterRay(x, y)
	resp := InspectResponse{ObjectIndex: -1}

	rayT := core.NewInterval(renderer.HitEpsilon, math.Inf(1))
	var closest *geometry.HitRecord
	var hitObject geometry.Hittable
	for i, object := range sc.World.Objects() {
		if rec, ok := object.Hit(ray, rayT); ok {
			closest = rec
			hitObject = object
			resp.ObjectIndex = i
			rayT = rayT.WithMax(rec.T)
		}
	}

	if closest == nil {
		bg := renderer.Background(ray)
		resp.Background = [3]float64{bg.X, bg.Y, bg.Z}
		return resp
	}

	resp.Hit = true
	resp.Point = [3]float64{closest.Point.X, closest.Point.Y, closest.Point.Z}
	resp.Normal = [3]float64{closest.Normal.X, closest.Normal.Y, closest.Normal.Z}
	resp.Distance = closest.T * ray.Direction.Length()
	resp.FrontFace = closest.FrontFace

	switch obj := hitObject.(type) {
	case *geometry.Sphere:
		resp.GeometryType = "sphere"
		resp.Center = [3]float64{obj.Center.X, obj.Center.Y, obj.Center.Z}
		resp.Radius = obj.Radius
	default:
		resp.GeometryType = fmt.Sprintf("%T", hitObject)
	}
	return resp
}
