package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64    { return [3]float64{v.X, v.Y, v.Z} }
func pointArray(p core.Point) [3]float64 { return [3]float64{p.X, p.Y, p.Z} }
func colorArray(c core.Color) [3]float64 { return [3]float64{c.R, c.G, c.B} }

func toByte(v float64) int {
	return int(math.Max(0, math.Min(1, v)) * 255)
}

// extractSurfaceInfo describes the optical properties of a surface
func (s *Server) extractSurfaceInfo(surface *material.Surface) map[string]interface{} {
	return map[string]interface{}{
		"k":          colorArray(surface.K),
		"n":          colorArray(surface.N),
		"f0":         colorArray(surface.F0()),
		"shininess":  surface.Shininess,
		"reflective": surface.Reflective,
		"refractive": surface.Refractive,
		"color": fmt.Sprintf("#%02x%02x%02x",
			toByte(surface.K.R), toByte(surface.K.G), toByte(surface.K.B)),
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = pointArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Ground:
		properties["height"] = 0.0
		return "ground", properties

	case *geometry.Cylinder:
		properties["base"] = pointArray(geom.Base)
		properties["axis"] = vecArray(geom.Axis)
		properties["radii"] = [2]float64{geom.RadiusU, geom.RadiusV}
		properties["height"] = geom.Height
		properties["infinite"] = geom.Height == 0
		return "cylinder", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through a pixel and returns the first hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (core.Ray, scene.Intersection, bool) {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, width, height)
	hit, ok := sceneObj.World.FirstIntersect(ray)
	return ray, hit, ok
}

// handleInspect handles ray casting inspection requests. Pixel coordinates
// are in image space, with y growing downward as in the rendered PNG.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}
	sceneObj, err := s.createScene(sceneID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	width, err := parseIntParam(query, "width", sceneObj.Width, minImageSize, maxImageSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}
	height, err := parseIntParam(query, "height", sceneObj.Height, minImageSize, maxImageSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := parseIntParam(query, "x", -1, 0, width-1)
	if err != nil || pixelX < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, height-1)
	if err != nil || pixelY < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	// The framebuffer stores the bottom row first
	ray, hit, ok := inspectPixel(sceneObj, width, height, pixelX, height-1-pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	geometryType, geometryProps := s.extractGeometryInfo(hit.Shape)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        pointArray(ray.At(hit.T)),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		Properties: map[string]interface{}{
			"surface":  s.extractSurfaceInfo(hit.Shape.Surface()),
			"geometry": geometryProps,
		},
	})
}
