package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes the BRDF and emission of a material
func (s *Server) extractMaterialInfo(mat *material.Material, uv core.Vec2) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	if mat.EmittedRadiance != nil {
		emission := mat.EmittedRadiance.Color(uv)
		properties["emission"] = [3]float64{emission.R, emission.G, emission.B}
	}

	color := mat.BRDF.Pigment().Color(uv)
	properties["color"] = hexColor(color)
	properties["pigment"] = pigmentType(mat.BRDF.Pigment())

	switch brdf := mat.BRDF.(type) {
	case *material.DiffuseBRDF:
		properties["reflectance"] = brdf.Reflectance
		return "diffuse", properties

	case *material.SpecularBRDF:
		properties["thresholdAngleRad"] = brdf.ThresholdAngleRad
		return "specular", properties

	default:
		return "unknown", properties
	}
}

func pigmentType(p material.Pigment) string {
	switch p.(type) {
	case *material.UniformPigment:
		return "uniform"
	case *material.CheckeredPigment:
		return "checkered"
	case *material.ImagePigment:
		return "image"
	default:
		return "unknown"
	}
}

func hexColor(c core.Color) string {
	channel := func(x float64) int {
		return int(max(0, min(1, x)) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// inspectPixel casts a ray through the center of the specified pixel and
// returns the closest intersection
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) geometry.HitRecord {
	tracer := renderer.NewImageTracer(core.NewHdrImage(width, height), sceneObj.Camera, 0, nil)
	ray := tracer.FireRay(pixelX, pixelY, 0.5, 0.5)
	return sceneObj.World.RayIntersection(ray)
}

// extractGeometryInfo describes the world placement of a shape
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		center := geom.Transform.ApplyPoint(core.NewPoint(0, 0, 0))
		properties["center"] = [3]float64{center.X, center.Y, center.Z}
		return "sphere", properties

	case *geometry.Plane:
		origin := geom.Transform.ApplyPoint(core.NewPoint(0, 0, 0))
		normal := geom.Transform.ApplyNormal(core.NewNormal(0, 0, 1))
		properties["origin"] = [3]float64{origin.X, origin.Y, origin.Z}
		properties["normal"] = [3]float64{normal.X, normal.Y, normal.Z}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	hit := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if !hit.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(hit.Shape.Material(), hit.SurfacePoint)
	geometryType, geometryProps := s.extractGeometryInfo(hit.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.WorldPoint.X, hit.WorldPoint.Y, hit.WorldPoint.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		UV:           [2]float64{hit.SurfacePoint.U, hit.SurfacePoint.V},
		Distance:     hit.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
