package server

import (
	"net/http"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection.
// Positions are in camera space.
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeID      int                    `json:"shapeId"`
	Tag          string                 `json:"tag,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Distance     float64                `json:"distance"`
	Part         int                    `json:"part"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecJSON(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo lists the Phong coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"ambient":   vecJSON(mat.KAmbient),
		"diffuse":   vecJSON(mat.KDiffuse),
		"specular":  vecJSON(mat.KSpecular),
		"shininess": mat.Shininess,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecJSON(geom.Center)
		properties["radius"] = geom.Radius
		properties["material"] = extractMaterialInfo(geom.Material)
		return "sphere", properties

	case *geometry.Plane:
		properties["center"] = vecJSON(geom.Center)
		properties["normal"] = vecJSON(geom.Normal)
		properties["textured"] = geom.Texture != nil
		properties["material"] = extractMaterialInfo(geom.Material)
		return "plane", properties

	case *geometry.Disc:
		properties["center"] = vecJSON(geom.Center)
		properties["normal"] = vecJSON(geom.Normal)
		properties["radius"] = geom.Radius
		properties["material"] = extractMaterialInfo(geom.Material)
		return "disc", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecJSON(geom.V0), vecJSON(geom.V1), vecJSON(geom.V2)}
		properties["material"] = extractMaterialInfo(geom.Material)
		return "triangle", properties

	case *geometry.Cylinder:
		properties["base"] = vecJSON(geom.Base)
		properties["top"] = vecJSON(geom.Top)
		properties["radius"] = geom.Radius
		properties["material"] = extractMaterialInfo(geom.Material)
		return "cylinder", properties

	case *geometry.Cone:
		properties["base"] = vecJSON(geom.Base)
		properties["vertex"] = vecJSON(geom.Vertex)
		properties["radius"] = geom.Radius
		properties["material"] = extractMaterialInfo(geom.Material)
		return "cone", properties

	case *geometry.Cube:
		properties["center"] = vecJSON(geom.Center)
		properties["material"] = extractMaterialInfo(geom.Material)
		return "cube", properties

	default:
		return "unknown", properties
	}
}

// handleInspect casts a ray through one pixel and describes the nearest shape
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	values := r.URL.Query()
	if values.Get("x") == "" || values.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	pixelX, err := parseIntParam(values, "x", 0, 0, maxSize-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntParam(values, "y", 0, 0, maxSize-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.buildScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneObj.ConvertToCameraSpace(true)

	rc := renderer.NewRaycaster(renderer.Config{}, nil)
	canvas := rc.Canvas(sceneObj)
	if !canvas.Contains(pixelX, pixelY) {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	ray := canvas.PickRay(sceneObj.View.Eye, pixelX, pixelY)
	id, hit, ok := rc.Trace(sceneObj, ray)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ShapeID: -1})
		return
	}

	geometryType, properties := extractGeometryInfo(sceneObj.Shape(id))
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ShapeID:      int(id),
		Tag:          sceneObj.Tag(id),
		GeometryType: geometryType,
		Point:        vecJSON(ray.At(hit.T)),
		Distance:     -hit.T,
		Part:         hit.Part,
		Properties:   properties,
	})
}
