package server

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// errOutsideFrame rejects picks that miss the requested frame
var errOutsideFrame = errors.New("pixel is outside the frame")

// FrameRequest selects what a frame shows
type FrameRequest struct {
	Scene  string       `json:"scene"`  // Built-in name or "descriptor:<file>"
	Season scene.Season `json:"season"` // Only used by the garden
	Width  int          `json:"width"`  // 0 keeps the scene's resolution
	Height int          `json:"height"`
}

// Frame is a rendered and normalized image with the scene it shows. The
// scene is left in camera space.
type Frame struct {
	Request FrameRequest
	Scene   *scene.Scene
	Canvas  renderer.Canvas
	Image   *image.RGBA
	RGB     []byte
	Stats   renderer.RenderStats
}

// PickResponse is returned by /api/pick
type PickResponse struct {
	Hit    bool         `json:"hit"`
	Season scene.Season `json:"season,omitempty"`
}

// parseFrameRequest reads scene, season, width and height from the query
func parseFrameRequest(r *http.Request) (FrameRequest, error) {
	values := r.URL.Query()
	req := FrameRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "garden" // Default scene
	}

	season, err := scene.ParseSeason(values.Get("season"))
	if err != nil {
		return req, err
	}
	req.Season = season

	if req.Width, err = parseIntParam(values, "width", 0, minSize, maxSize); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minSize, maxSize); err != nil {
		return req, err
	}
	return req, nil
}

// resolveDescriptor finds the built-in or descriptor scene at the requested
// resolution. It returns the directory textures are resolved against.
func (s *Server) resolveDescriptor(req FrameRequest) (*scene.Descriptor, string, error) {
	var (
		desc    *scene.Descriptor
		baseDir string
		err     error
	)
	if file, ok := strings.CutPrefix(req.Scene, "descriptor:"); ok {
		// Only plain file names inside the scenes directory
		if file == "" || file != filepath.Base(file) {
			return nil, "", fmt.Errorf("%w: %q", scene.ErrUnknownScene, req.Scene)
		}
		baseDir = s.config.ScenesDir
		desc, err = scene.LoadDescriptor(filepath.Join(baseDir, file+".json"))
	} else {
		desc, err = scene.NamedDescriptor(req.Scene, req.Season)
	}
	if err != nil {
		return nil, "", err
	}
	return desc.WithResolution(req.Width, req.Height), baseDir, nil
}

// buildScene resolves a built-in or descriptor scene at the requested resolution
func (s *Server) buildScene(req FrameRequest) (*scene.Scene, error) {
	desc, baseDir, err := s.resolveDescriptor(req)
	if err != nil {
		return nil, err
	}
	return buildDescriptor(desc, baseDir)
}

func buildDescriptor(desc *scene.Descriptor, baseDir string) (*scene.Scene, error) {
	textures, err := scene.ResolveTextures(desc, baseDir)
	if err != nil {
		return nil, err
	}
	return scene.Build(desc, textures)
}

// renderFrame builds the requested scene and raycasts one normalized frame
func (s *Server) renderFrame(req FrameRequest, logger core.Logger) (*Frame, error) {
	sceneObj, err := s.buildScene(req)
	if err != nil {
		return nil, err
	}

	rc := renderer.NewRaycaster(renderer.Config{Workers: s.config.Workers}, logger)
	buffer := rc.Render(sceneObj.View.Eye, sceneObj, true)
	buffer.Normalize()

	return &Frame{
		Request: req,
		Scene:   sceneObj,
		Canvas:  rc.Canvas(sceneObj),
		Image:   buffer.ToRGBA(),
		RGB:     buffer.Bytes(),
		Stats:   rc.Stats(),
	}, nil
}

// pickSeason maps a click on a garden frame of the given size to a season.
// The pixel is checked against the frame before the garden is built.
func (s *Server) pickSeason(req FrameRequest, x, y int) (PickResponse, error) {
	req.Scene = "garden"
	desc, baseDir, err := s.resolveDescriptor(req)
	if err != nil {
		return PickResponse{}, err
	}
	if x < 0 || y < 0 || x >= desc.View.Columns || y >= desc.View.Rows {
		return PickResponse{}, fmt.Errorf("%w: (%d, %d) in a %dx%d frame", errOutsideFrame, x, y, desc.View.Columns, desc.View.Rows)
	}

	sceneObj, err := buildDescriptor(desc, baseDir)
	if err != nil {
		return PickResponse{}, err
	}
	sceneObj.ConvertToCameraSpace(true)

	canvas := renderer.NewCanvas(sceneObj.View)
	season, ok := scene.PickSeason(sceneObj, canvas.PickRay(sceneObj.View.Eye, x, y))
	return PickResponse{Hit: ok, Season: season}, nil
}

// handleRender renders one frame and answers with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	startTime := time.Now()
	frame, err := s.renderFrame(req, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := imageToPNG(frame.Image)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}
	s.record("render", req, frame.Canvas.Columns, frame.Canvas.Rows, frame.RGB)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", fmt.Sprint(time.Since(startTime).Milliseconds()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handlePick reports which season button is under a pixel of the garden
func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	values := r.URL.Query()
	if values.Get("x") == "" || values.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	x, err := parseIntParam(values, "x", 0, 0, maxSize-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(values, "y", 0, 0, maxSize-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := s.pickSeason(req, x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.record("pick", map[string]interface{}{"x": x, "y": y, "hit": response.Hit, "season": response.Season}, 0, 0, nil)
	writeJSON(w, http.StatusOK, response)
}
