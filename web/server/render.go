package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

const (
	minImageSize  = 16
	maxImageSize  = 2000
	maxTraceLimit = 50
	maxWorkers    = 64
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string  `json:"scene"`      // Scene ID (e.g., "default", "file:reference")
	Width      int     `json:"width"`      // Image width, 0 for the scene's
	Height     int     `json:"height"`     // Image height, 0 for the scene's
	MaxTrace   int     `json:"maxTrace"`   // Recursion limit, -1 for the scene's
	Workers    int     `json:"workers"`    // Render goroutines, 0 for every CPU
	Integrator string  `json:"integrator"` // "whitted", "normals" or "depth"
	Scale      float64 `json:"scale"`      // Camera scale override, 0 for the scene's
	Gamma      float64 `json:"gamma"`      // Display gamma
	Format     string  `json:"format"`     // "png" or "json"
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender renders a scene and returns it as a PNG or as JSON
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	integ, err := integrator.New(req.Integrator)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var overrides []geometry.CameraConfig
	if req.Scale > 0 {
		overrides = append(overrides, geometry.CameraConfig{Scale: req.Scale})
	}
	sceneObj, err := s.createScene(req.Scene, overrides...)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.MaxTrace >= 0 {
		config := sceneObj.World.Config()
		config.MaxTrace = req.MaxTrace
		sceneObj.World = sceneObj.World.WithConfig(config)
	}

	consoleChan, logger := s.setupConsoleLogging()

	config := renderer.DefaultRenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.Workers = req.Workers
	config.Gamma = req.Gamma

	logger.Printf("Rendering %s with %s integrator\n", req.Scene, req.Integrator)
	if req.Width*req.Height > 1200*1200 && req.Workers == 1 {
		logger.Warnf("Large image on a single worker may render slowly\n")
	}
	raytracer := renderer.NewRaytracer(sceneObj, integ, config, logger)
	renderStats := raytracer.Render()
	img := raytracer.Image()

	stats := Stats{
		Width:            img.Bounds().Dx(),
		Height:           img.Bounds().Dy(),
		TotalPixels:      renderStats.TotalPixels,
		Tiles:            renderStats.Tiles,
		Workers:          renderStats.Workers,
		ElapsedMs:        renderStats.Duration.Milliseconds(),
		AverageLuminance: renderer.CalculateAverageLuminance(img),
	}

	if req.Format == "json" {
		imageData, err := s.imageToBase64PNG(img)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("failed to encode image: %v", err)})
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			ImageData: imageData,
			Stats:     stats,
			Console:   drainConsole(consoleChan),
		})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("failed to encode image: %v", err)})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write image: %v", err)
	}
}

// setupConsoleLogging creates a buffered console channel and its logger
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 100)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// drainConsole collects the messages buffered so far
func drainConsole(consoleChan chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:      query.Get("scene"),
		Integrator: query.Get("integrator"),
		Format:     query.Get("format"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Integrator == "" {
		req.Integrator = "whitted"
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if (req.Width == 0) != (req.Height == 0) {
		return nil, fmt.Errorf("width and height must be given together")
	}
	if req.MaxTrace, err = parseIntParam(query, "maxTrace", -1, 0, maxTraceLimit); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.Scale, err = parseFloatParam(query, "scale", 0, 0.01, 1000); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 2.2, 0.1, 5); err != nil {
		return nil, err
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
