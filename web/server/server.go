package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene                string  `json:"scene"`                // Scene name (e.g., "demo")
	Width                int     `json:"width"`                // Image width
	Height               int     `json:"height"`               // Image height
	Algorithm            string  `json:"algorithm"`            // onoff, flat or pathtracing
	Camera               string  `json:"camera"`               // perspective or orthogonal
	AngleDeg             float64 `json:"angleDeg"`             // Camera rotation around z
	SamplesPerPixel      int     `json:"samples"`              // Must be a perfect square
	NumOfRays            int     `json:"numOfRays"`            // Path tracer rays per bounce
	MaxDepth             int     `json:"maxDepth"`             // Path tracer maximum depth
	RussianRouletteLimit int     `json:"russianRouletteLimit"` // Depth at which Russian roulette starts
	Factor               float64 `json:"factor"`               // Tone mapping factor
	Gamma                float64 `json:"gamma"`                // Display gamma
	Format               string  `json:"format"`               // "png" or "json"
}

// RenderResponse is returned by /api/render when format=json
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleRender renders a scene and returns it as PNG, or as JSON with
// a base64 PNG, statistics and the render log when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	// Progress messages are only collected for JSON responses
	var consoleChan chan ConsoleMessage
	if req.Format == "json" {
		consoleChan = make(chan ConsoleMessage, 64)
	}
	logger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)

	startTime := time.Now()
	img, stats, err := s.render(sceneObj, req, logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	elapsed := time.Since(startTime)
	log.Printf("Rendered %s (%dx%d, %s) in %v", req.Scene, req.Width, req.Height, req.Algorithm, elapsed)

	var buf bytes.Buffer
	if err := loaders.WriteLDR(&buf, img, "png", req.Gamma); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if req.Format != "json" {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Printf("Failed to write PNG response: %v", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples,
		},
		Console:   drainConsole(consoleChan),
		ElapsedMs: elapsed.Milliseconds(),
	})
}

// drainConsole closes consoleChan and returns the messages it buffered
func drainConsole(consoleChan chan ConsoleMessage) []ConsoleMessage {
	close(consoleChan)
	console := make([]ConsoleMessage, 0, len(consoleChan))
	for msg := range consoleChan {
		console = append(console, msg)
	}
	return console
}

// render traces the scene and returns the tone-mapped image
func (s *Server) render(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*core.HdrImage, renderer.RenderStats, error) {
	pcg := core.NewDefaultPCG()
	config := integrator.PathTracingConfig{
		NumOfRays:            req.NumOfRays,
		MaxDepth:             req.MaxDepth,
		RussianRouletteLimit: req.RussianRouletteLimit,
	}

	radiance, err := integrator.New(req.Algorithm, sceneObj.World, sceneObj.Background, pcg, config)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	side, err := renderer.SamplesPerSide(req.SamplesPerPixel)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	img := core.NewHdrImage(req.Width, req.Height)
	tracer := renderer.NewImageTracer(img, sceneObj.Camera, side, pcg)
	tracer.SetLogger(logger)
	stats := tracer.FireAllRays(radiance.RayColor)

	loaders.ToneMap(img, req.Factor, 0)
	return img, stats, nil
}

func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	opts := scene.DefaultOptions()
	opts.Camera = req.Camera
	opts.AngleDeg = req.AngleDeg
	opts.AspectRatio = float64(req.Width) / float64(req.Height)
	return scene.ByName(req.Scene, opts)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:     stringParam(query, "scene", "demo"),
		Algorithm: stringParam(query, "algorithm", integrator.AlgorithmPathTracing),
		Camera:    stringParam(query, "camera", "perspective"),
		Format:    stringParam(query, "format", "png"),
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 320, 10, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 240, 10, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samples", 1, 1, 10000); err != nil {
		return nil, err
	}
	if _, err := renderer.SamplesPerSide(req.SamplesPerPixel); err != nil {
		return nil, err
	}
	if req.NumOfRays, err = parseIntParam(query, "numOfRays", 10, 1, 1000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 2, 0, 100); err != nil {
		return nil, err
	}
	if req.RussianRouletteLimit, err = parseIntParam(query, "russianRouletteLimit", 3, 0, 1000); err != nil {
		return nil, err
	}
	if req.AngleDeg, err = parseFloatParam(query, "angleDeg", 0, -360, 360); err != nil {
		return nil, err
	}
	if req.Factor, err = parseFloatParam(query, "factor", 0.2, 1e-3, 10); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 1.0, 0.1, 5); err != nil {
		return nil, err
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Algorithm == integrator.AlgorithmPathTracing && req.NumOfRays*req.MaxDepth > 100 {
		log.Printf("Render warning: Large image with many rays may render slowly")
	}

	return req, nil
}

func stringParam(values url.Values, key, defaultValue string) string {
	if value := values.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
