package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/preview"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderConfig holds every setting of the render command. A JSON config
// file decodes onto DefaultRenderConfig; explicit flags override both.
type RenderConfig struct {
	Scene                string  `json:"scene"`
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	Camera               string  `json:"camera"`
	AngleDeg             float64 `json:"angle_deg"`
	Distance             float64 `json:"distance"`
	Algorithm            string  `json:"algorithm"`
	NumOfRays            int     `json:"num_of_rays"`
	MaxDepth             int     `json:"max_depth"`
	RussianRouletteLimit int     `json:"russian_roulette_limit"`
	SamplesPerPixel      int     `json:"samples_per_pixel"`
	InitState            uint64  `json:"init_state"`
	InitSeq              uint64  `json:"init_seq"`
	Output               string  `json:"output"`
	PNG                  string  `json:"png"`
	Factor               float64 `json:"factor"`
	Gamma                float64 `json:"gamma"`
	Texture              string  `json:"texture"`
	Preview              bool    `json:"preview"`
}

// DefaultRenderConfig returns the settings used when neither flags nor a
// config file say otherwise
func DefaultRenderConfig() RenderConfig {
	pt := integrator.DefaultPathTracingConfig()
	opts := scene.DefaultOptions()
	return RenderConfig{
		Scene:                "demo",
		Width:                640,
		Height:               480,
		Camera:               opts.Camera,
		AngleDeg:             opts.AngleDeg,
		Distance:             opts.Distance,
		Algorithm:            integrator.AlgorithmPathTracing,
		NumOfRays:            pt.NumOfRays,
		MaxDepth:             pt.MaxDepth,
		RussianRouletteLimit: pt.RussianRouletteLimit,
		SamplesPerPixel:      1,
		InitState:            core.DefaultInitState,
		InitSeq:              core.DefaultInitSeq,
		Output:               "output.pfm",
		PNG:                  "output.png",
		Factor:               0.2,
		Gamma:                1.0,
	}
}

// Validate checks the settings that the renderer cannot recover from
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := renderer.SamplesPerSide(c.SamplesPerPixel); err != nil {
		return err
	}
	if c.Factor <= 0 {
		return fmt.Errorf("factor must be positive, got %g", c.Factor)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %g", c.Gamma)
	}
	return nil
}

// loadConfig decodes a JSON config file onto cfg
func loadConfig(path string, cfg *RenderConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// parseRenderFlags builds the render configuration from defaults, an
// optional -config file and the command-line flags, in that order
func parseRenderFlags(args []string, output io.Writer) (RenderConfig, error) {
	cfg := DefaultRenderConfig()
	var configFile string

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&configFile, "config", "", "JSON file with render settings")
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Built-in scene: demo, spheres or furnace")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.StringVar(&cfg.Camera, "camera", cfg.Camera, "Camera projection: perspective or orthogonal")
	fs.Float64Var(&cfg.AngleDeg, "angle-deg", cfg.AngleDeg, "Camera rotation around the z axis, in degrees")
	fs.Float64Var(&cfg.Distance, "distance", cfg.Distance, "Perspective camera screen distance")
	fs.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "Renderer: onoff, flat or pathtracing")
	fs.IntVar(&cfg.NumOfRays, "num-of-rays", cfg.NumOfRays, "Rays scattered per path tracing bounce")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum path tracing depth")
	fs.IntVar(&cfg.RussianRouletteLimit, "russian-roulette-limit", cfg.RussianRouletteLimit, "Depth at which Russian roulette starts")
	fs.IntVar(&cfg.SamplesPerPixel, "samples-per-pixel", cfg.SamplesPerPixel, "Antialiasing samples per pixel (a perfect square)")
	fs.Uint64Var(&cfg.InitState, "init-state", cfg.InitState, "PCG initial state")
	fs.Uint64Var(&cfg.InitSeq, "init-seq", cfg.InitSeq, "PCG sequence identifier")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "HDR output file (PFM)")
	fs.StringVar(&cfg.PNG, "png", cfg.PNG, "LDR output file (.png or .jpg)")
	fs.Float64Var(&cfg.Factor, "factor", cfg.Factor, "Tone mapping factor")
	fs.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "Display gamma")
	fs.StringVar(&cfg.Texture, "texture", cfg.Texture, "Image (PNG, JPEG or PFM) applied to the demo ground")
	fs.BoolVar(&cfg.Preview, "preview", cfg.Preview, "Show the result in the terminal")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configFile != "" {
		if err := loadConfig(configFile, &cfg); err != nil {
			return cfg, err
		}
		// Parse again so explicit flags win over the file
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	return cfg, cfg.Validate()
}

// renderImage builds the scene and traces it into a new HDR image
func renderImage(cfg RenderConfig, logger core.Logger) (*core.HdrImage, renderer.RenderStats, error) {
	opts := scene.DefaultOptions()
	opts.Camera = cfg.Camera
	opts.AngleDeg = cfg.AngleDeg
	opts.Distance = cfg.Distance
	opts.AspectRatio = float64(cfg.Width) / float64(cfg.Height)

	if cfg.Texture != "" {
		texture, err := loaders.LoadTexture(cfg.Texture)
		if err != nil {
			return nil, renderer.RenderStats{}, fmt.Errorf("loading texture: %w", err)
		}
		opts.GroundTexture = texture
	}

	sceneObj, err := scene.ByName(cfg.Scene, opts)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	// Separate streams for pixel jitter and scattering
	tracerPCG := core.NewPCG(cfg.InitState, cfg.InitSeq)
	integratorPCG := core.NewPCG(cfg.InitState, cfg.InitSeq+1)

	radiance, err := integrator.New(cfg.Algorithm, sceneObj.World, sceneObj.Background, integratorPCG, integrator.PathTracingConfig{
		NumOfRays:            cfg.NumOfRays,
		MaxDepth:             cfg.MaxDepth,
		RussianRouletteLimit: cfg.RussianRouletteLimit,
	})
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	side, err := renderer.SamplesPerSide(cfg.SamplesPerPixel)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	img := core.NewHdrImage(cfg.Width, cfg.Height)
	tracer := renderer.NewImageTracer(img, sceneObj.Camera, side, tracerPCG)
	tracer.SetLogger(logger)
	stats := tracer.FireAllRays(radiance.RayColor)

	return img, stats, nil
}

func runRender(args []string, stdout io.Writer) error {
	cfg, err := parseRenderFlags(args, stdout)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Rendering scene %q with %s (%dx%d)\n", cfg.Scene, cfg.Algorithm, cfg.Width, cfg.Height)

	img, stats, err := renderImage(cfg, logger)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v (%.0f samples/s)\n", stats.Elapsed, stats.SamplesPerSecond())

	if cfg.Output != "" {
		if err := loaders.WritePFMFile(cfg.Output, img); err != nil {
			return err
		}
		logger.Printf("HDR image saved as %s\n", cfg.Output)
	}

	loaders.ToneMap(img, cfg.Factor, 0)

	if cfg.PNG != "" {
		if err := loaders.WriteLDRFile(cfg.PNG, img, cfg.Gamma); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", cfg.PNG)
	}

	if cfg.Preview {
		return preview.Show(img, cfg.Gamma)
	}
	return nil
}

func runPFM2PNG(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("pfm2png", flag.ContinueOnError)
	fs.SetOutput(stdout)
	factor := fs.Float64("factor", 0.2, "Tone mapping factor")
	gamma := fs.Float64("gamma", 1.0, "Display gamma")
	luminosity := fs.Float64("luminosity", 0, "Average luminosity (0 computes it from the image)")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Usage: pathtracer pfm2png [options] <input.pfm> <output.png>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("pfm2png needs an input and an output file")
	}
	if *factor <= 0 || *gamma <= 0 {
		return fmt.Errorf("factor and gamma must be positive, got %g and %g", *factor, *gamma)
	}

	img, err := loaders.ReadPFMFile(fs.Arg(0))
	if err != nil {
		return err
	}

	loaders.ToneMap(img, *factor, *luminosity)
	if err := loaders.WriteLDRFile(fs.Arg(1), img, *gamma); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File %s has been written to disk\n", fs.Arg(1))
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render    Render a built-in scene to PFM and PNG")
	fmt.Fprintln(w, "  pfm2png   Tone map a PFM file into a PNG or JPEG")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-9s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pathtracer <command> -help' for command options")
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return errors.New("missing command")
	}

	switch args[0] {
	case "render":
		return runRender(args[1:], stdout)
	case "pfm2png":
		return runPFM2PNG(args[1:], stdout)
	case "help", "-help", "--help", "-h":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
