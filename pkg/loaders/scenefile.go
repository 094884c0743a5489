package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrUnknownSurface is returned when a shape names a surface that was never defined
var ErrUnknownSurface = errors.New("unknown surface")

// ShapeStatement is a parsed Sphere, Ground or Cylinder statement
type ShapeStatement struct {
	Type    string // "Sphere", "Ground" or "Cylinder"
	Surface string // Surface name
	Line    int    // Source line, for error messages

	Center core.Point // Sphere
	Radius float64    // Sphere

	Base    core.Point // Cylinder
	Axis    core.Vec3  // Cylinder
	RadiusU float64    // Cylinder
	RadiusV float64    // Cylinder
	Height  float64    // Cylinder, 0 for infinite
}

// SceneFile contains all parsed scene file data. Unset optional values are
// nil and fall back to the reference scene defaults when building.
type SceneFile struct {
	Name        string
	Description string

	Background *core.Color
	Ambient    *core.Color
	MaxTrace   *int
	Width      int
	Height     int
	Camera     *geometry.CameraConfig

	Surfaces map[string]material.Surface
	Lights   []lights.PointLight
	Shapes   []ShapeStatement
}

// ParseSceneFile parses a scene description from a reader
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	sf := &SceneFile{Surfaces: make(map[string]material.Surface)}

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := sf.processLine(scanner.Text(), lineNumber); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return sf, nil
}

// LoadSceneFile parses a scene file from disk
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if sf.Name == "" {
		base := filepath.Base(filename)
		sf.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return sf, nil
}

// LoadScene parses a scene file and builds it, applying any camera overrides
func LoadScene(filename string, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	sf, err := LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}
	return sf.Build(cameraOverrides...)
}

// validateFilePath rejects paths that are not plain scene files
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}
	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}
	for _, part := range strings.Split(filepath.ToSlash(filename), "/") {
		if part == ".." {
			return fmt.Errorf("invalid file path: directory traversal not allowed")
		}
	}
	if filepath.Ext(filename) != scene.SceneFileExt {
		return fmt.Errorf("invalid file type: only %s files are allowed", scene.SceneFileExt)
	}
	return nil
}

// processLine parses one line into the scene file
func (sf *SceneFile) processLine(line string, lineNumber int) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if strings.HasPrefix(line, "#") {
		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if key, value, ok := strings.Cut(content, ":"); ok {
			switch strings.TrimSpace(key) {
			case "Name":
				sf.Name = strings.TrimSpace(value)
			case "Description":
				sf.Description = strings.TrimSpace(value)
			}
		}
		return nil
	}

	// Trailing comments
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	tok := &tokens{fields: fields[1:]}

	var err error
	switch fields[0] {
	case "Background":
		err = sf.parseBackground(tok)
	case "Ambient":
		err = sf.parseAmbient(tok)
	case "MaxTrace":
		err = sf.parseMaxTrace(tok)
	case "Resolution":
		err = sf.parseResolution(tok)
	case "Camera":
		err = sf.parseCamera(tok)
	case "Surface":
		err = sf.parseSurface(tok)
	case "Light":
		err = sf.parseLight(tok)
	case "Sphere", "Ground", "Cylinder":
		err = sf.parseShape(fields[0], tok, lineNumber)
	default:
		return fmt.Errorf("unknown statement %q", fields[0])
	}
	if err != nil {
		return fmt.Errorf("%s: %w", fields[0], err)
	}
	if rest := tok.remaining(); len(rest) > 0 {
		return fmt.Errorf("%s: unexpected arguments %q", fields[0], strings.Join(rest, " "))
	}
	return nil
}

func (sf *SceneFile) parseBackground(tok *tokens) error {
	c, err := tok.color("color")
	if err != nil {
		return err
	}
	sf.Background = &c
	return nil
}

func (sf *SceneFile) parseAmbient(tok *tokens) error {
	c, err := tok.color("color")
	if err != nil {
		return err
	}
	sf.Ambient = &c
	return nil
}

func (sf *SceneFile) parseMaxTrace(tok *tokens) error {
	n, err := tok.integer("depth")
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("depth must not be negative, got %d", n)
	}
	sf.MaxTrace = &n
	return nil
}

func (sf *SceneFile) parseResolution(tok *tokens) error {
	width, err := tok.integer("width")
	if err != nil {
		return err
	}
	height, err := tok.integer("height")
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resolution must be positive, got %dx%d", width, height)
	}
	sf.Width, sf.Height = width, height
	return nil
}

func (sf *SceneFile) parseCamera(tok *tokens) error {
	var config geometry.CameraConfig
	var err error

	if err = tok.keyword("eye"); err != nil {
		return err
	}
	if config.Eye, err = tok.point("eye"); err != nil {
		return err
	}
	if err = tok.keyword("lookat"); err != nil {
		return err
	}
	if config.LookAt, err = tok.point("lookat"); err != nil {
		return err
	}
	if err = tok.keyword("up"); err != nil {
		return err
	}
	if config.Up, err = tok.vec3("up"); err != nil {
		return err
	}
	if err = tok.keyword("scale"); err != nil {
		return err
	}
	if config.Scale, err = tok.float("scale"); err != nil {
		return err
	}

	if config.Eye == config.LookAt {
		return fmt.Errorf("eye and lookat must differ")
	}
	if config.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", config.Scale)
	}
	forward := config.LookAt.Subtract(config.Eye)
	if _, ok := forward.Cross(config.Up).TryNormalize(); !ok {
		return fmt.Errorf("up must not be parallel to the viewing direction")
	}

	sf.Camera = &config
	return nil
}

func (sf *SceneFile) parseSurface(tok *tokens) error {
	name, err := tok.word("name")
	if err != nil {
		return err
	}
	if err := tok.keyword("k"); err != nil {
		return err
	}
	k, err := tok.color("k")
	if err != nil {
		return err
	}
	if err := tok.keyword("n"); err != nil {
		return err
	}
	n, err := tok.color("n")
	if err != nil {
		return err
	}

	shininess := 10.0
	reflective, refractive := false, false
	for !tok.done() {
		flag, _ := tok.word("option")
		switch flag {
		case "shininess":
			if shininess, err = tok.float("shininess"); err != nil {
				return err
			}
		case "reflective":
			reflective = true
		case "refractive":
			refractive = true
		default:
			return fmt.Errorf("unknown surface option %q", flag)
		}
	}

	if refractive && (n.R <= 0 || n.G <= 0 || n.B <= 0) {
		return fmt.Errorf("refractive surface %q needs a positive index", name)
	}

	sf.Surfaces[name] = material.NewSurface(k, n, shininess, reflective, refractive)
	return nil
}

func (sf *SceneFile) parseLight(tok *tokens) error {
	if err := tok.keyword("position"); err != nil {
		return err
	}
	position, err := tok.point("position")
	if err != nil {
		return err
	}
	if err := tok.keyword("color"); err != nil {
		return err
	}
	c, err := tok.color("color")
	if err != nil {
		return err
	}
	if err := tok.keyword("intensity"); err != nil {
		return err
	}
	intensity, err := tok.float("intensity")
	if err != nil {
		return err
	}

	sf.Lights = append(sf.Lights, lights.NewPointLight(position, c, intensity))
	return nil
}

func (sf *SceneFile) parseShape(kind string, tok *tokens, lineNumber int) error {
	stmt := ShapeStatement{Type: kind, Line: lineNumber}

	if err := tok.keyword("surface"); err != nil {
		return err
	}
	name, err := tok.word("surface")
	if err != nil {
		return err
	}
	if _, ok := sf.lookupSurface(name); !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownSurface)
	}
	stmt.Surface = name

	switch kind {
	case "Sphere":
		if err := tok.keyword("center"); err != nil {
			return err
		}
		if stmt.Center, err = tok.point("center"); err != nil {
			return err
		}
		if err := tok.keyword("radius"); err != nil {
			return err
		}
		if stmt.Radius, err = tok.float("radius"); err != nil {
			return err
		}
		if stmt.Radius <= 0 {
			return fmt.Errorf("radius must be positive, got %g", stmt.Radius)
		}

	case "Cylinder":
		if err := tok.keyword("base"); err != nil {
			return err
		}
		if stmt.Base, err = tok.point("base"); err != nil {
			return err
		}
		if err := tok.keyword("axis"); err != nil {
			return err
		}
		if stmt.Axis, err = tok.vec3("axis"); err != nil {
			return err
		}
		if stmt.Axis.LengthSquared() == 0 {
			return fmt.Errorf("axis must be non-zero")
		}
		if err := tok.keyword("radii"); err != nil {
			return err
		}
		if stmt.RadiusU, err = tok.float("radius"); err != nil {
			return err
		}
		if stmt.RadiusV, err = tok.float("radius"); err != nil {
			return err
		}
		if stmt.RadiusU <= 0 || stmt.RadiusV <= 0 {
			return fmt.Errorf("radii must be positive, got %g %g", stmt.RadiusU, stmt.RadiusV)
		}
		if !tok.done() {
			if err := tok.keyword("height"); err != nil {
				return err
			}
			if stmt.Height, err = tok.float("height"); err != nil {
				return err
			}
			if stmt.Height < 0 {
				return fmt.Errorf("height must not be negative, got %g", stmt.Height)
			}
		}
	}

	sf.Shapes = append(sf.Shapes, stmt)
	return nil
}

// lookupSurface resolves a user-defined surface, falling back to presets
func (sf *SceneFile) lookupSurface(name string) (material.Surface, bool) {
	if s, ok := sf.Surfaces[name]; ok {
		return s, true
	}
	return material.Preset(name)
}

// Build converts the parsed file into a scene. Values the file leaves unset
// come from the reference scene; capacities are unbounded.
func (sf *SceneFile) Build(cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	reference, err := scene.NewDefaultScene()
	if err != nil {
		return nil, err
	}

	config := scene.DefaultWorldConfig()
	config.MaxShapes = 0
	config.MaxLights = 0
	if sf.Background != nil {
		config.Background = *sf.Background
	}
	if sf.Ambient != nil {
		config.Ambient = *sf.Ambient
	}
	if sf.MaxTrace != nil {
		config.MaxTrace = *sf.MaxTrace
	}

	width, height := reference.Width, reference.Height
	if sf.Width > 0 {
		width, height = sf.Width, sf.Height
	}
	camera := reference.CameraConfig
	if sf.Camera != nil {
		camera = *sf.Camera
	}

	name := sf.Name
	if name == "" {
		name = "file"
	}
	s := scene.NewScene(name, config, width, height, camera, cameraOverrides...)

	if err := s.World.AddLights(sf.Lights...); err != nil {
		return nil, err
	}

	for _, stmt := range sf.Shapes {
		surface, ok := sf.lookupSurface(stmt.Surface)
		if !ok {
			return nil, fmt.Errorf("line %d: %q: %w", stmt.Line, stmt.Surface, ErrUnknownSurface)
		}

		var shape geometry.Shape
		switch stmt.Type {
		case "Sphere":
			shape = geometry.NewSphere(stmt.Center, stmt.Radius, surface)
		case "Ground":
			shape = geometry.NewGround(surface)
		case "Cylinder":
			shape = geometry.NewEllipticCylinder(stmt.Base, stmt.Axis, stmt.RadiusU, stmt.RadiusV, stmt.Height, surface)
		default:
			return nil, fmt.Errorf("line %d: unknown shape type %q", stmt.Line, stmt.Type)
		}
		if err := s.World.AddShape(shape); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// tokens is a cursor over the arguments of one statement
type tokens struct {
	fields []string
	pos    int
}

func (t *tokens) done() bool {
	return t.pos >= len(t.fields)
}

func (t *tokens) remaining() []string {
	return t.fields[t.pos:]
}

func (t *tokens) word(what string) (string, error) {
	if t.done() {
		return "", fmt.Errorf("missing %s", what)
	}
	w := t.fields[t.pos]
	t.pos++
	return w, nil
}

func (t *tokens) keyword(expected string) error {
	w, err := t.word(expected)
	if err != nil {
		return err
	}
	if !strings.EqualFold(w, expected) {
		return fmt.Errorf("expected %q, got %q", expected, w)
	}
	return nil
}

func (t *tokens) float(what string) (float64, error) {
	w, err := t.word(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", what, w, err)
	}
	return v, nil
}

func (t *tokens) integer(what string) (int, error) {
	w, err := t.word(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", what, w, err)
	}
	return v, nil
}

func (t *tokens) triple(what string) (float64, float64, float64, error) {
	var v [3]float64
	for i, axis := range []string{"X", "Y", "Z"} {
		f, err := t.float(what + " " + axis)
		if err != nil {
			return 0, 0, 0, err
		}
		v[i] = f
	}
	return v[0], v[1], v[2], nil
}

func (t *tokens) vec3(what string) (core.Vec3, error) {
	x, y, z, err := t.triple(what)
	return core.NewVec3(x, y, z), err
}

func (t *tokens) point(what string) (core.Point, error) {
	x, y, z, err := t.triple(what)
	return core.NewPoint(x, y, z), err
}

func (t *tokens) color(what string) (core.Color, error) {
	r, g, b, err := t.triple(what)
	return core.NewColor(r, g, b), err
}
