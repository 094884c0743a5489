package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"

	// SceneFileExt is the extension of scene description files
	SceneFileExt = ".wrt"
)

var builtinScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Gold, glass and silver spheres under red, green and blue lights",
		Group:       builtinGroup,
		Type:        "builtin",
	},
	{
		ID:          "cylinders",
		Name:        "Cylinders",
		Description: "Open, elliptic and tilted cylinders",
		Group:       builtinGroup,
		Type:        "builtin",
	},
	{
		ID:          "sphere-grid",
		Name:        "Sphere Grid",
		Description: "Grid of rainbow-colored metallic spheres",
		Group:       builtinGroup,
		Type:        "builtin",
	},
}

// BuiltinScenes returns the scenes that are constructed in code
func BuiltinScenes() []SceneInfo {
	return append([]SceneInfo(nil), builtinScenes...)
}

// NewBuiltinScene constructs a built-in scene by ID
func NewBuiltinScene(id string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	switch id {
	case "default":
		return NewDefaultScene(cameraOverrides...)
	case "cylinders":
		return NewCylinderTestScene(cameraOverrides...)
	case "sphere-grid":
		return NewSphereGridScene(cameraOverrides...)
	default:
		return nil, fmt.Errorf("unknown scene %q", id)
	}
}

// FindScenesDir returns the first scenes directory found relative to the
// working directory, or "" when there is none
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListSceneFiles returns the scene files in scenesDir sorted by name
func ListSceneFiles(scenesDir string) ([]SceneInfo, error) {
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*"+SceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       "file:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	// Metadata lives in the leading comment block
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "Name":
			sceneInfo.Name = value
		case "Description":
			sceneInfo.Description = value
		case "Group":
			sceneInfo.Group = value
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns built-in scenes and the scene files in scenesDir,
// grouped by category with built-in scenes first
func ListAllScenes(scenesDir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(scenesDir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, scene := range allScenes {
		if _, exists := groupMap[scene.Group]; !exists && scene.Group != builtinGroup {
			groupNames = append(groupNames, scene.Group)
		}
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-hall" -> "Mirror Hall"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
