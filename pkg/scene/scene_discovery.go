package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/loaders"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// DefaultScenesDir is searched for scene files by Create and ListAllScenes
const DefaultScenesDir = "scenes"

const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"

	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Identifier accepted by Create
	Name        string // Display name
	Description string // Optional description
	Group       string // Grouping category
	Type        string // TypeBuiltin or TypeFile
	FilePath    string // Path to the scene file (file scenes only)
}

type builtinScene struct {
	info   SceneInfo
	create func(...renderer.CameraConfig) *Scene
}

var builtins = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Small sphere resting on a large ground sphere",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "sphere-grid",
			Name:        "Sphere Grid",
			Description: "Grid of small spheres on the ground sphere",
		},
		create: NewSphereGridScene,
	},
}

// BuiltinScenes returns the scenes constructed in code
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
		infos[i].Group = builtinGroup
		infos[i].Type = TypeBuiltin
	}
	return infos
}

// ListFileScenes scans dir for scene files. A missing directory yields no
// scenes; files with unreadable headers are skipped with a warning.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.pbrt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata builds the SceneInfo of a scene file from its header
// comments, falling back to the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       id,
		Name:     titleCase(id),
		Group:    fileGroup,
		Type:     TypeFile,
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer file.Close()

	meta, err := loaders.ReadMetadata(file)
	if err != nil {
		return info, err
	}
	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(BuiltinScenes(), fileScenes...), nil
}

// Create resolves a built-in scene ID, the name of a scene file in
// DefaultScenesDir, or a path to a scene file
func Create(nameOrPath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	return CreateFromDir(DefaultScenesDir, nameOrPath, cameraOverrides...)
}

// CreateFromDir is Create with scene files looked up in dir
func CreateFromDir(dir, nameOrPath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == nameOrPath {
			logger.Debugf("creating built-in scene %s", nameOrPath)
			return b.create(cameraOverrides...), nil
		}
	}

	if strings.HasSuffix(strings.ToLower(nameOrPath), ".pbrt") {
		return LoadFileScene(nameOrPath, cameraOverrides...)
	}

	candidate := filepath.Join(dir, nameOrPath+".pbrt")
	if _, err := os.Stat(candidate); err == nil {
		logger.Debugf("creating scene from %s", candidate)
		return LoadFileScene(candidate, cameraOverrides...)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, nameOrPath)
}

// CreateByName resolves a built-in scene ID or the bare name of a scene file
// in dir. Paths are rejected, so only files directly inside dir are loaded.
func CreateByName(dir, name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if err := validateSceneName(name); err != nil {
		return nil, err
	}
	return CreateFromDir(dir, name, cameraOverrides...)
}

func validateSceneName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\:\x00") ||
		strings.HasSuffix(strings.ToLower(name), ".pbrt") {
		return fmt.Errorf("%w: %q is not a scene name", loaders.ErrInvalidPath, name)
	}
	return nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
