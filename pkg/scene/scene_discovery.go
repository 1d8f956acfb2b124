package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Furnace parameters used when the scene is selected by name
const (
	DefaultFurnaceEmission    = 0.5
	DefaultFurnaceReflectance = 0.5
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builder func(opts Options) (*Scene, error)

var builtins = map[string]struct {
	description string
	build       builder
}{
	"demo": {
		description: "Sky dome, checkered ground, a diffuse and a mirror sphere",
		build:       NewDemoScene,
	},
	"spheres": {
		description: "Ten small spheres for checking camera orientation",
		build:       NewSpheresScene,
	},
	"furnace": {
		description: "Closed sphere with uniform emission and reflectance",
		build:       newDefaultFurnaceScene,
	},
}

func newDefaultFurnaceScene(opts Options) (*Scene, error) {
	return NewFurnaceScene(DefaultFurnaceEmission, DefaultFurnaceReflectance, opts)
}

// ByName builds the built-in scene with the given ID
func ByName(name string, opts Options) (*Scene, error) {
	entry, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return entry.build(opts)
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, entry := range builtins {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: entry.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
