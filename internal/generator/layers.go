package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingLayer is returned when a required layer has no candidate images.
var ErrMissingLayer = errors.New("required layer has no images")

// LayerConfig describes one visual layer of the collection.
type LayerConfig struct {
	// Name is the layer name, e.g. "Background". It becomes the
	// trait_type of the attribute recorded for this layer.
	Name string

	// Dir is the directory holding the layer's candidate PNG files.
	Dir string

	// Required marks layers that must contribute a trait. A required
	// layer with no images aborts the generation; an optional one is
	// silently omitted.
	Required bool
}

// LayerAttribute is the trait chosen for one layer during a generation call.
type LayerAttribute struct {
	// Layer is the name of the layer the trait was chosen for.
	Layer string

	// Trait is the chosen file's base name without extension,
	// e.g. "blue" for blue.png.
	Trait string

	// Path is the resolved path of the chosen file.
	Path string
}

// resolveLayer lists the candidate PNG files of a layer in lexical order.
//
// Only regular files with a .png extension (case-insensitive) count.
// An absent directory yields an empty list and a warning event, not an
// error. No caching; the directory is rescanned on every call so assets
// can be swapped between generations.
func (g *Generator) resolveLayer(layer LayerConfig) ([]string, error) {
	entries, err := os.ReadDir(layer.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			g.progress(ProgressEvent{Message: fmt.Sprintf("Layer directory missing: %s", layer.Dir), Level: LevelWarning})
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		files = append(files, filepath.Join(layer.Dir, entry.Name()))
	}

	return files, nil
}

// SelectAttributes picks one trait per configured layer, in layer order.
//
// Required layers without images fail with an error wrapping
// ErrMissingLayer; optional layers without images contribute nothing.
// Selection is uniform over the layer's candidates. The returned order
// matches the configured layer order, which is also the draw order.
func (g *Generator) SelectAttributes() ([]LayerAttribute, error) {
	attrs := make([]LayerAttribute, 0, len(g.layers))

	for _, layer := range g.layers {
		files, err := g.resolveLayer(layer)
		if err != nil {
			return nil, fmt.Errorf("resolving layer %q: %w", layer.Name, err)
		}

		if len(files) == 0 {
			if layer.Required {
				return nil, fmt.Errorf("layer %q: %w", layer.Name, ErrMissingLayer)
			}
			g.progress(ProgressEvent{Message: fmt.Sprintf("Skipping empty optional layer: %s", layer.Name), Level: LevelVerbose})
			continue
		}

		path := files[g.pick(len(files))]
		base := filepath.Base(path)
		attrs = append(attrs, LayerAttribute{
			Layer: layer.Name,
			Trait: strings.TrimSuffix(base, filepath.Ext(base)),
			Path:  path,
		})
	}

	return attrs, nil
}

// pick returns a uniform index in [0, n). The shared rand source is
// guarded so concurrent generations stay safe.
func (g *Generator) pick(n int) int {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return g.rng.Intn(n)
}
