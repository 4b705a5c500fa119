package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/fabricgo/internal/config"
	"github.com/vk/fabricgo/internal/ctxlog"
	"github.com/vk/fabricgo/internal/fsutil"
	"github.com/vk/fabricgo/internal/schema"
)

// Loader implements config.Loader for HCL manifest files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads all .hcl files under the given paths, decodes their component
// blocks, and translates them into the unified model. Later declarations
// of the same component name overwrite earlier ones.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}

	var filePaths []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("manifest path %q: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("walking manifest path %q: %w", path, err)
			}
			filePaths = append(filePaths, found...)
		} else if strings.HasSuffix(path, ".hcl") {
			filePaths = append(filePaths, path)
		}
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in paths", "paths", paths)
		return model, nil
	}
	logger.Debug("Found HCL manifest files to load.", "files", filePaths)

	for _, filePath := range filePaths {
		hclFile, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var file schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
		}

		for _, block := range file.Components {
			def, err := l.translateComponent(block)
			if err != nil {
				return nil, fmt.Errorf("in manifest %s: %w", filePath, err)
			}
			model.Add(def)
		}
		logger.Debug("Loaded component definitions from HCL file.", "file", filePath, "count", len(file.Components))
	}

	logger.Info("Manifest model loaded.", "component_definitions", len(model.Components))
	return model, nil
}
