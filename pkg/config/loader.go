package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// defaultNames are the settings files probed, in order, when no explicit
// path is given.
var defaultNames = []string{".subrc.yaml", ".subrc.yml", ".subrc.json", ".subrc.hcl"}

// Load loads a settings file from the given path. The format is determined
// by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func Load(ctx context.Context, path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	var s *Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		s, err = loadJSON(data)
	case ".yaml", ".yml":
		s, err = loadYAML(data)
	case ".hcl":
		s, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("settings loaded")
	return s, nil
}

// LoadDefault probes the working directory for a settings file and loads
// the first one found. Absence of any settings file is not an error: the
// zero Settings value is returned.
func LoadDefault(ctx context.Context) (*Settings, error) {
	for _, name := range defaultNames {
		if _, err := os.Stat(name); err == nil {
			return Load(ctx, name)
		}
	}
	return &Settings{}, nil
}

// loadJSON loads settings from JSON data
func loadJSON(data []byte) (*Settings, error) {
	var s Settings
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &s, nil
}

// loadYAML loads settings from YAML data
func loadYAML(data []byte) (*Settings, error) {
	var s Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &s, nil
}

// loadHCL loads settings from HCL data
func loadHCL(data []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var s Settings
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &s)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &s, nil
}
