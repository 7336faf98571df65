package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Load returns Default overlaid with the file at path and validated.
// An empty path returns the validated defaults.
//
// The format follows the extension: .yaml and .yml are decoded strictly
// (unknown keys are errors), .cue is checked against the #Config schema.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".cue":
		err = decodeCUE(path, data, cfg)
	default:
		return nil, &ConfigError{Path: path, Field: "file", Message: fmt.Sprintf("unsupported config format %q (want .yaml, .yml or .cue)", ext)}
	}
	if err != nil {
		return nil, err
	}

	if cfg.BoilerplateFile != "" {
		bp := cfg.BoilerplateFile
		if !filepath.IsAbs(bp) {
			bp = filepath.Join(filepath.Dir(path), bp)
		}
		text, err := os.ReadFile(bp)
		if err != nil {
			return nil, fmt.Errorf("reading boilerplate: %w", err)
		}
		cfg.Boilerplate = string(text)
	}

	if err := cfg.Validate(); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// decodeYAML overlays YAML (or JSON) data onto cfg.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// an empty document leaves the defaults in place
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing YAML config: %w", err)
	}
	return nil
}

// decodeCUE validates data against #Config and overlays it onto cfg.
func decodeCUE(path string, data []byte, cfg *Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fmt.Errorf("parsing CUE config: %s", formatCUEError(err))
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid CUE config: %s", formatCUEError(err))
	}

	js, err := unified.MarshalJSON()
	if err != nil {
		return fmt.Errorf("exporting CUE config: %s", formatCUEError(err))
	}
	return decodeYAML(js, cfg)
}

// formatCUEError flattens CUE's multi-error into one line per problem.
func formatCUEError(err error) string {
	return strings.TrimSpace(cueerrors.Details(err, nil))
}

// MarshalYAML quotes the boilerplate. Block scalars cannot carry its
// leading blank line.
func (c Config) MarshalYAML() (interface{}, error) {
	type plain Config
	var n yaml.Node
	if err := n.Encode(plain(c)); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "boilerplate" {
			n.Content[i+1].Style = yaml.DoubleQuotedStyle
		}
	}
	return &n, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
