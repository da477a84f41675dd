package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
)

// Format is a job file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the job format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported job file extension %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
}

// LoadJob reads and decodes the job file at path. Relative paths inside the
// job are resolved against the job file's directory.
func LoadJob(path string) (fill.Job, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return fill.Job{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fill.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	job, err := Decode(data, format)
	if err != nil {
		return fill.Job{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := ResolvePaths(&job, filepath.Dir(path)); err != nil {
		return fill.Job{}, err
	}
	return job, nil
}

// Decode parses data in the given format. Paths are left untouched.
func Decode(data []byte, format Format) (fill.Job, error) {
	var job fill.Job
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&job)
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return job, nil
		}
		err = yaml.Unmarshal(data, &job)
	case FormatJSON:
		err = json.Unmarshal(data, &job)
	default:
		return job, fmt.Errorf("unknown job format %q", format)
	}
	return job, err
}

// ResolvePaths expands "~" in every file path of job and makes relative paths
// absolute against baseDir. Empty paths stay empty.
func ResolvePaths(job *fill.Job, baseDir string) error {
	for _, p := range job.Paths() {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		if !filepath.IsAbs(expanded) && baseDir != "" {
			expanded = filepath.Join(baseDir, expanded)
		}
		*p = filepath.Clean(expanded)
	}
	return nil
}
