// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"gopkg.in/yaml.v3"
)

// Colors are hex RGB strings without '#'.
type Colors struct {
	Header    string `json:"header" yaml:"header"`
	Subheader string `json:"subheader" yaml:"subheader"`
	Accent    string `json:"accent" yaml:"accent"`
}

// Config of the report generator.
type Config struct {
	CompanyName string `json:"company_name" yaml:"company_name"`
	// ReportTitle is kept for the configuration file; reports are titled by their type.
	ReportTitle     string `json:"report_title" yaml:"report_title"`
	OutputDirectory string `json:"output_directory" yaml:"output_directory"`
	// DateFormat is a strftime pattern, such as "%Y-%m-%d".
	DateFormat string `json:"date_format" yaml:"date_format"`
	Colors     Colors `json:"colors" yaml:"colors"`
}

// DefaultConfig returns the configuration used for missing keys.
func DefaultConfig() Config {
	return Config{
		CompanyName:     "Your Company Name",
		ReportTitle:     "Automated Report",
		OutputDirectory: "reports",
		DateFormat:      "%Y-%m-%d",
		Colors: Colors{
			Header:    "366092",
			Subheader: "5B9BD5",
			Accent:    "70AD47",
		},
	}
}

// LoadConfig reads the configuration file at path over the defaults.
// A missing file is created with the defaults.
// Files with .yaml or .yml extension are YAML, everything else is JSON.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	isYAML := isYAMLPath(path)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if b, err = cfg.marshal(isYAML); err != nil {
			return cfg, err
		}
		if err = os.WriteFile(path, b, 0644); err != nil {
			return cfg, fmt.Errorf("create default config %q: %w", path, err)
		}
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if isYAML {
		err = yaml.Unmarshal(b, &cfg)
	} else {
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (c Config) marshal(isYAML bool) ([]byte, error) {
	if isYAML {
		return yaml.Marshal(c)
	}
	b, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Validate checks the colors, the date format and the output directory.
func (c Config) Validate() error {
	if c.OutputDirectory == "" {
		return errors.New("config: empty output_directory")
	}
	for name, color := range map[string]string{
		"header": c.Colors.Header, "subheader": c.Colors.Subheader, "accent": c.Colors.Accent,
	} {
		if color == "" && name != "header" {
			continue
		}
		if b, err := hex.DecodeString(color); err != nil || len(b) != 3 {
			return fmt.Errorf("config: colors.%s=%q is not a RRGGBB hex color", name, color)
		}
	}
	if _, err := strftime.New(c.DateFormat); err != nil {
		return fmt.Errorf("config: date_format=%q: %w", c.DateFormat, err)
	}
	return nil
}

// FormatDate formats t with the configured strftime pattern.
func (c Config) FormatDate(t time.Time) (string, error) {
	return strftime.Format(c.DateFormat, t)
}
