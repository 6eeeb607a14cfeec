package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/taskseries/internal/model"
	"github.com/nao1215/taskseries/internal/series"
	"github.com/nao1215/taskseries/internal/supplier"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".taskseries"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file.
//
//	inputs: [tasks.txt]
//	encoding: auto
//	sort: true
//	rules:
//	  - pattern: 'gzy'
//	  - pattern: 'bc_'
//	    series: bc
//	inheritDefaults: true
//	tasks:
//	  - task: render-01
//	    series: jja
type File struct {
	// Inputs are task-list files used when no arguments are given.
	Inputs []string `yaml:"inputs,omitempty"`

	// Encoding of the inputs.
	Encoding string `yaml:"encoding,omitempty"`

	// Sort prints entries in task order.
	Sort bool `yaml:"sort,omitempty"`

	// Rules replace the built-in classification rules.
	Rules []series.RuleSpec `yaml:"rules,omitempty"`

	// InheritDefaults appends the built-in rules after Rules.
	InheritDefaults bool `yaml:"inheritDefaults,omitempty"`

	// Tasks is a fixed mapping. When present it is reported instead of
	// classifying inputs.
	Tasks []model.Entry `yaml:"tasks,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .taskseries in the current directory
// 3. Look for .taskseries in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Load finds and loads the configuration file. A missing file is an error
// only when configPath was given explicitly; otherwise an empty File is
// returned.
func Load(configPath string) (*File, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return &File{}, nil
	}
	cf, err := LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cf, nil
}

// Classifier builds the classifier described by the file: the built-in
// rules when Rules is empty, otherwise Rules followed by the built-in rules
// if InheritDefaults is set.
func (cf *File) Classifier() (*series.Classifier, error) {
	if cf == nil || len(cf.Rules) == 0 {
		return series.NewClassifier(), nil
	}
	rules, err := series.CompileRules(cf.Rules)
	if err != nil {
		return nil, err
	}
	if cf.InheritDefaults {
		rules = append(rules, series.DefaultRules()...)
	}
	return series.NewClassifier(rules...), nil
}

// HasTasks reports whether the file carries a fixed mapping.
func (cf *File) HasTasks() bool {
	return cf != nil && len(cf.Tasks) > 0
}

// StaticSupplier returns a supplier for the fixed mapping.
func (cf *File) StaticSupplier() *supplier.Static {
	return supplier.NewStatic(cf.Tasks...)
}

// SourceName joins input paths into a snapshot source name.
func SourceName(inputs []string) string {
	return strings.Join(inputs, ",")
}
