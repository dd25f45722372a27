// Package config loads the dataset-edition configuration. Fields are
// pointers so a partial JSON file only overrides what it names; the
// Get* accessors supply defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/velodata/cycling.report/internal/accident"
)

// Config holds the knobs that vary between editions of the source
// dataset. The year bounds and the bike-infrastructure definition are
// deliberately configuration: the source revisions disagree on both
// (upper bound 2022 vs 2023; reserved lanes in or out of the
// infrastructure flag).
type Config struct {
	YearMin *int `json:"year_min,omitempty"`
	YearMax *int `json:"year_max,omitempty"`
	// BikeInfrastructureCodes are the infrastructure codes counted by
	// the has_bike_infrastructure flag.
	BikeInfrastructureCodes *[]int `json:"bike_infrastructure_codes,omitempty"`
	// DropColumns are source-only technical columns pruned by the
	// cleaning pipeline.
	DropColumns *[]string `json:"drop_columns,omitempty"`
}

// Load reads a Config from a JSON file. Fields omitted from the file
// keep their defaults, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration values are coherent.
func (c *Config) Validate() error {
	if c.YearMin != nil && c.YearMax != nil && *c.YearMin > *c.YearMax {
		return fmt.Errorf("year_min %d exceeds year_max %d", *c.YearMin, *c.YearMax)
	}
	if c.YearMin != nil && *c.YearMin < 1900 {
		return fmt.Errorf("year_min %d is implausibly early", *c.YearMin)
	}
	if c.BikeInfrastructureCodes != nil {
		for _, code := range *c.BikeInfrastructureCodes {
			if code < 0 || code > 4 {
				return fmt.Errorf("bike infrastructure code %d outside the known code domain [0, 4]", code)
			}
		}
	}
	return nil
}

// GetYearMin returns the lower admission bound or its default.
func (c *Config) GetYearMin() int {
	if c.YearMin == nil {
		return 2005
	}
	return *c.YearMin
}

// GetYearMax returns the upper admission bound or its default (the
// 2023 dataset edition).
func (c *Config) GetYearMax() int {
	if c.YearMax == nil {
		return 2023
	}
	return *c.YearMax
}

// GetBikeInfrastructureCodes returns the configured infrastructure
// definition or the narrow default.
func (c *Config) GetBikeInfrastructureCodes() []int {
	if c.BikeInfrastructureCodes == nil {
		return accident.DefaultOptions().BikeInfrastructure
	}
	return *c.BikeInfrastructureCodes
}

// GetDropColumns returns the configured column prune list or its
// default.
func (c *Config) GetDropColumns() []string {
	if c.DropColumns == nil {
		return accident.DefaultOptions().DropColumns
	}
	return *c.DropColumns
}

// PipelineOptions assembles the accident pipeline parameters from the
// configuration.
func (c *Config) PipelineOptions() accident.Options {
	return accident.Options{
		YearMin:            c.GetYearMin(),
		YearMax:            c.GetYearMax(),
		BikeInfrastructure: c.GetBikeInfrastructureCodes(),
		DropColumns:        c.GetDropColumns(),
	}
}
