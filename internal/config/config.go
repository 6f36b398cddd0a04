// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/gig-planner/internal/planner"
	"github.com/iwvelando/gig-planner/pkg/configprocessor"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. GIG_PLANNER_AVAILABLEHOURS.
const EnvPrefix = "GIG_PLANNER"

// Configuration holds all configuration for gig-planner.
type Configuration struct {
	AvailableHours float64         `yaml:"availableHours" mapstructure:"availableHours"`
	MinSkillMatch  float64         `yaml:"minSkillMatch,omitempty" mapstructure:"minSkillMatch"`
	Projects       []gig.Candidate `yaml:"projects" mapstructure:"projects"`
	Solver         SolverConfig    `yaml:"solver,omitempty" mapstructure:"solver"`
	Logging        LoggingConfig   `yaml:"logging,omitempty" mapstructure:"logging"`
	Output         OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, failure.Wrap(failure.KindConfiguration, fmt.Sprintf("error reading config file %s", configPath), err)
	}
	return decode(v)
}

// LoadConfigurationFromReader parses YAML configuration from r. Environment
// overrides apply the same way they do for files.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, failure.Wrap(failure.KindConfiguration, "error reading configuration", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, failure.Wrap(failure.KindConfiguration, "unable to decode into struct", err)
	}
	configuration.Solver.Normalize()
	return &configuration, nil
}

// Validate rejects configurations the planner cannot run. Problems with the
// projects themselves are reported by the planner.
func (c *Configuration) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return failure.Wrap(failure.KindConfiguration, "invalid solver configuration", err)
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return failure.Wrap(failure.KindConfiguration, "invalid output configuration", err)
		}
	}
	if err := validation.ValidateBudget(c.AvailableHours); err != nil {
		return err
	}
	return validation.ValidateThreshold(c.MinSkillMatch)
}

// Request builds the planner request described by the configuration.
func (c *Configuration) Request() planner.Request {
	return planner.Request{
		Candidates:     c.Projects,
		AvailableHours: c.AvailableHours,
		MinSkillMatch:  c.MinSkillMatch,
	}
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	projects := make([]configprocessor.ProjectInfo, 0, len(c.Projects))
	for _, project := range c.Projects {
		projects = append(projects, configprocessor.ProjectInfo{
			Name:          project.Name,
			HoursRequired: project.HoursRequired,
			SkillMatch:    project.SkillMatch,
		})
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(c.AvailableHours, c.MinSkillMatch, projects)
}

// LoadDotEnv reads KEY=value pairs from path into the process environment so
// they can override configuration values. Variables that are already set win.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load environment file %s: %w", path, err)
	}
	return nil
}
