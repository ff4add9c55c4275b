// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for sway.
type Config struct {
	LogLevel            string `mapstructure:"log_level" yaml:"log_level"`
	LogFile             string `mapstructure:"log_file" yaml:"log_file"`
	DataDir             string `mapstructure:"data_dir" yaml:"data_dir"`
	Journal             bool   `mapstructure:"journal" yaml:"journal"`
	Linear              bool   `mapstructure:"linear" yaml:"linear"`
	ShowProgress        bool   `mapstructure:"show_progress" yaml:"show_progress"`
	ShowNavigation      bool   `mapstructure:"show_navigation" yaml:"show_navigation"`
	AutoAdvanceOnRemove bool   `mapstructure:"auto_advance_on_remove" yaml:"auto_advance_on_remove"`
	Theme               string `mapstructure:"theme" yaml:"theme"`
}

// keys lists every config key. Each is bound to SWAY_<KEY>.
var keys = []string{
	"log_level",
	"log_file",
	"data_dir",
	"journal",
	"linear",
	"show_progress",
	"show_navigation",
	"auto_advance_on_remove",
	"theme",
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		DataDir:        ".sway",
		Journal:        true,
		ShowProgress:   true,
		ShowNavigation: true,
		Theme:          "catppuccin-mocha",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadWith is Load with a caller-provided viper instance, so CLI flags bound
// to v take precedence over everything else.
func LoadWith(v *viper.Viper) (*Config, error) {
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigType("yaml")
	v.SetConfigName("sway")

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("journal", def.Journal)
	v.SetDefault("linear", def.Linear)
	v.SetDefault("show_progress", def.ShowProgress)
	v.SetDefault("show_navigation", def.ShowNavigation)
	v.SetDefault("auto_advance_on_remove", def.AutoAdvanceOnRemove)
	v.SetDefault("theme", def.Theme)

	v.SetEnvPrefix("SWAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so bools parse from the environment.
	for _, key := range keys {
		if err := v.BindEnv(key, "SWAY_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/sway/sway.yml or $XDG_CONFIG_HOME/sway/sway.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sway", "sway.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sway", "sway.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "sway.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
