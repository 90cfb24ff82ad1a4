// Package config loads the screenwrap run configuration.
package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/screenwrap/patcher"
)

// Sentinel validation errors.
var (
	ErrNoTargets         = errors.New("no target files configured")
	ErrEmptyWrapper      = errors.New("wrapper cannot be empty")
	ErrEmptyContainer    = errors.New("container cannot be empty")
	ErrInvalidClosing    = errors.New("closing must be \"balanced\" or \"heuristic\"")
	ErrTargetNotRelative = errors.New("target must be a relative path inside root")
)

// Default configuration values.
const (
	defaultRoot         = "."
	defaultWrapper      = "BackHandler"
	defaultContainer    = "Scaffold"
	defaultImportSuffix = "widgets/back_handler.dart"
	defaultIndent       = "  "

	// FileName is the config file looked up when none is given.
	FileName = "screenwrap"
)

// Config holds everything a run needs.
type Config struct {
	Root           string   `mapstructure:"root"`
	Targets        []string `mapstructure:"targets"`
	Wrapper        string   `mapstructure:"wrapper"`
	Container      string   `mapstructure:"container"`
	ImportSuffix   string   `mapstructure:"import_suffix"`
	Marker         string   `mapstructure:"marker"`
	Indent         string   `mapstructure:"indent"`
	Closing        string   `mapstructure:"closing"`
	MethodKeywords []string `mapstructure:"method_keywords"`
	VerifySyntax   bool     `mapstructure:"verify_syntax"`
	RequireClean   bool     `mapstructure:"require_clean"`
}

// Load reads configuration from configPath, or from screenwrap.yaml in the
// working directory or ./config when configPath is empty. SCREENWRAP_*
// environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SCREENWRAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Marker == "" {
		cfg.Marker = cfg.Wrapper
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", defaultRoot)
	v.SetDefault("targets", []string{})
	v.SetDefault("wrapper", defaultWrapper)
	v.SetDefault("container", defaultContainer)
	v.SetDefault("import_suffix", defaultImportSuffix)
	v.SetDefault("marker", "")
	v.SetDefault("indent", defaultIndent)
	v.SetDefault("closing", string(patcher.ClosingBalanced))
	v.SetDefault("method_keywords", patcher.DefaultMethodKeywords)
	v.SetDefault("verify_syntax", false)
	v.SetDefault("require_clean", false)
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}
	if strings.TrimSpace(c.Wrapper) == "" {
		return ErrEmptyWrapper
	}
	if strings.TrimSpace(c.Container) == "" {
		return ErrEmptyContainer
	}
	switch patcher.ClosingStrategy(c.Closing) {
	case patcher.ClosingBalanced, patcher.ClosingHeuristic:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidClosing, c.Closing)
	}
	for _, target := range c.Targets {
		if err := validateTarget(target); err != nil {
			return err
		}
	}
	return nil
}

func validateTarget(target string) error {
	if target == "" || filepath.IsAbs(target) || path.IsAbs(filepath.ToSlash(target)) {
		return fmt.Errorf("%w: %q", ErrTargetNotRelative, target)
	}
	cleaned := path.Clean(filepath.ToSlash(target))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrTargetNotRelative, target)
	}
	return nil
}

// PatcherOptions converts the configuration into engine options.
func (c *Config) PatcherOptions() patcher.Options {
	return patcher.Options{
		Wrapper:        c.Wrapper,
		Container:      c.Container,
		ImportSuffix:   c.ImportSuffix,
		Marker:         c.Marker,
		Indent:         c.Indent,
		Closing:        patcher.ClosingStrategy(c.Closing),
		MethodKeywords: c.MethodKeywords,
	}
}
