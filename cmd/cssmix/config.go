package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssmix"
	"github.com/yacobolo/cssmix/internal/report"
)

const defaultConfigPath = ".cssmix.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set).
	// Without a koanf instance posflag skips unchanged flags, so flag
	// defaults never shadow nested config keys.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSMIX_* prefix)
	if err := k.Load(env.Provider("CSSMIX_", ".", func(s string) string {
		// CSSMIX_BUILD_SOURCE -> build.source
		// CSSMIX_CHECK_STRICT -> check.strict
		// CSSMIX_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSMIX_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig(log *zap.Logger) (cssmix.Config, error) {
	config := cssmix.Config{
		SourceDir:    getStringWithFallback("source", "build.source", "styles"),
		OutputDir:    getStringWithFallback("output-dir", "build.output-dir", ""),
		UseGitIgnore: getBoolWithFallback("gitignore", "build.gitignore", true),
		DryRun:       getBoolWithFallback("dry-run", "build.dry-run", false),
		Options: cssmix.Options{
			Units: cssmix.Units{
				Default:    getStringWithFallback("unit", "units.default", ""),
				LineHeight: getStringWithFallback("line-height-unit", "units.line-height", ""),
			},
			Logger: log,
		},
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("build.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = cssmix.DefaultIncludes
	}

	if k.Exists("variables") {
		var vars cssmix.Variables
		if err := k.Unmarshal("variables", &vars); err != nil {
			return config, fmt.Errorf("reading variables: %w", err)
		}
		config.Options.Variables = &vars
	}

	return config, nil
}

// buildReportConfig constructs the reporter settings from koanf state.
func buildReportConfig() report.Config {
	return report.Config{
		UseColors:        getBoolWithFallback("color", "color", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		MaxIssues:        getIntWithFallback("max-issues", "check.max-issues", 0),
	}
}

// commandLogger builds the logger selected by --verbose.
func commandLogger() *zap.Logger {
	return newLogger(getBoolWithFallback("verbose", "verbose", false), getBoolWithFallback("color", "color", false))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
