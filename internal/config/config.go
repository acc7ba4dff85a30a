// Package config loads and validates run settings.
//
// Settings live in a doccompare.yaml file (or any file passed explicitly)
// with two keys: root_path, the directory tree to process, and exclusions,
// a comma-separated list of substrings filtered out of XML lines before
// comparison. Environment variables with the DOCCOMPARE_ prefix override
// file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"doccompare/internal/types"
)

const (
	// DefaultConfigName is the config file name looked up in the working
	// directory when no explicit path is given (extension resolved by
	// viper).
	DefaultConfigName = "doccompare"
	// EnvPrefix namespaces environment variable overrides, e.g.
	// DOCCOMPARE_ROOT_PATH.
	EnvPrefix = "DOCCOMPARE"
)

// Load reads settings from the given config file, or from ./doccompare.yaml
// when path is empty, and validates them. Any failure is a types.ErrConfig
// and aborts the run before processing starts.
func Load(path string) (*types.Settings, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("exclusions", "")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is acceptable only when the required values
		// arrive through the environment.
		if v.GetString("root_path") == "" {
			return nil, types.NewAppError(types.ErrConfig, "unable to read settings", err)
		}
	}

	settings := &types.Settings{
		RootPath:   v.GetString("root_path"),
		Exclusions: SplitExclusions(v.GetString("exclusions")),
	}
	if err := validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SplitExclusions parses the raw comma-separated exclusion value. Entries
// are trimmed and empties dropped; an empty input means no filtering.
func SplitExclusions(raw string) []string {
	var exclusions []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			exclusions = append(exclusions, part)
		}
	}
	return exclusions
}

func validate(s *types.Settings) error {
	if s.RootPath == "" {
		return types.NewAppError(types.ErrConfig, "settings must specify root_path", nil)
	}
	info, err := os.Stat(s.RootPath)
	if err != nil {
		return types.NewAppError(types.ErrConfig,
			fmt.Sprintf("specified folder does not exist: %s", s.RootPath), err)
	}
	if !info.IsDir() {
		return types.NewAppError(types.ErrConfig,
			fmt.Sprintf("root_path is not a directory: %s", s.RootPath), nil)
	}
	return nil
}
