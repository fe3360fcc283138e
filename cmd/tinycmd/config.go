// =============================================================================
// config.go - Configuration File
// =============================================================================
//
// The CLI reads an optional TOML file. Top-level keys size the interpreter;
// the [cli] table configures the front ends:
//
//	name_len = 8
//	max_tokens = 4
//	list_size = 8
//	report_buffer_size = 128
//	enable_64bit = true
//	discard_excess_tokens = false
//
//	[cli]
//	prompt = "> "
//	socket = "/tmp/tinycmd.sock"
//	log_level = "warn"
//	log_format = "text"
//
// Keys left out keep their defaults. The file path comes from --config or,
// failing that, the TINYCMD_CONFIG environment variable.
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tinycmd/tinycmd/tinycmd"
)

// configEnvVar names the environment variable holding a config file path.
const configEnvVar = "TINYCMD_CONFIG"

// fileConfig mirrors the layout of the TOML file.
type fileConfig struct {
	NameLen             int  `toml:"name_len"`
	MaxTokens           int  `toml:"max_tokens"`
	ListSize            int  `toml:"list_size"`
	ReportBufferSize    int  `toml:"report_buffer_size"`
	Enable64Bit         bool `toml:"enable_64bit"`
	DiscardExcessTokens bool `toml:"discard_excess_tokens"`

	CLI cliConfig `toml:"cli"`
}

// cliConfig holds front-end settings.
type cliConfig struct {
	Prompt    string `toml:"prompt"`
	Socket    string `toml:"socket"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// defaultFileConfig returns the settings used when no file is given.
func defaultFileConfig() fileConfig {
	core := tinycmd.DefaultConfig()
	return fileConfig{
		NameLen:             core.NameLen,
		MaxTokens:           core.MaxTokens,
		ListSize:            core.ListSize,
		ReportBufferSize:    core.ReportBufferSize,
		Enable64Bit:         core.Enable64Bit,
		DiscardExcessTokens: core.DiscardExcessTokens,
		CLI: cliConfig{
			Prompt:    "> ",
			Socket:    DefaultSocketPath,
			LogLevel:  "warn",
			LogFormat: "text",
		},
	}
}

// core returns the interpreter part of the file.
func (f fileConfig) core() tinycmd.Config {
	return tinycmd.Config{
		NameLen:             f.NameLen,
		MaxTokens:           f.MaxTokens,
		ListSize:            f.ListSize,
		ReportBufferSize:    f.ReportBufferSize,
		Enable64Bit:         f.Enable64Bit,
		DiscardExcessTokens: f.DiscardExcessTokens,
	}
}

// resolveConfigPath returns flagPath, or the path from the environment when
// the flag is empty.
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(configEnvVar)
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults. Unknown keys are an error so typos do not pass silently.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%s: unknown config keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.core().Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
