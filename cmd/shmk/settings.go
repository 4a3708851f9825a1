package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvLog overrides the log level from the settings file.
const EnvLog = "SHMK_LOG"

// settings are the user's defaults for shmk. Command line flags take
// precedence.
type settings struct {
	Log       string
	LogFormat string
	Compiler  string
	Env       []string

	// Unknown are the keys of the settings file shmk does not know.
	Unknown []string
}

type fileSettings struct {
	Log       string   `toml:"log"`
	LogFormat string   `toml:"log_format"`
	Compiler  string   `toml:"compiler"`
	Env       []string `toml:"env"`
}

func defaultSettingsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shmk", "config.toml")
}

// loadSettings reads the settings file path. If path is empty, the default
// settings file is read if it exists.
func loadSettings(path string) (settings, error) {
	var s settings
	explicit := path != ""
	if !explicit {
		path = defaultSettingsFile()
	}
	if path != "" {
		var raw fileSettings
		meta, err := toml.DecodeFile(path, &raw)
		switch {
		case err == nil:
			if meta.IsDefined("log") {
				s.Log = strings.TrimSpace(raw.Log)
			}
			if meta.IsDefined("log_format") {
				s.LogFormat = strings.TrimSpace(raw.LogFormat)
			}
			if meta.IsDefined("compiler") {
				s.Compiler = strings.TrimSpace(raw.Compiler)
			}
			if meta.IsDefined("env") {
				s.Env = raw.Env
			}
			for _, k := range meta.Undecoded() {
				s.Unknown = append(s.Unknown, k.String())
			}
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return s, fmt.Errorf("load settings: %w", err)
		}
	}
	if l, ok := os.LookupEnv(EnvLog); ok {
		s.Log = strings.TrimSpace(l)
	}
	return s, nil
}
