package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// AppPaths locates the configuration file and event logs of the application.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
	ConfigFile() string         // config.yaml within ConfigDir
	LogFile(name string) string // name relative to LogDir, unless absolute
}

// DefaultAppPaths returns platform-dependent paths for an application,
// identified by appTag.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	home, err := os.UserHomeDir()
	return appPaths{tag: strings.ToLower(appTag), home: home}, err
}

type appPaths struct {
	tag  string
	home string // empty if unknown
}

var _ AppPaths = appPaths{}

func (a appPaths) ConfigFile() string {
	return filepath.Join(a.ConfigDir(), "config.yaml")
}

func (a appPaths) LogFile(name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(a.LogDir(), name)
}
