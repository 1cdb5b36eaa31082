package cli

import (
	"os"
	"path/filepath"
)

// ConfigDir is ~/Library/Application Support/<tag>.
func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = filepath.Join(a.home, "Library", "Application Support")
	}
	return filepath.Join(c, a.tag)
}

// LogDir is ~/Library/Logs/<tag>.
func (a appPaths) LogDir() string {
	return filepath.Join(a.home, "Library", "Logs", a.tag)
}
