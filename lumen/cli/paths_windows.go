package cli

import (
	"os"
	"path/filepath"
)

// ConfigDir is %AppData%\<tag>.
func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = a.home
	}
	return filepath.Join(c, a.tag)
}

// LogDir is %LocalAppData%\<tag>\Logs.
func (a appPaths) LogDir() string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = a.home
	}
	return filepath.Join(c, a.tag, "Logs")
}
