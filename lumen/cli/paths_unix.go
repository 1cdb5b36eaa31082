//go:build aix || dragonfly || freebsd || (js && wasm) || nacl || linux || netbsd || openbsd || solaris
// +build aix dragonfly freebsd js,wasm nacl linux netbsd openbsd solaris

package cli

import (
	"os"
	"path/filepath"
)

// ConfigDir is $XDG_CONFIG_HOME/<tag> or ~/.config/<tag>.
func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = filepath.Join(a.home, ".config")
	}
	return filepath.Join(c, a.tag)
}

// LogDir is $XDG_STATE_HOME/<tag> or ~/.local/state/<tag>.
func (a appPaths) LogDir() string {
	if s := os.Getenv("XDG_STATE_HOME"); s != "" {
		return filepath.Join(s, a.tag)
	}
	return filepath.Join(a.home, ".local", "state", a.tag)
}
