package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lumen/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("lumen-test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("trace", "", "")
	fs.String("tracefile", "", "")
	fs.String("newlines", "exact", "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestConfigDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	k, err := loadKoanf(testFlags(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	s, err := interpret(k)
	require.NoError(t, err)
	assert.Equal(t, "", s.traceLevel)
	assert.Equal(t, "", s.traceFile)
	assert.Equal(t, grammar.NewlinesExact, s.newlines)
}

func TestConfigFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	name := writeConfig(t, "trace: debug\nnewlines: lookback\ntracefile: events.log\n")
	k, err := loadKoanf(testFlags(), name)
	require.NoError(t, err)
	s, err := interpret(k)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.traceLevel)
	assert.Equal(t, "events.log", s.traceFile)
	assert.Equal(t, grammar.NewlinesLookback, s.newlines)
}

func TestConfigFlagOverridesFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	name := writeConfig(t, "newlines: lookback\n")
	flags := testFlags()
	require.NoError(t, flags.Set("newlines", "exact"))
	k, err := loadKoanf(flags, name)
	require.NoError(t, err)
	assert.Equal(t, "exact", k.String("newlines"))
	//
	flags = testFlags()
	require.NoError(t, flags.Set("config", name))
	k, err = loadKoanf(flags, "")
	require.NoError(t, err)
	assert.Equal(t, "lookback", k.String("newlines"), "--config selects the file")
}

func TestConfigEnvironment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	t.Setenv("LUMEN_TRACE", "info")
	name := writeConfig(t, "trace: debug\n")
	k, err := loadKoanf(testFlags(), name)
	require.NoError(t, err)
	assert.Equal(t, "info", k.String("trace"))
}

func TestConfigInterpretErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lumen.cli")
	defer teardown()
	//
	for _, content := range []string{"trace: verbose\n", "newlines: sometimes\n"} {
		k, err := loadKoanf(testFlags(), writeConfig(t, content))
		require.NoError(t, err)
		_, err = interpret(k)
		assert.Error(t, err, content)
	}
	k, err := loadKoanf(testFlags(), writeConfig(t, "trace: OFF\n"))
	require.NoError(t, err)
	s, err := interpret(k)
	require.NoError(t, err)
	assert.Equal(t, "", s.traceLevel)
}

func TestLogFilePaths(t *testing.T) {
	paths := appPaths{tag: "lumen", home: "/home/user"}
	abs := filepath.Join(string(filepath.Separator), "tmp", "events.log")
	assert.Equal(t, abs, paths.LogFile(abs))
	assert.Equal(t, filepath.Join(paths.LogDir(), "events.log"), paths.LogFile("events.log"))
	assert.Equal(t, filepath.Join(paths.ConfigDir(), "config.yaml"), paths.ConfigFile())
}
