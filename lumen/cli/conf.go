package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/lumen"
	"github.com/npillmayer/lumen/grammar"
	"github.com/npillmayer/lumen/trace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/pflag"
)

// Configuration holds the merged configuration values. We use koanf.
var Configuration *koanf.Koanf

// settings is the interpreted configuration.
type settings struct {
	traceLevel string // empty for no tracing
	traceFile  string // empty for no event log
	newlines   grammar.NewlineMode
	sink       trace.Sink
}

var conf = settings{sink: trace.Discard}

var defaults = map[string]interface{}{
	"trace":     "",
	"tracefile": "",
	"newlines":  "exact",
}

var traceLevels = map[string]tracing.TraceLevel{
	"error": tracing.LevelError,
	"info":  tracing.LevelInfo,
	"debug": tracing.LevelDebug,
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	paths := lumenPaths()
	k, err := loadKoanf(rootCmd.PersistentFlags(), paths.ConfigFile())
	if err != nil {
		tracer().Errorf("%v", err)
		lumen.Exit(1)
	}
	if conf, err = interpret(k); err != nil {
		tracer().Errorf("%v", err)
		lumen.Exit(1)
	}
	if conf.sink, err = configureTracing(conf, paths); err != nil {
		tracer().Errorf("%v", err)
		lumen.Exit(1)
	}
	Configuration = k // push the configuration to app-global scope
}

// loadKoanf merges defaults, the config file (if present), LUMEN_*
// environment variables and command line flags, in increasing priority.
func loadKoanf(flags *pflag.FlagSet, configFile string) (*koanf.Koanf, error) {
	k := koanf.New(".") // '.' is hierarchy delimiter
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}
	if cf, _ := flags.GetString("config"); cf != "" {
		configFile = cf
	}
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	envKeys := env.Provider("LUMEN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LUMEN_"))
	})
	if err := k.Load(envKeys, nil); err != nil {
		return nil, err
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, err
	}
	return k, nil
}

func interpret(k *koanf.Koanf) (settings, error) {
	s := settings{sink: trace.Discard}
	s.traceLevel = strings.ToLower(k.String("trace"))
	if _, ok := traceLevels[s.traceLevel]; !ok && s.traceLevel != "" && s.traceLevel != "off" {
		return s, fmt.Errorf("unknown trace level %q", s.traceLevel)
	}
	if s.traceLevel == "off" {
		s.traceLevel = ""
	}
	s.traceFile = k.String("tracefile")
	mode, ok := grammar.ParseNewlineMode(k.String("newlines"))
	if !ok {
		return s, fmt.Errorf("unknown newline mode %q", k.String("newlines"))
	}
	s.newlines = mode
	return s, nil
}

// configureTracing creates the trace sink for tokenizers and parsers:
// a Go logger tracer if a trace level is set, and an event log file
// if a trace file is configured.
func configureTracing(s settings, paths AppPaths) (trace.Sink, error) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	var sinks []trace.Sink
	if s.traceLevel != "" {
		t := gologadapter.New()
		t.SetTraceLevel(traceLevels[s.traceLevel])
		tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace { return t }))
		sinks = append(sinks, trace.Tracer(t))
	}
	if s.traceFile != "" {
		name := paths.LogFile(s.traceFile)
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return nil, err
		}
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("re-directing trace output failed: %w", err)
		}
		tracer().Infof("writing event log to %s", name)
		lumen.Tracefile = f
		sinks = append(sinks, trace.NewWriter(f))
	}
	return trace.Tee(sinks...), nil
}

// options returns the grammar options of the current configuration.
func options() []grammar.Option {
	return []grammar.Option{
		grammar.WithTrace(conf.sink),
		grammar.WithNewlineMode(conf.newlines),
	}
}

func lumenPaths() AppPaths {
	paths, err := DefaultAppPaths("lumen")
	if err != nil {
		tracer().Errorf("cannot configure paths: %v", err)
	}
	return paths
}
