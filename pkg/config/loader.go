package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	rulesKey                = "rules"
	ignoreContextPatternKey = "ignore-context-pattern"
)

// FileNames are the project configuration files looked up by Discover, in order.
// The YAML parser also reads JSON documents.
var FileNames = []string{"lqlint.json", "lqlint.yaml", ".lqlint.yaml"}

// Source is one configuration fragment.
type Source struct {
	Name     string
	Provider koanf.Provider
	Parser   koanf.Parser
}

// FileSource reads a YAML or JSON file.
func FileSource(path string) Source {
	return Source{
		Name:     path,
		Provider: file.Provider(path),
		Parser:   yaml.Parser(),
	}
}

// MapSource uses an in-memory mapping with the same shape as a file.
func MapSource(name string, m map[string]interface{}) Source {
	return Source{
		Name:     name,
		Provider: confmap.Provider(m, ""),
	}
}

// Discover returns a FileSource for every configuration file found in dirs,
// in directory order and then FileNames order.
func Discover(dirs ...string) []Source {
	var sources []Source
	for _, dir := range dirs {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				slog.Debug("Discovered configuration file", "path", path)
				sources = append(sources, FileSource(path))
			}
		}
	}
	return sources
}

// Load reads every source in order and merges them into one Config.
// The result is validated before it is returned.
func Load(sources ...Source) (*Config, error) {
	entries := make(map[string]ruleEntry)
	cfg := &Config{rules: make(map[string][]*RuleConfig)}

	for _, src := range sources {
		slog.Debug("Loading configuration source", "source", src.Name)
		k := koanf.New(".")
		if err := k.Load(src.Provider, src.Parser); err != nil {
			return nil, &Error{Source: src.Name, Err: errors.Wrap(err, "failed to read")}
		}

		if k.Exists(ignoreContextPatternKey) {
			cfg.ignoreContextPattern = k.String(ignoreContextPatternKey)
		}

		raw := k.Raw()
		rules, ok := raw[rulesKey]
		if !ok || rules == nil {
			cfg.sources = append(cfg.sources, src.Name)
			continue
		}
		ruleMap, ok := rules.(map[string]interface{})
		if !ok {
			return nil, &Error{Source: src.Name, Err: errors.Errorf("%q must be a mapping of rule names, got %T", rulesKey, rules)}
		}

		for name, value := range ruleMap {
			entry, err := decodeEntry(src.Name, name, value)
			if err != nil {
				return nil, err
			}
			if prev, seen := entries[name]; seen {
				if entry, err = mergeEntry(name, prev, entry); err != nil {
					return nil, err
				}
			}
			entries[name] = entry
		}
		cfg.sources = append(cfg.sources, src.Name)
	}

	for name, entry := range entries {
		list := make([]*RuleConfig, 0, len(entry.fragments))
		for _, frag := range entry.fragments {
			list = append(list, frag.Build())
		}
		cfg.rules[name] = list
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", "sources", len(cfg.sources), "rules", len(cfg.rules))
	return cfg, nil
}

// Loader loads configuration lazily, at most once. The first call to Get
// reads the sources; later calls return the cached result, including a cached
// error. A Loader is safe for concurrent use.
type Loader struct {
	sources []Source

	once sync.Once
	cfg  *Config
	err  error
}

// NewLoader returns a Loader over sources.
func NewLoader(sources ...Source) *Loader {
	return &Loader{sources: sources}
}

// Static returns a Loader that always yields cfg.
func Static(cfg *Config) *Loader {
	l := &Loader{cfg: cfg}
	l.once.Do(func() {})
	return l
}

// Get returns the effective configuration.
func (l *Loader) Get() (*Config, error) {
	l.once.Do(func() {
		l.cfg, l.err = Load(l.sources...)
	})
	return l.cfg, l.err
}
