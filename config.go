package mapkv

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/mapkv/internal/keyspace"
)

// Config is the file form of the in-memory cache settings.
//
//	namespace: user
//	key_separator: "::"
//	default_ttl: 10m
type Config struct {
	Namespace    string        `yaml:"namespace"`
	KeySeparator string        `yaml:"key_separator"`
	DefaultTTL   time.Duration `yaml:"default_ttl"`
}

// LoadConfig decodes YAML from r. Unknown fields are rejected and an empty
// document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("mapkv: decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig on the file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c Config) validate() error {
	if c.DefaultTTL < 0 {
		return fmt.Errorf("mapkv: default_ttl must not be negative, got %s", c.DefaultTTL)
	}
	sep := c.KeySeparator
	if sep == "" {
		sep = keyspace.DefaultSeparator
	}
	if c.Namespace != "" && strings.Contains(c.Namespace, sep) {
		// composite keys could not be split back into namespace and key
		return fmt.Errorf("mapkv: namespace %q contains key separator %q", c.Namespace, sep)
	}
	return nil
}
