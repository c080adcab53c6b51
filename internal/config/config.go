package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/widgetkit/internal/errors"
)

const (
	// ConfigFileName is the JSON configuration file name.
	ConfigFileName = "widgetkit.json"

	// YAMLConfigFileName is the YAML configuration file name.
	YAMLConfigFileName = "widgetkit.yaml"

	// DefaultFrameRate is the default number of frames per second.
	DefaultFrameRate = 60

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "widgetkit"

	// DefaultRegion is the default publish region.
	DefaultRegion = "us-east-1"
)

// Config represents widgetkit.json.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// FrameRate caps how many render passes run per second.
	FrameRate int `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`

	Log     LogConfig     `json:"log" yaml:"log"`
	Preview PreviewConfig `json:"preview" yaml:"preview"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Publish PublishConfig `json:"publish" yaml:"publish"`

	// Catalog is the path to the demo product data, relative to the
	// config file.
	Catalog string `json:"catalog,omitempty" yaml:"catalog,omitempty"`

	configPath string
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// PublishConfig configures snapshot uploads.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3 compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PathStyle forces path style addressing.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// New returns a configuration with all defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads the configuration from dir. widgetkit.json wins over
// widgetkit.yaml when both exist.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "widgetkit.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("W201").
		WithDetail("No widgetkit.json or widgetkit.yaml found in " + dir)
}

// LoadFile loads the configuration from path. The format follows the
// file extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W201").WithDetail(path).Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("W201").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension
// names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("W201").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W201").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory of the configuration file, or "." when the
// configuration was not loaded from disk.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.FrameRate == 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return invalid("frameRate", "must be between 1 and 240, got "+strconv.Itoa(c.FrameRate))
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return invalid("preview.port", "must be between 0 and 65535")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", "unknown level "+strconv.Quote(c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid("log.format", "must be text or json")
	}
	if strings.HasPrefix(c.Publish.Prefix, "/") {
		return invalid("publish.prefix", "must not start with a slash")
	}
	return nil
}

// Address returns the preview server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Preview.Host, strconv.Itoa(c.Preview.Port))
}

// CatalogPath resolves Catalog against the config directory. It returns
// "" when no catalog is configured.
func (c *Config) CatalogPath() string {
	if c.Catalog == "" {
		return ""
	}
	if filepath.IsAbs(c.Catalog) {
		return c.Catalog
	}
	return filepath.Join(c.Dir(), c.Catalog)
}

// Exists reports whether dir holds a configuration file.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "widgetkit.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from startDir to the first directory holding a
// configuration file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("W201").
				WithDetail("No widgetkit.json or widgetkit.yaml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

func invalid(field, detail string) error {
	return errors.New("W202").WithDetail(field + " " + detail)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
