// Package config loads the service configuration from YAML.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port           int           `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeout    time.Duration `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout   time.Duration `yaml:"writeTimeout" validate:"gte=0"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"gt=0"`
	MaxConcurrent  int           `yaml:"maxConcurrent" validate:"gt=0"`
	CORSOrigins    []string      `yaml:"corsOrigins" validate:"dive,required"`
}

// BBoxConfig limits OSM import to a lat/lon box.
type BBoxConfig struct {
	MinLat float64 `yaml:"minLat" validate:"gte=-90,lte=90"`
	MaxLat float64 `yaml:"maxLat" validate:"gte=-90,lte=90,gtefield=MinLat"`
	MinLng float64 `yaml:"minLng" validate:"gte=-180,lte=180"`
	MaxLng float64 `yaml:"maxLng" validate:"gte=-180,lte=180,gtefield=MinLng"`
}

type DataConfig struct {
	CSVDir  string      `yaml:"csvDir" validate:"omitempty,dir"`
	OSMFile string      `yaml:"osmFile" validate:"omitempty,file"`
	BBox    *BBoxConfig `yaml:"bbox"`
}

type SearchConfig struct {
	// BoardingWindow is in minutes.
	BoardingWindow int `yaml:"boardingWindow" validate:"gt=0,lte=1440"`
}

type Config struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Data   DataConfig   `yaml:"data"`
	Search SearchConfig `yaml:"search"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			RequestTimeout: 5 * time.Second,
			MaxConcurrent:  runtime.NumCPU() * 2,
		},
		Search: SearchConfig{
			BoardingWindow: 20,
		},
	}
}

// Load reads and validates a YAML file. Keys missing from the file keep
// their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	return validate.Struct(c)
}
