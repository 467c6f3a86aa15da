package main

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the mock server configuration, loadable from environment
// variables (MOCKSERVER_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:3000" usage:"Listen address"`
	ImageBaseURL string `default:"" usage:"Base URL for item images (defaults to the request host)" flag:"image-base-url"`
	Graceful     GracefulConfig
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"10s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// loadConfig loads configuration and maps a platform-provided PORT variable
// onto the listen address.
func loadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "MOCKSERVER",
		Files:     []string{"mock-server.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if port := os.Getenv("PORT"); port != "" && cfg.Addr == "0.0.0.0:3000" {
		cfg.Addr = "0.0.0.0:" + port
	}

	return &cfg, nil
}
