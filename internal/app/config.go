package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the client configuration, loadable from environment variables
// (APPETIZERS_ prefix), flags, or YAML config files.
type Config struct {
	BaseURL      string        `default:"http://localhost:3000/swiftui-fundamentals" usage:"Backend base URL" flag:"base-url"`
	ProfilePath  string        `default:"" usage:"Path of the stored profile blob (defaults under the user config dir)" flag:"profile-path"`
	FetchTimeout time.Duration `default:"10s" usage:"Deadline for one catalog fetch" flag:"fetch-timeout"`
	Prefetch     PrefetchConfig
}

// PrefetchConfig controls image prefetching after a catalog load.
type PrefetchConfig struct {
	Enabled     bool `default:"true" usage:"Prefetch item images into the cache"`
	Concurrency int  `default:"4"    usage:"Max concurrent image downloads"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then fills in the platform-dependent profile path.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "APPETIZERS",
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.ProfilePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve user config dir")
		}
		cfg.ProfilePath = filepath.Join(dir, "appetizers", "profile.json")
	}

	return &cfg, nil
}
