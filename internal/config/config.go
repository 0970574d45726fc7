package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// candidate config files, highest priority first.
var candidates = []string{"contentsync.json", "sync.json"}

// Config is the runtime configuration, loaded from a JSON file in the working
// directory when one exists.
type Config struct {
	ContentURL string `json:"content_url,omitempty"`
	ContentDir string `json:"content_dir,omitempty"`
	CustomDir  string `json:"custom_dir,omitempty"`
	IgnoreFile string `json:"ignore_file,omitempty"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ContentURL: "git@github.com:demisto/content.git",
		ContentDir: "demisto-content",
		CustomDir:  "demisto-custom-content",
		IgnoreFile: ".contentignore",
	}
}

// Load reads the first candidate config file under root. Fields absent from
// the file keep their defaults; a missing file is not an error.
func Load(root string) (Config, error) {
	cfg := Default()
	for _, file := range candidates {
		path := filepath.Join(root, file)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, errors.Wrapf(err, "reading %s", path)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", path)
		}
		return cfg, nil
	}
	return cfg, nil
}

// Save writes cfg to the primary candidate file under root.
func Save(root string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(root, candidates[0])
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %s", path)
}
