package envmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sitecue/sitecue/internal/utils"
)

// Loader handles loading and parsing of environments.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new environment map loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the environments.yaml file
func (l *Loader) Load() (*Config, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open environments file: %w", err)
	}
	defer utils.MustClose(f)

	var config Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse environments yaml: %w", err)
	}

	return &config, nil
}
