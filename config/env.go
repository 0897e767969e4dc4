package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-envparse"
)

// LoadEnvFile reads a dotenv style file and exports its variables into the
// process environment, where %(ENV_x)s expressions and the forked copies of
// the executable can see them.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fail to open env file: %w", err)
	}
	defer f.Close()

	vals, err := envparse.Parse(f)
	if err != nil {
		return fmt.Errorf("fail to parse env file: %w", err)
	}
	for k, v := range vals {
		os.Setenv(k, v)
	}
	return nil
}
