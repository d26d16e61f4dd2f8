// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a dotenv file and merges its contents into the provided env map.
// Relative paths are resolved against baseDir.
// Files suffixed with '?' are optional; missing optional files do not cause an error.
// Later calls to LoadEnvFile override earlier values for the same keys.
func LoadEnvFile(env map[string]string, path, baseDir string) error {
	optional := strings.HasSuffix(path, "?")
	if optional {
		path = strings.TrimSuffix(path, "?")
	}

	fullPath := filepath.FromSlash(path)
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(baseDir, fullPath)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse env file '%s': %w", path, err)
	}
	for k, v := range values {
		env[k] = v
	}
	return nil
}
