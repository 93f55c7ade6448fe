package skills

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// NewLoaderFromConfig creates a loader with roots taken from configuration.
// skills.user_dir and skills.project_dir override the conventional locations
// (~/.skillet/skills and ./.skillet/skills).
func NewLoaderFromConfig() (*Loader, error) {
	userRoot := viper.GetString("skills.user_dir")
	if userRoot == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get user home directory")
		}
		userRoot = filepath.Join(homeDir, ".skillet", "skills")
	}

	projectRoot := viper.GetString("skills.project_dir")
	if projectRoot == "" {
		projectRoot = filepath.Join(".", ".skillet", "skills")
	}

	return NewLoader(WithRoots(userRoot, projectRoot))
}
