package types

import (
	"fmt"
	"github.com/kluctl/cordovactl/pkg/utils"
	"github.com/kluctl/cordovactl/pkg/yaml"
	"path/filepath"
)

const ProjectConfigFileName = ".cordovactl.yml"

type SigningConfig struct {
	Keystore  string `yaml:"keystore,omitempty"`
	StorePass string `yaml:"storePass,omitempty"`
	KeyPass   string `yaml:"keyPass,omitempty"`
}

// ProjectConfig holds the per-project defaults from .cordovactl.yml. Command line flags and
// environment variables take precedence over all values.
type ProjectConfig struct {
	Name      string         `yaml:"name,omitempty" validate:"omitempty,appname"`
	Shell     bool           `yaml:"shell,omitempty"`
	Signing   *SigningConfig `yaml:"signing,omitempty"`
	OutputDir string         `yaml:"outputDir,omitempty"`
}

// ProjectConfigPath returns the path of the config file inside projectDir. Both the .yml and
// .yaml extensions are accepted.
func ProjectConfigPath(projectDir string) string {
	return yaml.FixPathExt(filepath.Join(projectDir, ProjectConfigFileName))
}

// LoadProjectConfig loads configPath, or the default config file of projectDir when configPath
// is empty. A missing default config file results in an empty config.
func LoadProjectConfig(projectDir string, configPath string) (*ProjectConfig, error) {
	var config ProjectConfig

	if configPath == "" {
		p := ProjectConfigPath(projectDir)
		if !utils.IsFile(p) {
			return &config, nil
		}
		configPath = p
	}

	err := yaml.ReadYamlFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config %s: %w", configPath, err)
	}

	if config.Signing != nil && config.Signing.Keystore != "" {
		config.Signing.Keystore = utils.ResolvePath(filepath.Dir(configPath), config.Signing.Keystore)
	}
	if config.OutputDir != "" {
		config.OutputDir = utils.ResolvePath(projectDir, config.OutputDir)
	}

	return &config, nil
}
