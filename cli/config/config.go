package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Paths struct {
	config string
}

type Config struct {
	Server      string `yaml:"server,omitempty"`
	VaultDir    string `yaml:"vault_dir,omitempty"`
	DefaultView string `yaml:"default_view,omitempty"`
}

var baseConfigPath = filepath.Join(".config", "shardvault")

const configFileName = "config.yml"

//go:embed config.yml
var defaultConfig string

// SetupConfigDir ensures that the directory necessary for shardvault's config
// has been created. This path defaults to $HOME/.config/shardvault.
func SetupConfigDir() (Paths, error) {
	dirname, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}

	localConfig, err := makeConfigDirectories(dirname)
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		config: filepath.Join(localConfig, configFileName),
	}, nil
}

// setupTempConfigDir creates a config directory for the current user in the
// OS's temporary directory. Used for testing.
func setupTempConfigDir() (Paths, error) {
	dirname := os.TempDir()
	localConfig, err := makeConfigDirectories(dirname)
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		config: filepath.Join(localConfig, configFileName),
	}, nil
}

// makeConfigDirectories creates the necessary directories for storing the
// user's local shardvault config
func makeConfigDirectories(dirname string) (string, error) {
	localConfig := filepath.Join(dirname, baseConfigPath)
	err := os.MkdirAll(localConfig, os.ModePerm)
	if err != nil {
		return "", err
	}

	return localConfig, nil
}

// ReadConfig reads the config file (config.yml) for current configuration,
// writing the embedded default config first if the file doesn't exist yet.
func ReadConfig(paths Paths) (Config, error) {
	if _, err := os.Stat(paths.config); err == nil {
		config := Config{}
		data, err := os.ReadFile(paths.config)
		if err != nil {
			return config, err
		}

		err = yaml.Unmarshal(data, &config)
		if err != nil {
			return config, err
		}

		// Strip trailing slash
		if strings.HasSuffix(config.Server, "/") {
			config.Server = config.Server[0 : len(config.Server)-1]
		}

		return config, nil
	} else {
		err := os.WriteFile(paths.config, []byte(defaultConfig), 0644)
		if err != nil {
			return Config{}, err
		}

		return ReadConfig(paths)
	}
}

// LoadConfig sets up the user's config directory and reads the configuration
// stored there.
func LoadConfig() (Config, error) {
	paths, err := SetupConfigDir()
	if err != nil {
		return Config{}, err
	}

	return ReadConfig(paths)
}
