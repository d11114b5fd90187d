// Package config loads and persists the cyphernet CLI configuration via
// viper: default Noise protocol, key output encoding, and the base
// directory keys and config live in.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/spf13/viper"

	"github.com/go-i2p/go-cyphernet/lib/util"
)

var (
	// CfgFile is the config file path override supplied on the command line.
	CfgFile string

	log = logger.GetGoI2PLogger()
)

const CYPHERNET_BASE_DIR = ".go-cyphernet"

// Config is the CLI tool's settings, resolved from defaults, the config
// file, and the environment.
type Config struct {
	// BaseDir is where keys and the config file live.
	BaseDir string

	// Protocol is the default fully-qualified Noise protocol name, for
	// example "Noise_XX_25519_ChaChaPoly_SHA256".
	Protocol string

	// KeyEncoding selects how keygen prints keys: "armor" or "multibase".
	KeyEncoding string
}

// InitConfig sets up viper with defaults and the config file, creating the
// file with defaults on first run.
func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildCyphernetDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("base_dir", DefaultConfig.BaseDir)
	viper.SetDefault("protocol", DefaultConfig.Protocol)
	viper.SetDefault("key_encoding", DefaultConfig.KeyEncoding)
}

// NewConfigFromViper resolves the current viper settings into a Config.
func NewConfigFromViper() *Config {
	return &Config{
		BaseDir:     viper.GetString("base_dir"),
		Protocol:    viper.GetString("protocol"),
		KeyEncoding: viper.GetString("key_encoding"),
	}
}

// BuildCyphernetDirPath returns the default base directory under the user's
// home.
func BuildCyphernetDirPath() string {
	return filepath.Join(util.UserHome(), CYPHERNET_BASE_DIR)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && CfgFile == "" {
			createDefaultConfig()
			return
		}
		log.WithError(err).Warn("Could not read config file, using defaults")
	}
}

func createDefaultConfig() {
	dir := BuildCyphernetDirPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).Warn("Could not create config directory")
		return
	}
	path := filepath.Join(dir, "config.yaml")
	if err := viper.SafeWriteConfigAs(path); err != nil {
		log.WithError(err).Debug("Could not write default config file")
		return
	}
	log.WithField("path", path).Debug("Created default config file")
}
