package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	APIKey    = "api_key"
	APIURL    = "api_url"
	Backend   = "backend"
	LogLevel  = "log_level"
	LogFormat = "log_format"
	Fixtures  = "fixtures"
	Count     = "count"
	Seed      = "seed"
)

const (
	configName = ".cdnctl"
	configType = "yaml"
	envPrefix  = "CDNCTL"
)

// Settings is a snapshot of the configuration, read once at start-up and
// passed to constructors.
type Settings struct {
	APIKey    string
	APIURL    string
	Backend   string
	LogLevel  string
	LogFormat string
	Fixtures  string
	Count     int
	Seed      uint64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(APIURL, "http://localhost:8080")
	v.SetDefault(Backend, "remote")
	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogFormat, "text")
	v.SetDefault(Count, 150)
	v.SetDefault(Seed, 1)
}

// InitConfig initializes the configuration
func InitConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	initViper(viper.GetViper(), home)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func initViper(v *viper.Viper, dir string) {
	v.AddConfigPath(dir)
	v.SetConfigType(configType)
	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match
	setDefaults(v)
}

// Load returns the current settings.
func Load() Settings {
	return load(viper.GetViper())
}

func load(v *viper.Viper) Settings {
	return Settings{
		APIKey:    v.GetString(APIKey),
		APIURL:    v.GetString(APIURL),
		Backend:   v.GetString(Backend),
		LogLevel:  v.GetString(LogLevel),
		LogFormat: v.GetString(LogFormat),
		Fixtures:  v.GetString(Fixtures),
		Count:     v.GetInt(Count),
		Seed:      v.GetUint64(Seed),
	}
}

// Set stores a key in the configuration file.
func Set(key, value string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return set(viper.GetViper(), filepath.Join(home, configName+"."+configType), key, value)
}

func set(v *viper.Viper, path, key, value string) error {
	v.Set(key, value)
	return v.WriteConfigAs(path)
}

// SetAPIKey sets the API key in the configuration file
func SetAPIKey(key string) error {
	return Set(APIKey, key)
}

// GetAPIKey returns the API key from the configuration
func GetAPIKey() string {
	return viper.GetString(APIKey)
}
