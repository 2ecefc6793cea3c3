package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	envconfigPrefix = "XWALLET"

	defaultAPIAddress = "http://localhost:8080/api"

	sessionBackendFile  = "file"
	sessionBackendRedis = "redis"
)

// settings are read from XWALLET_* environment variables. Tags are avoided
// so that envconfig never falls back to unprefixed variables like HOME.
type settings struct {
	APIAddress     string   `split_words:"true"`
	ConsoleAddress string   `split_words:"true" default:"http://localhost:3000"`
	Locales        []string `default:"zh-CN,en-US"`
	DefaultLocale  string   `split_words:"true" default:"zh-CN"`
	Home           string
	SessionID      string        `split_words:"true"`
	SessionBackend string        `split_words:"true" default:"file"`
	APITimeout     time.Duration `split_words:"true" default:"30s"`
}

func getSettings() (settings, error) {
	s := settings{}
	if err := envconfig.Process(envconfigPrefix, &s); err != nil {
		return s, errors.Wrap(
			err,
			"error getting xwallet configuration from environment",
		)
	}
	switch s.SessionBackend {
	case sessionBackendFile, sessionBackendRedis:
	default:
		return s, errors.Errorf(
			"unknown session backend %q; supported backends: %s, %s",
			s.SessionBackend,
			sessionBackendFile,
			sessionBackendRedis,
		)
	}
	if s.Home == "" {
		homeDir, err := homedir.Dir()
		if err != nil {
			return s, errors.Wrap(err, "error locating user's home directory")
		}
		s.Home = filepath.Join(homeDir, ".xwallet")
	} else {
		var err error
		if s.Home, err = homedir.Expand(s.Home); err != nil {
			return s, errors.Wrapf(err, "error expanding xwallet home %s", s.Home)
		}
	}
	return s, nil
}

// ephemeralDir returns the directory holding the session of the current
// terminal session. It is removed (eventually) with the OS temp directory,
// and a new terminal session gets a new one.
func (s settings) ephemeralDir() string {
	sessionID := s.SessionID
	if sessionID == "" {
		sessionID = strconv.Itoa(os.Getppid())
	}
	return filepath.Join(
		os.TempDir(),
		fmt.Sprintf("xwallet-%d", os.Getuid()),
		sessionID,
	)
}

// config is what the CLI remembers between invocations. The session itself
// is held by the session store, not here.
type config struct {
	APIAddress string `json:"apiAddress"`
}

func (s settings) configFile() string {
	return filepath.Join(s.Home, "config")
}

func getConfig(s settings) (*config, error) {
	configFile := s.configFile()
	configBytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &config{}, nil
		}
		return nil, errors.Wrapf(
			err,
			"error reading xwallet config file at %s",
			configFile,
		)
	}
	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing xwallet config file at %s",
			configFile,
		)
	}
	return config, nil
}

func saveConfig(s settings, config *config) error {
	if err := os.MkdirAll(s.Home, 0700); err != nil {
		return errors.Wrapf(err, "error creating xwallet home at %s", s.Home)
	}
	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	configFile := s.configFile()
	if err := ioutil.WriteFile(configFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}

// apiAddress resolves the API address to use. An explicit address wins,
// followed by XWALLET_API_ADDRESS, followed by the address last logged in to.
func (s settings) apiAddress(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.APIAddress != "" {
		return s.APIAddress, nil
	}
	config, err := getConfig(s)
	if err != nil {
		return "", err
	}
	if config.APIAddress != "" {
		return config.APIAddress, nil
	}
	return defaultAPIAddress, nil
}
