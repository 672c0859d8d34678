package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/thecompernolles/citylist/internal/tui"
)

const defaultURL = "https://roots.thecompernolles.com/cities.json"

type config struct {
	url     *url.URL
	timeout time.Duration
	logFile string
	debug   bool
}

// settings holds raw values while the layers are merged
type settings struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
	LogFile string `toml:"log_file"`
	Debug   bool   `toml:"debug"`
}

func defaultSettings() settings {
	s := settings{
		URL:     defaultURL,
		Timeout: "0s",
	}

	cacheDir, err := os.UserCacheDir()
	if err == nil {
		s.LogFile = filepath.Join(cacheDir, "citylist", "citylist.log")
	}

	return s
}

func getConfig(cmd *cobra.Command) (c config, err error) {
	s := defaultSettings()

	configDir, err := os.UserConfigDir()
	if err != nil {
		tui.PrintWarn("warning: could not get config dir: %v", err)
	}

	// Get config.toml
	tomlPath := flagConfig
	if tomlPath == "" && configDir != "" {
		tomlPath = filepath.Join(configDir, "citylist", "config.toml")
	}
	if tomlPath != "" {
		err := s.loadFile(tomlPath, flagConfig != "")
		if err != nil {
			return c, err
		}
	}

	// Get .env file
	if configDir != "" {
		envPath := filepath.Join(configDir, "citylist", "citylist.env")
		err := godotenv.Load(envPath)
		if err != nil {
			tui.PrintWarn("warning: could not load %s", envPath)
		}
	}

	err = s.loadEnv(os.LookupEnv)
	if err != nil {
		return c, err
	}

	// Flags win over everything else
	flags := cmd.Flags()
	if flags.Changed("url") {
		s.URL = flagURL
	}
	if flags.Changed("timeout") {
		s.Timeout = flagTimeout.String()
	}
	if flags.Changed("log-file") {
		s.LogFile = flagLogFile
	}
	if flags.Changed("debug") {
		s.Debug = flagDebug
	}

	return s.resolve()
}

// loadFile merges a TOML config file. A missing file is only an error when
// it was asked for explicitly.
func (s *settings) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	err = toml.Unmarshal(data, s)
	if err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	return nil
}

func (s *settings) loadEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CL_URL"); ok && v != "" {
		s.URL = v
	}
	if v, ok := lookup("CL_TIMEOUT"); ok && v != "" {
		s.Timeout = v
	}
	if v, ok := lookup("CL_LOG_FILE"); ok {
		s.LogFile = v
	}
	if v, ok := lookup("CL_DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for 'CL_DEBUG': %w", err)
		}

		s.Debug = debug
	}

	return nil
}

func (s settings) resolve() (c config, err error) {
	c.url, err = url.Parse(s.URL)
	if err != nil {
		return c, fmt.Errorf("could not parse url: %w", err)
	}
	if c.url.Scheme != "http" && c.url.Scheme != "https" {
		return c, fmt.Errorf("url must be http or https: %q", s.URL)
	}

	c.timeout, err = time.ParseDuration(s.Timeout)
	if err != nil {
		return c, fmt.Errorf("could not parse timeout: %w", err)
	}
	if c.timeout < 0 {
		return c, fmt.Errorf("timeout must not be negative: %s", c.timeout)
	}

	c.logFile = s.LogFile
	c.debug = s.Debug

	return c, nil
}
