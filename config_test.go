package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	c, err := defaultSettings().resolve()
	require.NoError(t, err)

	assert.Equal(t, defaultURL, c.url.String())
	assert.Zero(t, c.timeout)
	assert.False(t, c.debug)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
url = "http://localhost:8080/cities.json"
timeout = "5s"
log_file = "/tmp/citylist.log"
debug = true
`), 0o644))

	s := defaultSettings()
	require.NoError(t, s.loadFile(path, true))

	c, err := s.resolve()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/cities.json", c.url.String())
	assert.Equal(t, 5*time.Second, c.timeout)
	assert.Equal(t, "/tmp/citylist.log", c.logFile)
	assert.True(t, c.debug)
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	s := defaultSettings()
	assert.NoError(t, s.loadFile(path, false))
	assert.Error(t, s.loadFile(path, true))
	assert.Equal(t, defaultURL, s.URL)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`url = `), 0o644))

	s := defaultSettings()
	assert.Error(t, s.loadFile(path, false))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	s := settings{URL: "http://file.example/cities.json", Timeout: "1s", LogFile: "file.log"}

	err := s.loadEnv(env(map[string]string{
		"CL_URL":      "https://env.example/cities.json",
		"CL_TIMEOUT":  "",
		"CL_LOG_FILE": "",
		"CL_DEBUG":    "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/cities.json", s.URL)
	assert.Equal(t, "1s", s.Timeout)
	assert.Empty(t, s.LogFile, "an empty CL_LOG_FILE disables logging")
	assert.True(t, s.Debug)
}

func TestLoadEnvInvalidDebug(t *testing.T) {
	s := defaultSettings()
	assert.Error(t, s.loadEnv(env(map[string]string{"CL_DEBUG": "maybe"})))
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		s    settings
	}{
		{name: "bad url", s: settings{URL: "://nope", Timeout: "0s"}},
		{name: "not http", s: settings{URL: "ftp://example.com/cities.json", Timeout: "0s"}},
		{name: "bad timeout", s: settings{URL: defaultURL, Timeout: "soon"}},
		{name: "negative timeout", s: settings{URL: defaultURL, Timeout: "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.resolve()
			assert.Error(t, err)
		})
	}
}

func TestGetConfigFlagsWin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("CL_URL", "https://env.example/cities.json")

	cmd := rootCmd
	require.NoError(t, cmd.Flags().Set("url", "http://flag.example/cities.json"))
	require.NoError(t, cmd.Flags().Set("timeout", "2s"))
	t.Cleanup(func() {
		flagURL, flagTimeout = defaultURL, 0
		cmd.Flags().Lookup("url").Changed = false
		cmd.Flags().Lookup("timeout").Changed = false
	})

	c, err := getConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "http://flag.example/cities.json", c.url.String())
	assert.Equal(t, 2*time.Second, c.timeout)
	assert.Equal(t, filepath.Join(dir, "citylist", "citylist.log"), c.logFile)
}

// clearEnv unsets keys for the test and restores them afterwards, so values
// godotenv loads do not leak into other tests.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestGetConfigEnvFileLayer(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	clearEnv(t, "CL_URL", "CL_TIMEOUT", "CL_LOG_FILE", "CL_DEBUG")

	appDir := filepath.Join(dir, "citylist")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(`
url = "http://toml.example/cities.json"
timeout = "3s"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "citylist.env"), []byte(
		"CL_URL=http://env-file.example/cities.json\nCL_DEBUG=true\n"), 0o644))

	cmd := rootCmd

	// The env file overrides config.toml
	c, err := getConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://env-file.example/cities.json", c.url.String())
	assert.Equal(t, 3*time.Second, c.timeout)
	assert.True(t, c.debug)

	// A flag overrides the env file
	require.NoError(t, cmd.Flags().Set("url", "http://flag.example/cities.json"))
	t.Cleanup(func() {
		flagURL = defaultURL
		cmd.Flags().Lookup("url").Changed = false
	})

	c, err = getConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example/cities.json", c.url.String())
	assert.True(t, c.debug)
}
