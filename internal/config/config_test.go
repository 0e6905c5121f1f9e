package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"variant": "scholarship",
		"variants_dir": "variants",
		"chrome_path": "/usr/bin/chromium",
		"export_timeout_seconds": 30,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "scholarship", cfg.Variant)
	assert.Equal(t, "variants", cfg.VariantsDir)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 30*time.Second, cfg.ExportTimeout())
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cv.tex")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Variant: "work", Port: 8080, Template: file, VariantsDir: dir}, ""},
		{"negative timeout", Config{ExportTimeoutSeconds: -1}, "export_timeout_seconds"},
		{"negative idle", Config{SessionIdleMinutes: -1}, "session_idle_minutes"},
		{"negative sessions", Config{MaxSessions: -1}, "max_sessions"},
		{"port out of range", Config{Port: 70000}, "port"},
		{"missing template", Config{Template: filepath.Join(dir, "nope.tex")}, "template file not found"},
		{"missing variants dir", Config{VariantsDir: filepath.Join(dir, "nope")}, "variants directory not found"},
		{"variants dir is a file", Config{VariantsDir: file}, "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Variant: "scholarship",
		Port:    9000,
	}

	merged := partial.MergeWithDefaults(Defaults())

	assert.Equal(t, "scholarship", merged.Variant)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultOutputDir, merged.OutputDir)
	assert.Equal(t, DefaultExportTimeoutSeconds, merged.ExportTimeoutSeconds)
	assert.Equal(t, DefaultSessionIdleMinutes, merged.SessionIdleMinutes)
	assert.Equal(t, 30*time.Minute, merged.SessionIdleTimeout())
	assert.False(t, merged.Verbose)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Variant: "work", Verbose: true}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "work", merged.Variant)
	assert.True(t, merged.Verbose)
	assert.Zero(t, merged.Port)
}

func TestResolve_Precedence(t *testing.T) {
	t.Setenv("CV_VARIANT", "scholarship")
	t.Setenv("PORT", "7000")
	t.Setenv("CHROME_PATH", "/opt/chrome")
	t.Setenv("CV_EXPORT_TIMEOUT", "not-a-number")
	t.Setenv("CV_VARIANTS_DIR", "")
	t.Setenv("CV_TEMPLATE", "")
	t.Setenv("CV_OUTPUT_DIR", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "")
	t.Setenv("CV_MAX_SESSIONS", "")

	cfg := Resolve(nil)
	assert.Equal(t, "scholarship", cfg.Variant)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "/opt/chrome", cfg.ChromePath)
	assert.Equal(t, DefaultExportTimeoutSeconds, cfg.ExportTimeoutSeconds)

	file := &Config{Port: 9999}
	cfg = Resolve(file)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "scholarship", cfg.Variant)
}
