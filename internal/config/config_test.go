package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config",
			yaml: `
workspace:
  config_dir: /srv/datafeeds/mappings
  feeds_dir: /srv/datafeeds/incoming
export:
  output_file: out/products.csv
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "/srv/datafeeds/mappings", cfg.Workspace.ConfigDir)
				assert.Equal(t, "/srv/datafeeds/incoming", cfg.Workspace.FeedsDir)
				assert.Equal(t, "out/products.csv", cfg.Export.OutputFile)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
logging:
  level: debug
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "mappings", cfg.Workspace.ConfigDir)
				assert.Equal(t, "feeds", cfg.Workspace.FeedsDir)
				assert.Equal(t, "shopify_products.csv", cfg.Export.OutputFile)
				assert.Equal(t, "export_data_for_quoting.csv", cfg.Quotes.OutputFile)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
workspace:
  feeds_dir: ${FEEDS_DIR}
`,
			envVars: map[string]string{"FEEDS_DIR": "/mnt/feeds"},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "/mnt/feeds", cfg.Workspace.FeedsDir)
			},
		},
		{
			name: "invalid logging level",
			yaml: `
logging:
  level: verbose
`,
			wantErr: "logging.level",
		},
		{
			name: "invalid logging format",
			yaml: `
logging:
  format: xml
`,
			wantErr: "logging.format",
		},
		{
			name: "export and quote outputs collide",
			yaml: `
export:
  output_file: data.csv
quotes:
  output_file: data.csv
`,
			wantErr: "must differ",
		},
		{
			name:    "malformed yaml",
			yaml:    "workspace: [",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "mappings", cfg.Workspace.ConfigDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}
