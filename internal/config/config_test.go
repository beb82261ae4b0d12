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
		name              string
		configContent     string
		wantErr           bool
		want              *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `database:
  host: db.internal
  port: 3307
  username: analytics
  database: learn
analytics:
  event_window_size: 200
  snapshot_ttl_minutes: 3
taxonomy:
  cache_directory: custom/taxonomy
hints:
  templates_file: custom/hints.yml
reports:
  output_directory: custom/reports
`,
			want: &Config{
				Database: DatabaseConfig{
					Host:     "db.internal",
					Port:     3307,
					Username: "analytics",
					Database: "learn",
				},
				Taxonomy: TaxonomyConfig{
					CacheDirectory: "custom/taxonomy",
				},
				Analytics: AnalyticsConfig{
					EventWindowSize:          200,
					SnapshotTTLMinutes:       3,
					RecommendationTTLMinutes: 10,
				},
				Hints: HintsConfig{
					TemplatesFile: "custom/hints.yml",
				},
				Reports: ReportsConfig{
					OutputDirectory: "custom/reports",
				},
			},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  host: db.internal
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "values rejected by validation",
			configContent: `analytics:
  event_window_size: 1000
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
			},
		},
		{
			name: "unknown keys fall back to defaults",
			configContent: `wrong_key:
  some_value: test
`,
			want: &Config{
				Database: DatabaseConfig{
					Host:     "127.0.0.1",
					Port:     3306,
					Username: "learn",
					Database: "learn_analytics",
				},
				Taxonomy: TaxonomyConfig{
					CacheDirectory: filepath.Join("taxonomy", "cache"),
				},
				Analytics: AnalyticsConfig{
					EventWindowSize:          500,
					SnapshotTTLMinutes:       5,
					RecommendationTTLMinutes: 10,
				},
				Hints: HintsConfig{
					TemplatesFile: filepath.Join("assets", "hints.yml"),
				},
				Reports: ReportsConfig{
					OutputDirectory: filepath.Join("outputs", "reports"),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))

			got, err := Load(configPath)
			if tt.wantErr {
				require.Error(t, err)
				for _, msg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), msg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(cfg *Config) {},
		},
		{
			name: "window size above cap",
			modify: func(cfg *Config) {
				cfg.Analytics.EventWindowSize = 1000
			},
			wantErr: true,
		},
		{
			name: "zero snapshot TTL",
			modify: func(cfg *Config) {
				cfg.Analytics.SnapshotTTLMinutes = 0
			},
			wantErr: true,
		},
		{
			name: "invalid database port",
			modify: func(cfg *Config) {
				cfg.Database.Port = 70000
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database:  DatabaseConfig{Host: "127.0.0.1", Port: 3306},
				Analytics: AnalyticsConfig{EventWindowSize: 500, SnapshotTTLMinutes: 5, RecommendationTTLMinutes: 10},
			}
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
