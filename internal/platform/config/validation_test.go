package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "quarter-service", Version: "1.0.0", Environment: "local"},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1 << 20,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Quarter: QuarterConfig{
			DefaultZone:      "UTC",
			Engine:           "builtin",
			MaxBatchSize:     100,
			BatchConcurrency: 8,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},

		{name: "missing name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app.name is required"},
		{name: "missing version", mutate: func(c *Config) { c.App.Version = "" }, wantErr: "app.version is required"},
		{name: "missing environment", mutate: func(c *Config) { c.App.Environment = "" }, wantErr: "app.environment is required"},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.App.Environment = "staging" },
			wantErr: "app.environment must be one of: local dev qa prod test",
		},
		{name: "test environment", mutate: func(c *Config) { c.App.Environment = "test" }},

		{name: "lowest port", mutate: func(c *Config) { c.Server.Port = 1 }},
		{name: "highest port", mutate: func(c *Config) { c.Server.Port = 65535 }},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port is required"},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 65536 }, wantErr: "server.port must be at most 65535"},
		{name: "missing host", mutate: func(c *Config) { c.Server.Host = "" }, wantErr: "server.host is required"},
		{
			name:    "sub-second read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 500 * time.Millisecond },
			wantErr: "server.read_timeout must be at least 1s",
		},
		{
			name:    "missing max request size",
			mutate:  func(c *Config) { c.Server.MaxRequestSize = 0 },
			wantErr: "server.max_request_size is required",
		},

		{name: "trace level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "pretty format", mutate: func(c *Config) { c.Log.Format = "pretty" }},
		{name: "upper-case level", mutate: func(c *Config) { c.Log.Level = "DEBUG" }, wantErr: "log.level must be one of"},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format must be one of: json text pretty"},
		{
			name:    "file without path",
			mutate:  func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} },
			wantErr: "log.file.path is required when Enabled true",
		},
		{
			name: "file too large",
			mutate: func(c *Config) {
				c.Log.File = LogFileConfig{Enabled: true, Path: "/var/log/quarters.log", MaxSizeMB: 1025}
			},
			wantErr: "log.file.max_size must be at most 1024",
		},
		{
			name: "file rotation",
			mutate: func(c *Config) {
				c.Log.File = LogFileConfig{Enabled: true, Path: "/var/log/quarters.log", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28}
			},
		},

		{
			name:    "telemetry without endpoint",
			mutate:  func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quarter-service"} },
			wantErr: "telemetry.endpoint is required",
		},
		{
			name: "telemetry endpoint not a URL",
			mutate: func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "collector", ServiceName: "quarter-service"}
			},
			wantErr: "telemetry.endpoint must be a valid URL",
		},
		{
			name:    "telemetry without service name",
			mutate:  func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "http://localhost:4317"} },
			wantErr: "telemetry.service_name is required",
		},
		{
			name: "telemetry enabled",
			mutate: func(c *Config) {
				c.Telemetry = TelemetryConfig{
					Enabled: true, Endpoint: "http://localhost:4317", ServiceName: "quarter-service", SamplingRate: 0.5,
				}
			},
		},
		{name: "full sampling", mutate: func(c *Config) { c.Telemetry.SamplingRate = 1 }},
		{
			name:    "negative sampling",
			mutate:  func(c *Config) { c.Telemetry.SamplingRate = -0.1 },
			wantErr: "telemetry.sampling_rate must be at least 0",
		},
		{
			name:    "sampling above one",
			mutate:  func(c *Config) { c.Telemetry.SamplingRate = 1.1 },
			wantErr: "telemetry.sampling_rate must be at most 1",
		},

		{
			name:    "auth without subject header",
			mutate:  func(c *Config) { c.Auth = AuthConfig{Enabled: true, ReadScope: "quarters:read"} },
			wantErr: "auth.subject_header is required",
		},
		{
			name:    "auth without read scope",
			mutate:  func(c *Config) { c.Auth = AuthConfig{Enabled: true, SubjectHeader: "X-User-ID"} },
			wantErr: "auth.read_scope is required",
		},
		{
			name:   "auth enabled",
			mutate: func(c *Config) { c.Auth = AuthConfig{Enabled: true, SubjectHeader: "X-User-ID", ReadScope: "quarters:read"} },
		},

		{name: "named zone", mutate: func(c *Config) { c.Quarter.DefaultZone = "America/New_York" }},
		{name: "half-hour zone", mutate: func(c *Config) { c.Quarter.DefaultZone = "Asia/Kolkata" }},
		{name: "missing zone", mutate: func(c *Config) { c.Quarter.DefaultZone = "" }, wantErr: "quarter.default_zone is required"},
		{
			name:    "unknown zone",
			mutate:  func(c *Config) { c.Quarter.DefaultZone = "Mars/Olympus_Mons" },
			wantErr: "quarter.default_zone must be an IANA time zone name",
		},
		{name: "now engine", mutate: func(c *Config) { c.Quarter.Engine = "now" }},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Quarter.Engine = "carbon" },
			wantErr: "quarter.engine must be one of: builtin now",
		},
		{
			name:   "batch limits at bounds",
			mutate: func(c *Config) { c.Quarter.MaxBatchSize, c.Quarter.BatchConcurrency = 1000, 64 },
		},
		{
			name:    "batch too large",
			mutate:  func(c *Config) { c.Quarter.MaxBatchSize = 1001 },
			wantErr: "quarter.max_batch_size must be at most 1000",
		},
		{
			name:    "missing batch size",
			mutate:  func(c *Config) { c.Quarter.MaxBatchSize = 0 },
			wantErr: "quarter.max_batch_size is required",
		},
		{
			name:    "too many batch workers",
			mutate:  func(c *Config) { c.Quarter.BatchConcurrency = 65 },
			wantErr: "quarter.batch_concurrency must be at most 64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsEveryField(t *testing.T) {
	cfg := &Config{
		App:    AppConfig{Environment: "staging"},
		Server: ServerConfig{Port: -1},
	}

	err := cfg.Validate()
	require.Error(t, err)

	for _, field := range []string{"app.name", "app.version", "app.environment", "server.port", "quarter"} {
		assert.Contains(t, err.Error(), field)
	}

	assert.Contains(t, err.Error(), "config validation failed:\n  ")
}

func TestFormatFieldPath(t *testing.T) {
	tests := map[string]string{
		"Config.server.port":             "server.port",
		"Config.quarter.default_zone":    "quarter.default_zone",
		"Config.log.file.max_size":       "log.file.max_size",
		"Config.telemetry.sampling_rate": "telemetry.sampling_rate",
		"Config":                         "Config",
	}

	for namespace, want := range tests {
		assert.Equal(t, want, formatFieldPath(namespace), namespace)
	}
}
