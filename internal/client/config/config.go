package config

import "time"

// Blob backends.
const (
	BlobBackendSQLite = "sqlite"
	BlobBackendS3     = "s3"
)

// Config holds runtime settings for the journal CLI.
//
// Durations are time.Duration values; the JSON and flag layers convert
// from their own units.
type Config struct {
	DataDir string

	OnlineCheckInterval time.Duration
	ProbeURL            string

	TranscriptionBaseURL      string
	TranscriptionAPIKey       string
	TranscriptionTimeout      time.Duration
	TranscriptionPollInterval time.Duration
	TranscriptionMaxAttempts  int

	BlobBackend    string
	S3Region       string
	S3BaseEndpoint string
	S3Bucket       string
	S3Prefix       string
	S3AccessKey    string
	S3SecretKey    string

	LogFile  string
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "distincto-data"
	c.OnlineCheckInterval = 5 * time.Second
	c.ProbeURL = "https://api.assemblyai.com/v2"
	c.TranscriptionBaseURL = "https://api.assemblyai.com/v2"
	c.TranscriptionTimeout = 30 * time.Second
	c.TranscriptionPollInterval = 2 * time.Second
	c.TranscriptionMaxAttempts = 30
	c.BlobBackend = BlobBackendSQLite
	c.S3Region = "us-east-1"
	c.S3Bucket = "distincto"
	c.LogFile = "distincto.log"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags (if present) and finally secrets from
// the environment. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}
