package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/distincto/internal/flagx"
	"github.com/dmitrijs2005/distincto/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-value fields that are absent from the file leave Config untouched.
type JsonConfig struct {
	DataDir                   string          `json:"data_dir"`
	OnlineCheckInterval       *timex.Duration `json:"online_check_interval"`
	ProbeURL                  string          `json:"probe_url"`
	TranscriptionBaseURL      string          `json:"transcription_base_url"`
	TranscriptionAPIKey       string          `json:"transcription_api_key"`
	TranscriptionTimeout      *timex.Duration `json:"transcription_timeout"`
	TranscriptionPollInterval *timex.Duration `json:"transcription_poll_interval"`
	TranscriptionMaxAttempts  int             `json:"transcription_max_attempts"`
	BlobBackend               string          `json:"blob_backend"`
	S3Region                  string          `json:"s3_region"`
	S3BaseEndpoint            string          `json:"s3_base_endpoint"`
	S3Bucket                  string          `json:"s3_bucket"`
	S3Prefix                  string          `json:"s3_prefix"`
	S3AccessKey               string          `json:"s3_access_key"`
	S3SecretKey               string          `json:"s3_secret_key"`
	LogFile                   string          `json:"log_file"`
	LogLevel                  string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read or decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.ProbeURL, jc.ProbeURL)
	setString(&cfg.TranscriptionBaseURL, jc.TranscriptionBaseURL)
	setString(&cfg.TranscriptionAPIKey, jc.TranscriptionAPIKey)
	setString(&cfg.BlobBackend, jc.BlobBackend)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.TranscriptionTimeout != nil {
		cfg.TranscriptionTimeout = jc.TranscriptionTimeout.Duration
	}
	if jc.TranscriptionPollInterval != nil {
		cfg.TranscriptionPollInterval = jc.TranscriptionPollInterval.Duration
	}
	if jc.TranscriptionMaxAttempts > 0 {
		cfg.TranscriptionMaxAttempts = jc.TranscriptionMaxAttempts
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
