// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//  4. Environment variables, for secrets only (see parseEnv).
//
// Supported flags
//
//	-d string   data directory holding records.db, blobs.db and state.db
//	-i int      online status check interval (seconds)
//	-u string   transcription service base URL
//	-t int      transcription HTTP timeout (seconds)
//	-b string   blob backend: sqlite or s3
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "2s"
// or integer nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/distincto",
//	  "online_check_interval": "5s",
//	  "probe_url": "https://api.assemblyai.com/v2",
//	  "transcription_base_url": "https://api.assemblyai.com/v2",
//	  "transcription_timeout": "30s",
//	  "transcription_poll_interval": "2s",
//	  "transcription_max_attempts": 30,
//	  "blob_backend": "s3",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_bucket": "distincto",
//	  "s3_prefix": "blobs",
//	  "log_file": "distincto.log",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	DISTINCTO_TRANSCRIPTION_API_KEY   transcription service key
//	DISTINCTO_S3_ACCESS_KEY           S3 access key id
//	DISTINCTO_S3_SECRET_KEY           S3 secret key
//
// Secrets may also be placed in the JSON file; they are never accepted as
// flags.
package config
