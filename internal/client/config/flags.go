package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/distincto/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in doc.go are considered; os.Args is filtered with
// flagx.FilterArgs first so other layers can define their own flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-u", "-t", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.TranscriptionBaseURL, "u", cfg.TranscriptionBaseURL, "transcription service base URL")
	timeout := fs.Int("t", int(cfg.TranscriptionTimeout.Seconds()), "transcription HTTP timeout (in seconds)")
	fs.StringVar(&cfg.BlobBackend, "b", cfg.BlobBackend, "blob backend (sqlite or s3)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.TranscriptionTimeout = time.Duration(*timeout) * time.Second
}

// parseEnv overlays secrets from the environment.
func parseEnv(cfg *Config) {
	flagx.EnvOverride(&cfg.TranscriptionAPIKey, "DISTINCTO_TRANSCRIPTION_API_KEY")
	flagx.EnvOverride(&cfg.S3AccessKey, "DISTINCTO_S3_ACCESS_KEY")
	flagx.EnvOverride(&cfg.S3SecretKey, "DISTINCTO_S3_SECRET_KEY")
}
