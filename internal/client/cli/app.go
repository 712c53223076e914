package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/distincto/internal/client/config"
	"github.com/dmitrijs2005/distincto/internal/client/reportgen"
	"github.com/dmitrijs2005/distincto/internal/client/services"
	"github.com/dmitrijs2005/distincto/internal/client/storage"
	"github.com/dmitrijs2005/distincto/internal/client/syncer"
	"github.com/dmitrijs2005/distincto/internal/client/transcription"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/filex"
	"github.com/dmitrijs2005/distincto/internal/logging"
)

// maxAttachment caps images and recordings read from disk.
const maxAttachment = 25 << 20

type App struct {
	config *config.Config
	log    logging.Logger

	repos       *storage.Repositories
	keys        *services.KeyService
	food        *services.FoodService
	generator   reportgen.Generator
	syncer      *syncer.Coordinator
	watcher     *watcher
	transcriber transcription.Transcriber

	// set by Unlock
	journal   *services.JournalService
	reports   *services.ReportService
	masterKey []byte

	lastChild string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp prepares the data directory, the rotating log file and every
// component. The stores are opened here so that a broken data directory is
// reported before the REPL starts.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	c.DataDir = dir

	logFile := c.LogFile
	if !filepath.IsAbs(logFile) {
		logFile = filepath.Join(dir, logFile)
	}
	log := logging.NewFileLogger(logFile, c.LogLevel)

	a, err := newApp(ctx, c, log)
	if err != nil {
		return nil, err
	}
	if err := a.repos.Initialize(ctx); err != nil {
		_ = a.repos.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.NewRepositories(ctx, c, log)
	if err != nil {
		return nil, err
	}

	w := newWatcher(c.ProbeURL, c.OnlineCheckInterval, log)
	coord := syncer.New(ctx, syncer.Options{
		Journal:   repos.Journal,
		Food:      repos.Food,
		Status:    repos.SyncStatus,
		Registrar: w,
		Log:       log,
	})
	w.target = coord

	tc := transcription.NewClient(transcription.Options{
		BaseURL:      c.TranscriptionBaseURL,
		APIKey:       c.TranscriptionAPIKey,
		Timeout:      c.TranscriptionTimeout,
		PollInterval: c.TranscriptionPollInterval,
		MaxAttempts:  c.TranscriptionMaxAttempts,
	}, repos.Blobs, log)

	return &App{
		config:      c,
		log:         log,
		repos:       repos,
		keys:        services.NewKeyService(repos.Metadata),
		food:        services.NewFoodService(repos.Food, repos.Blobs, coord, log),
		generator:   reportgen.NewCannedGenerator(),
		syncer:      coord,
		watcher:     w,
		transcriber: tc,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run starts the background workers, asks for the passphrase and serves the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		// the stores stay open until an in-flight drain has finished
		<-a.syncer.Done()
		a.close()
	}()

	go a.syncer.Run(ctx)
	go a.watcher.Run(ctx)

	a.println("Distincto journal (type 'help' for commands)")
	_ = a.Unlock(ctx)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close() {
	common.WipeByteArray(a.masterKey)
	if err := a.repos.Close(); err != nil {
		a.log.Error(context.Background(), "closing stores", "error", err)
	}
}

func (a *App) isUnlocked() bool {
	return a.masterKey != nil
}

// status is shown in the prompt.
func (a *App) status() string {
	st := a.syncer.Status()
	s := a.syncer.State().String()
	if st.PendingSync > 0 {
		s = fmt.Sprintf("%s, %d pending", s, st.PendingSync)
	}
	if !a.isUnlocked() {
		s = "locked, " + s
	}
	return "(" + s + ")"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail reports err to the user and to the log, and returns it.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.log.Error(ctx, what, "error", err)
	a.println(userMessage(what, err))
	return err
}
