package cli

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/syncer"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"github.com/dmitrijs2005/distincto/internal/netx"
)

const probeTimeout = 3 * time.Second

type connectivity interface {
	Online()
	Offline()
	Wake(tag string)
}

// watcher probes url every interval and reports connectivity transitions.
// It also serves as the syncer's Registrar: registered tags are one-shot
// wake-ups, handed to the target through Wake on the first check that finds
// the url reachable.
type watcher struct {
	url      string
	interval time.Duration
	client   *http.Client
	log      logging.Logger
	target   connectivity

	probe func(ctx context.Context) error

	mu     sync.Mutex
	known  bool
	online bool
	tags   map[string]struct{}
}

func newWatcher(url string, interval time.Duration, log logging.Logger) *watcher {
	w := &watcher{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: probeTimeout},
		log:      log.With("component", "watcher"),
		tags:     map[string]struct{}{},
	}
	w.probe = func(ctx context.Context) error {
		return netx.Probe(ctx, w.client, w.url)
	}
	return w
}

// Run checks once right away and then on every tick until ctx is done.
// Without a probe URL it does nothing and the journal stays offline.
func (w *watcher) Run(ctx context.Context) {
	if w.url == "" || w.interval <= 0 {
		w.log.Warn(ctx, "connectivity watcher disabled")
		return
	}

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *watcher) check(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := w.probe(pctx)
	cancel()

	online := err == nil

	w.mu.Lock()
	changed := !w.known || w.online != online
	w.known = true
	w.online = online
	var wake []string
	if online {
		for tag := range w.tags {
			wake = append(wake, tag)
		}
		clear(w.tags)
	}
	w.mu.Unlock()

	if changed {
		if !online {
			w.log.Info(ctx, "offline", "error", err)
			w.target.Offline()
			return
		}
		w.target.Online()
	}
	for _, tag := range wake {
		w.target.Wake(tag)
	}
}

// Register implements syncer.Registrar.
func (w *watcher) Register(ctx context.Context, tag string) error {
	if w.url == "" {
		return syncer.ErrRegistrationUnsupported
	}
	w.mu.Lock()
	w.tags[tag] = struct{}{}
	w.mu.Unlock()
	return nil
}

func (w *watcher) pendingTags() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tags)
}
