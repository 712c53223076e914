package cli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/syncer"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signals struct {
	mu     sync.Mutex
	events []string
}

func (s *signals) Online()         { s.add("online") }
func (s *signals) Offline()        { s.add("offline") }
func (s *signals) Wake(tag string) { s.add("wake:" + tag) }

func (s *signals) add(e string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *signals) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func TestWatcher_ReportsTransitionsOnly(t *testing.T) {
	w := newWatcher("http://probe.invalid", time.Second, logging.Discard())
	sig := &signals{}
	w.target = sig

	var fail bool
	w.probe = func(ctx context.Context) error {
		if fail {
			return errors.New("no route")
		}
		return nil
	}

	ctx := context.Background()
	w.check(ctx)
	w.check(ctx)
	fail = true
	w.check(ctx)
	w.check(ctx)
	fail = false
	w.check(ctx)

	assert.Equal(t, []string{"online", "offline", "online"}, sig.Events())
}

func TestWatcher_FirstCheckOffline(t *testing.T) {
	w := newWatcher("http://probe.invalid", time.Second, logging.Discard())
	sig := &signals{}
	w.target = sig
	w.probe = func(ctx context.Context) error { return errors.New("down") }

	w.check(context.Background())
	assert.Equal(t, []string{"offline"}, sig.Events())
}

func TestWatcher_RegisteredTagsAreOneShot(t *testing.T) {
	w := newWatcher("http://probe.invalid", time.Second, logging.Discard())
	sig := &signals{}
	w.target = sig

	down := true
	w.probe = func(ctx context.Context) error {
		if down {
			return errors.New("down")
		}
		return nil
	}
	ctx := context.Background()

	w.check(ctx)
	require.NoError(t, w.Register(ctx, common.SyncTag))
	require.NoError(t, w.Register(ctx, common.SyncTag))
	assert.Equal(t, 1, w.pendingTags())

	w.check(ctx)
	assert.Equal(t, 1, w.pendingTags(), "kept while offline")

	down = false
	w.check(ctx)
	assert.Zero(t, w.pendingTags())
	w.check(ctx)

	assert.Equal(t, []string{"offline", "online", "wake:" + common.SyncTag}, sig.Events())
}

func TestWatcher_TagRegisteredWhileOnlineWakesOnNextCheck(t *testing.T) {
	w := newWatcher("http://probe.invalid", time.Second, logging.Discard())
	sig := &signals{}
	w.target = sig
	w.probe = func(ctx context.Context) error { return nil }
	ctx := context.Background()

	w.check(ctx)
	require.NoError(t, w.Register(ctx, common.SyncTag))
	w.check(ctx)

	assert.Equal(t, []string{"online", "wake:" + common.SyncTag}, sig.Events())
	assert.Zero(t, w.pendingTags())
}

func TestWatcher_WithoutURL(t *testing.T) {
	w := newWatcher("", time.Second, logging.Discard())
	w.target = &signals{}

	require.ErrorIs(t, w.Register(context.Background(), common.SyncTag), syncer.ErrRegistrationUnsupported)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled watcher must return at once")
	}
}

func TestWatcher_RunProbesHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	w := newWatcher(ts.URL, 20*time.Millisecond, logging.Discard())
	sig := &signals{}
	w.target = sig

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.Eventually(t, func() bool {
		ev := sig.Events()
		return len(ev) == 1 && ev[0] == "online"
	}, 2*time.Second, 10*time.Millisecond)
}
