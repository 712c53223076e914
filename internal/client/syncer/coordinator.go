package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/food"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/journal"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"golang.org/x/sync/errgroup"
)

type State int

const (
	StateOffline State = iota
	StateOnlineIdle
	StateOnlineSyncing
)

func (s State) String() string {
	switch s {
	case StateOffline:
		return "offline"
	case StateOnlineIdle:
		return "online"
	case StateOnlineSyncing:
		return "syncing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Outcome int

const (
	// NotAttempted means the coordinator was offline. It is not a failure.
	NotAttempted Outcome = iota
	Completed
	// Partial means some records stay unsynced; Err or the log says why.
	Partial
)

// Result describes one drain.
type Result struct {
	Outcome Outcome
	Synced  int
	Failed  int
	Err     error
}

type eventKind int

const (
	evOnline eventKind = iota
	evOffline
	evChanged
	evWake
)

type event struct {
	kind   eventKind
	change models.ChangeKind
	tag    string
}

const inboxSize = 64

var errRecordChanged = errors.New("record changed during sync")

type Options struct {
	Journal journal.Repository
	Food    food.Repository
	Status  StatusStore

	// Remote defaults to NoopRemote.
	Remote Remote
	// Registrar may be nil: deferred wake-ups are then unavailable.
	Registrar Registrar

	Log logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Coordinator owns SyncStatus and drains unsynced records while online.
type Coordinator struct {
	journal   journal.Repository
	food      food.Repository
	store     StatusStore
	remote    Remote
	registrar Registrar
	log       logging.Logger
	now       func() time.Time

	inbox chan event
	done  chan struct{}

	// drainMu serializes drains started by Run and by direct SyncData calls.
	drainMu sync.Mutex

	mu     sync.Mutex
	state  State
	status models.SyncStatus
}

// New loads the persisted status and returns an offline coordinator. The
// coordinator goes online only when told so.
func New(ctx context.Context, o Options) *Coordinator {
	c := &Coordinator{
		journal:   o.Journal,
		food:      o.Food,
		store:     o.Status,
		remote:    o.Remote,
		registrar: o.Registrar,
		log:       o.Log.With("component", "syncer"),
		now:       o.Now,
		inbox:     make(chan event, inboxSize),
		done:      make(chan struct{}),
		state:     StateOffline,
	}
	if c.remote == nil {
		c.remote = NoopRemote{}
	}
	if c.now == nil {
		c.now = time.Now
	}

	st, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "sync status not loaded", "error", err)
	}
	st.IsOnline = false
	c.status = st

	return c
}

// Run applies inbox events until ctx is done.
func (c *Coordinator) Run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.inbox:
			c.handle(ctx, ev)
		}
	}
}

// Done is closed once Run has returned. No drain is running after that.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

func (c *Coordinator) Online()  { c.send(event{kind: evOnline}) }
func (c *Coordinator) Offline() { c.send(event{kind: evOffline}) }

// Wake delivers a wake-up registered through RegisterForSync. It starts a
// drain; offline that drain is NotAttempted.
func (c *Coordinator) Wake(tag string) { c.send(event{kind: evWake, tag: tag}) }

// Changed records that a journal entry or food item was written. It never
// blocks; when the inbox is full the event is dropped, since a queued event
// already leads to a drain or a pending recount.
func (c *Coordinator) Changed(kind models.ChangeKind) {
	select {
	case c.inbox <- event{kind: evChanged, change: kind}:
	default:
	}
}

func (c *Coordinator) send(ev event) {
	select {
	case c.inbox <- ev:
	case <-c.done:
	}
}

func (c *Coordinator) handle(ctx context.Context, ev event) {
	switch ev.kind {
	case evOnline:
		if c.setOnline(ctx, true) {
			c.log.Info(ctx, "connectivity restored")
			c.SyncData(ctx)
		}
	case evOffline:
		if c.setOnline(ctx, false) {
			c.log.Info(ctx, "connectivity lost")
		}
	case evChanged:
		if c.State() == StateOffline {
			c.recountPending(ctx)
			c.RegisterForSync(ctx)
			return
		}
		c.SyncData(ctx)
	case evWake:
		c.log.Info(ctx, "background sync wake-up", "tag", ev.tag)
		c.SyncData(ctx)
	}
}

// setOnline applies a connectivity signal and reports whether it changed
// anything.
func (c *Coordinator) setOnline(ctx context.Context, online bool) bool {
	c.mu.Lock()
	wasOnline := c.state != StateOffline
	if wasOnline == online {
		c.mu.Unlock()
		return false
	}
	if online {
		c.state = StateOnlineIdle
	} else {
		c.state = StateOffline
	}
	c.status.IsOnline = online
	st := c.status
	c.mu.Unlock()

	c.persist(ctx, st)
	return true
}

// SyncData drains unsynced records if online. Offline it returns
// NotAttempted and touches nothing.
func (c *Coordinator) SyncData(ctx context.Context) Result {
	c.drainMu.Lock()
	defer c.drainMu.Unlock()

	c.mu.Lock()
	if c.state == StateOffline {
		c.mu.Unlock()
		return Result{Outcome: NotAttempted}
	}
	c.state = StateOnlineSyncing
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		// an Offline signal during the drain wins
		if c.state == StateOnlineSyncing {
			c.state = StateOnlineIdle
		}
		c.mu.Unlock()
	}()

	pending, err := c.Pending(ctx)
	if err != nil {
		c.log.Error(ctx, "cannot gather unsynced records", "error", err)
		return Result{Outcome: Partial, Err: err}
	}

	res := Result{Outcome: Completed}
	for _, rec := range pending {
		if err := c.reconcile(ctx, rec); err != nil {
			c.log.Warn(ctx, "record not synced", "id", rec.ID(), "error", err)
			res.Failed++
			res.Err = err
			continue
		}
		res.Synced++
	}

	c.mu.Lock()
	if res.Failed == 0 {
		c.status.LastSync = c.now().UnixMilli()
		c.status.PendingSync = 0
	} else {
		res.Outcome = Partial
		c.status.PendingSync = res.Failed
	}
	st := c.status
	c.mu.Unlock()

	c.persist(ctx, st)
	c.log.Info(ctx, "drain finished", "synced", res.Synced, "failed", res.Failed)
	return res
}

// reconcile acknowledges rec and sets its synced flag in one conditional
// write. A record edited or deleted since it was gathered is left for the
// next drain.
func (c *Coordinator) reconcile(ctx context.Context, rec models.PendingRecord) error {
	if err := c.remote.Acknowledge(ctx, rec); err != nil {
		return err
	}

	var (
		marked bool
		err    error
	)
	switch {
	case rec.Journal != nil:
		marked, err = c.journal.MarkSynced(ctx, rec.Journal)
	case rec.Food != nil:
		marked, err = c.food.MarkSynced(ctx, rec.Food)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if !marked {
		return errRecordChanged
	}
	return nil
}

// Pending returns every unsynced journal entry and food item, journal
// entries first.
func (c *Coordinator) Pending(ctx context.Context) ([]models.PendingRecord, error) {
	var (
		entries []*models.JournalEntry
		items   []*models.FoodItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = c.journal.GetUnsynced(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = c.food.GetUnsynced(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.PendingRecord, 0, len(entries)+len(items))
	for _, e := range entries {
		out = append(out, models.PendingRecord{Journal: e})
	}
	for _, f := range items {
		out = append(out, models.PendingRecord{Food: f})
	}
	return out, nil
}

func (c *Coordinator) recountPending(ctx context.Context) {
	pending, err := c.Pending(ctx)
	if err != nil {
		c.log.Warn(ctx, "cannot count unsynced records", "error", err)
		return
	}

	c.mu.Lock()
	c.status.PendingSync = len(pending)
	st := c.status
	c.mu.Unlock()

	c.persist(ctx, st)
}

// RegisterForSync asks the Registrar for a deferred wake-up. Missing
// support only means sync waits for the next reconnect, so failures are
// logged and reported as false.
func (c *Coordinator) RegisterForSync(ctx context.Context) bool {
	if c.registrar == nil {
		c.log.Info(ctx, "background sync unavailable")
		return false
	}
	if err := c.registrar.Register(ctx, common.SyncTag); err != nil {
		c.log.Warn(ctx, "background sync registration failed", "error", err)
		return false
	}
	return true
}

func (c *Coordinator) Status() models.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) persist(ctx context.Context, st models.SyncStatus) {
	if err := c.store.Save(ctx, st); err != nil {
		c.log.Error(ctx, "sync status not saved", "error", err)
	}
}
