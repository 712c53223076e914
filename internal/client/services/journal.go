package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/journal"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/cryptox"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"github.com/google/uuid"
)

// JournalService manages journal entries. Callers always see plaintext
// medication notes; the repository only ever sees ciphertext.
type JournalService struct {
	repo   journal.Repository
	crypt  cryptox.Encrypter
	notify ChangeNotifier
	log    logging.Logger
	now    func() time.Time
}

func NewJournalService(repo journal.Repository, crypt cryptox.Encrypter, notify ChangeNotifier, log logging.Logger) *JournalService {
	return &JournalService{
		repo:   repo,
		crypt:  crypt,
		notify: notifierOrNoop(notify),
		log:    log.With("component", "journal"),
		now:    time.Now,
	}
}

// Save creates the entry when e.ID is empty and fully replaces the stored
// entry otherwise. An edit keeps the original timestamp. The saved entry is
// always unsynced. Save returns the stored entry with plaintext notes.
func (s *JournalService) Save(ctx context.Context, e models.JournalEntry) (*models.JournalEntry, error) {
	if err := common.CheckChildName(e.ChildName); err != nil {
		return nil, err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
		e.Timestamp = s.now().UnixMilli()
	} else {
		existing, err := s.repo.Get(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		switch {
		case existing != nil:
			e.Timestamp = existing.Timestamp
		case e.Timestamp == 0:
			e.Timestamp = s.now().UnixMilli()
		}
	}
	e.Synced = false

	stored := e
	notes, err := s.crypt.Encrypt(e.MedicationNotes)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt medication notes: %w", err)
	}
	stored.MedicationNotes = notes

	if err := s.repo.Put(ctx, &stored); err != nil {
		return nil, err
	}

	s.notify.Changed(models.ChangeJournal)
	return &e, nil
}

// Get returns the decrypted entry, or nil when it does not exist.
func (s *JournalService) Get(ctx context.Context, id string) (*models.JournalEntry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	if e.MedicationNotes, err = s.crypt.Decrypt(e.MedicationNotes); err != nil {
		return nil, fmt.Errorf("failed to decrypt medication notes: %w", err)
	}
	return e, nil
}

// List returns the entries of childName (all children when empty), newest
// first. Entries whose notes cannot be decrypted are returned with the
// medication notes blanked.
func (s *JournalService) List(ctx context.Context, childName string) ([]*models.JournalEntry, error) {
	entries, err := s.repo.GetByChild(ctx, childName)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		plain, err := s.crypt.Decrypt(e.MedicationNotes)
		if err != nil {
			s.log.Warn(ctx, "cannot decrypt medication notes", "id", e.ID, "error", err)
			plain = ""
		}
		e.MedicationNotes = plain
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

func (s *JournalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.Changed(models.ChangeJournal)
	return nil
}
