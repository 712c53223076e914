package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/distincto/internal/client/services"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/cryptox"
)

// Unlock asks for the journal passphrase and, on success, enables the
// commands that read or write medication notes. The first unlock sets the
// passphrase and asks for it twice.
func (a *App) Unlock(ctx context.Context) error {
	if a.isUnlocked() {
		a.println("Already unlocked.")
		return nil
	}

	initialized, err := a.keys.Initialized(ctx)
	if err != nil {
		return a.fail(ctx, "unlock", err)
	}

	prompt := "Journal passphrase"
	if !initialized {
		a.println("No passphrase yet. Choose one; it protects medication notes and cannot be recovered.")
		prompt = "New journal passphrase"
	}

	passphrase, err := GetPassword(a.out, prompt)
	if err != nil {
		return a.fail(ctx, "unlock", err)
	}
	defer common.WipeByteArray(passphrase)

	if !initialized {
		again, err := GetPassword(a.out, "Repeat passphrase")
		if err != nil {
			return a.fail(ctx, "unlock", err)
		}
		same := bytes.Equal(passphrase, again)
		common.WipeByteArray(again)
		if !same {
			a.println("Passphrases do not match.")
			return errors.New("passphrase mismatch")
		}
	}

	key, err := a.keys.Unlock(ctx, passphrase)
	if err != nil {
		return a.fail(ctx, "unlock", err)
	}

	cipher, err := cryptox.NewCipher(key)
	if err != nil {
		common.WipeByteArray(key)
		return a.fail(ctx, "unlock", err)
	}

	a.masterKey = key
	a.journal = services.NewJournalService(a.repos.Journal, cipher, a.syncer, a.log)
	a.reports = services.NewReportService(a.repos.Reports, a.journal, a.food, a.generator)

	a.println("Journal unlocked.")
	return nil
}

func (a *App) requireUnlocked() error {
	if !a.isUnlocked() {
		a.println(userMessage("", errLocked))
		return errLocked
	}
	return nil
}
