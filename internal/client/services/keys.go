package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/cryptox"
)

var ErrWrongPassphrase = errors.New("wrong passphrase")

// KeyService turns the journal passphrase into the key that encrypts
// medication notes. The salt and a verifier of the derived key are kept in
// the state store; the passphrase and the key never are.
type KeyService struct {
	meta metadata.Repository
}

func NewKeyService(meta metadata.Repository) *KeyService {
	return &KeyService{meta: meta}
}

// Initialized reports whether a passphrase has been set up.
func (k *KeyService) Initialized(ctx context.Context) (bool, error) {
	salt, err := k.meta.Get(ctx, metadata.KeyEncryptionSalt)
	if err != nil {
		return false, fmt.Errorf("failed to read salt: %w", err)
	}
	return salt != nil, nil
}

// Unlock derives the master key from passphrase. On first use it creates and
// stores a fresh salt and verifier; afterwards it checks the derived key
// against the stored verifier and returns ErrWrongPassphrase on mismatch.
func (k *KeyService) Unlock(ctx context.Context, passphrase []byte) ([]byte, error) {
	salt, err := k.meta.Get(ctx, metadata.KeyEncryptionSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}

	if salt == nil {
		return k.setup(ctx, passphrase)
	}

	verifier, err := k.meta.Get(ctx, metadata.KeyKeyVerifier)
	if err != nil {
		return nil, fmt.Errorf("failed to read verifier: %w", err)
	}

	key := cryptox.DeriveMasterKey(passphrase, salt)
	if subtle.ConstantTimeCompare(verifier, cryptox.MakeVerifier(key)) == 0 {
		common.WipeByteArray(key)
		return nil, ErrWrongPassphrase
	}
	return key, nil
}

func (k *KeyService) setup(ctx context.Context, passphrase []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveMasterKey(passphrase, salt)

	// verifier first: a salt without a verifier would lock the journal
	if err := k.meta.Set(ctx, metadata.KeyKeyVerifier, cryptox.MakeVerifier(key)); err != nil {
		return nil, fmt.Errorf("failed to save verifier: %w", err)
	}
	if err := k.meta.Set(ctx, metadata.KeyEncryptionSalt, salt); err != nil {
		return nil, fmt.Errorf("failed to save salt: %w", err)
	}
	return key, nil
}

// Forget removes the salt and verifier. Medication notes encrypted under the
// old key can no longer be read.
func (k *KeyService) Forget(ctx context.Context) error {
	if err := k.meta.Delete(ctx, metadata.KeyEncryptionSalt); err != nil {
		return err
	}
	return k.meta.Delete(ctx, metadata.KeyKeyVerifier)
}
