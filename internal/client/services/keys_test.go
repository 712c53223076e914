package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/distincto/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyService_FirstUnlockSetsUp(t *testing.T) {
	e := newEnv(t)
	ks := NewKeyService(e.meta)
	ctx := context.Background()

	ok, err := ks.Initialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	key, err := ks.Unlock(ctx, []byte("correct horse"))
	require.NoError(t, err)
	assert.Len(t, key, 32)

	ok, err = ks.Initialized(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	salt, err := e.meta.Get(ctx, metadata.KeyEncryptionSalt)
	require.NoError(t, err)
	assert.Len(t, salt, 16)
}

func TestKeyService_UnlockAgain(t *testing.T) {
	e := newEnv(t)
	ks := NewKeyService(e.meta)
	ctx := context.Background()

	first, err := ks.Unlock(ctx, []byte("correct horse"))
	require.NoError(t, err)

	second, err := ks.Unlock(ctx, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = ks.Unlock(ctx, []byte("battery staple"))
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestKeyService_Forget(t *testing.T) {
	e := newEnv(t)
	ks := NewKeyService(e.meta)
	ctx := context.Background()

	first, err := ks.Unlock(ctx, []byte("one"))
	require.NoError(t, err)
	require.NoError(t, ks.Forget(ctx))

	ok, err := ks.Initialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	second, err := ks.Unlock(ctx, []byte("one"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "new salt yields a new key")
}
