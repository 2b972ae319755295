package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/pkg/errors"
)

func newAuthFixture(t *testing.T) *AuthUseCase {
	t.Helper()
	return NewAuthUseCase(newTestStore(t), "test-secret", 3600)
}

func TestSetupThenLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuthFixture(t)

	needs, err := uc.NeedsSetup(ctx)
	require.NoError(t, err)
	assert.True(t, needs)

	result, err := uc.Setup(ctx, "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, result.RecoveryKey)

	needs, err = uc.NeedsSetup(ctx)
	require.NoError(t, err)
	assert.False(t, needs)

	login, err := uc.Login(ctx, "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.NoError(t, uc.VerifyToken(login.Token))

	_, err = uc.Login(ctx, "wrong password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestSetupRejectsSecondRun(t *testing.T) {
	ctx := context.Background()
	uc := newAuthFixture(t)

	_, err := uc.Setup(ctx, "correct horse battery")
	require.NoError(t, err)

	_, err = uc.Setup(ctx, "another password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestSetupRejectsShortPassword(t *testing.T) {
	uc := newAuthFixture(t)

	_, err := uc.Setup(context.Background(), "short")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestResetWithRecoveryKey(t *testing.T) {
	ctx := context.Background()
	uc := newAuthFixture(t)

	result, err := uc.Setup(ctx, "original password")
	require.NoError(t, err)

	err = uc.Reset(ctx, "not-the-key", "replacement pw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	require.NoError(t, uc.Reset(ctx, result.RecoveryKey, "replacement pw"))

	_, err = uc.Login(ctx, "original password")
	assert.Error(t, err)

	login, err := uc.Login(ctx, "replacement pw")
	require.NoError(t, err)
	assert.NoError(t, uc.VerifyToken(login.Token))

	// The recovery key survives a reset and can be used again.
	require.NoError(t, uc.Reset(ctx, result.RecoveryKey, "third password"))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc := newAuthFixture(t)

	assert.Error(t, uc.VerifyToken("not-a-jwt"))
	assert.Error(t, uc.VerifyToken(""))

	other := NewAuthUseCase(newTestStore(t), "different-secret", 3600)
	_, err := other.Setup(context.Background(), "correct horse battery")
	require.NoError(t, err)
	login, err := other.Login(context.Background(), "correct horse battery")
	require.NoError(t, err)

	assert.Error(t, uc.VerifyToken(login.Token), "a token signed with another secret must fail")
}
