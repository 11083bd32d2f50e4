package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func createTestRecipient(t *testing.T, owner uint, name string) *recipient.Recipient {
	t.Helper()
	rec, err := recipient.NewPersonalRecipient(owner, name, recipient.PlatformTrello, "key:token", "")
	require.NoError(t, err)
	return rec
}

func TestRecipientRepository_CreateAndGet(t *testing.T) {
	repo := NewRecipientRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	rec := createTestRecipient(t, 1, "Team Board")
	require.NoError(t, repo.Create(ctx, rec))
	assert.NotZero(t, rec.ID())

	found, err := repo.GetBySID(ctx, rec.SID())
	require.NoError(t, err)
	assert.Equal(t, "Team Board", found.Name())
	assert.Equal(t, "key:token", found.Credential())
	assert.True(t, found.IsPersonal())

	_, err = repo.GetBySID(ctx, "rcp_missing")
	assert.ErrorIs(t, err, recipient.ErrRecipientNotFound)
}

func TestRecipientRepository_UpdateCredential(t *testing.T) {
	repo := NewRecipientRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	t.Run("writes only the credential column", func(t *testing.T) {
		rec := createTestRecipient(t, 1, "Team Board")
		require.NoError(t, repo.Create(ctx, rec))

		require.NoError(t, repo.UpdateCredential(ctx, rec.ID(), "key:rotated"))

		found, err := repo.GetByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, "key:rotated", found.Credential())
		assert.Equal(t, "Team Board", found.Name())
	})

	t.Run("refuses to write a shared record", func(t *testing.T) {
		shared, err := recipient.NewSharedRecipient(2, "Team Board (shared by @alice)", recipient.PlatformTrello, 5)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, shared))

		err = repo.UpdateCredential(ctx, shared.ID(), "leaked")
		assert.ErrorIs(t, err, recipient.ErrRecipientNotFound)

		found, err := repo.GetByID(ctx, shared.ID())
		require.NoError(t, err)
		assert.Empty(t, found.Credential())
	})

	t.Run("missing row reported as not found", func(t *testing.T) {
		err := repo.UpdateCredential(ctx, 99999, "nope")
		assert.ErrorIs(t, err, recipient.ErrRecipientNotFound)
	})
}

func TestRecipientRepository_SharedAuthorizationCascade(t *testing.T) {
	repo := NewRecipientRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	first, err := recipient.NewSharedRecipient(2, "Board (shared by @alice)", recipient.PlatformTrello, 5)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	other, err := recipient.NewSharedRecipient(3, "Board (shared by @alice)", recipient.PlatformTrello, 6)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	derived, err := repo.FindBySharedAuthorizationID(ctx, 5)
	require.NoError(t, err)
	require.Len(t, derived, 1)
	assert.Equal(t, first.SID(), derived[0].SID())

	require.NoError(t, repo.DeleteBySharedAuthorizationID(ctx, 5))

	_, err = repo.GetByID(ctx, first.ID())
	assert.ErrorIs(t, err, recipient.ErrRecipientNotFound)
	_, err = repo.GetByID(ctx, other.ID())
	assert.NoError(t, err)
}

func TestRecipientRepository_ListByOwner(t *testing.T) {
	repo := NewRecipientRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestRecipient(t, 1, "First")))
	require.NoError(t, repo.Create(ctx, createTestRecipient(t, 1, "Second")))
	require.NoError(t, repo.Create(ctx, createTestRecipient(t, 2, "Other")))

	owned, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "First", owned[0].Name())
	assert.Equal(t, "Second", owned[1].Name())
}

func TestRecipientRepository_UpdateAndDelete(t *testing.T) {
	repo := NewRecipientRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	rec := createTestRecipient(t, 1, "Team Board")
	require.NoError(t, repo.Create(ctx, rec))

	require.NoError(t, rec.Rename("Renamed Board"))
	rec.Disable()
	require.NoError(t, repo.Update(ctx, rec))

	found, err := repo.GetByID(ctx, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, "Renamed Board", found.Name())
	assert.False(t, found.Enabled())

	require.NoError(t, repo.Delete(ctx, rec.ID()))
	_, err = repo.GetByID(ctx, rec.ID())
	assert.ErrorIs(t, err, recipient.ErrRecipientNotFound)
}
