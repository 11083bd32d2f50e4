package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func TestPrincipalRepository_CreateAndGet(t *testing.T) {
	repo := NewPrincipalRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	p, err := principal.NewPrincipal("@alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID())

	found, err := repo.GetByHandle(ctx, "@alice")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), found.ID())
	assert.Equal(t, "Alice", found.DisplayName())

	// Handle lookup is normalized.
	found, err = repo.GetByHandle(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), found.ID())

	_, err = repo.GetByHandle(ctx, "@nobody")
	assert.ErrorIs(t, err, principal.ErrPrincipalNotFound)
}

func TestPrincipalRepository_DuplicateHandle(t *testing.T) {
	repo := NewPrincipalRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	first, err := principal.NewPrincipal("@alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := principal.NewPrincipal("@alice", "Imposter")
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, principal.ErrHandleTaken)
}

func TestPrincipalRepository_UpdateContactDetails(t *testing.T) {
	repo := NewPrincipalRepository(setupTestDB(t), logger.NewLogger())
	ctx := context.Background()

	p, err := principal.NewPrincipal("@alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	p.SetEmail("alice@example.com")
	p.SetTelegramChatID(123456)
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email())
	assert.Equal(t, int64(123456), found.TelegramChatID())
}
