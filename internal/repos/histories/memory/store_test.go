package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yongtae/pointsvc/internal/repos/histories"
)

func TestStore_AppendAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	s := New()

	first, err := s.Append(t.Context(), histories.Entry{UserID: 1, Amount: 100, Kind: histories.KindCharge})
	require.NoError(t, err)

	second, err := s.Append(t.Context(), histories.Entry{UserID: 1, Amount: 100, Kind: histories.KindUse})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestStore_ListByUser_InsertionOrderAndIsolation(t *testing.T) {
	t.Parallel()

	s := New()

	for _, e := range []histories.Entry{
		{UserID: 1, Amount: 500, Kind: histories.KindCharge},
		{UserID: 2, Amount: 300, Kind: histories.KindCharge},
		{UserID: 1, Amount: 200, Kind: histories.KindUse},
	} {
		_, err := s.Append(t.Context(), e)
		require.NoError(t, err)
	}

	got, err := s.ListByUser(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, histories.KindCharge, got[0].Kind)
	assert.Equal(t, int64(500), got[0].Amount)
	assert.Equal(t, histories.KindUse, got[1].Kind)
	assert.Equal(t, int64(200), got[1].Amount)
}

func TestStore_ListByUser_UnknownUserIsEmpty(t *testing.T) {
	t.Parallel()

	s := New()

	got, err := s.ListByUser(t.Context(), 99)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_AppendStampsCreatedAt(t *testing.T) {
	t.Parallel()

	s := New()

	e, err := s.Append(t.Context(), histories.Entry{UserID: 1, Amount: 100, Kind: histories.KindCharge})
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now(), e.CreatedAt, time.Second)
}
