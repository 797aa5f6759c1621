package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/economy-hud/internal/domain"
)

func record(amount int64) domain.Transaction {
	return domain.NewTransaction(domain.ResourcePrimary, amount, "", time.Unix(amount, 0))
}

func amounts(txs []domain.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount
	}
	return out
}

func TestNewDefaultsCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Cap())
	assert.Equal(t, DefaultCapacity, New(-5).Cap())
	assert.Equal(t, 7, New(7).Cap())
}

func TestAppendEvictsOldest(t *testing.T) {
	s := New(DefaultCapacity)

	for i := int64(1); i <= 250; i++ {
		evicted := s.Append(record(i))
		assert.Equal(t, i > DefaultCapacity, evicted, "append %d", i)
		require.LessOrEqual(t, s.Len(), DefaultCapacity)
	}

	snap := s.Snapshot()
	require.Len(t, snap, DefaultCapacity)
	assert.Equal(t, int64(250), snap[0].Amount)
	assert.Equal(t, int64(151), snap[len(snap)-1].Amount)
}

func TestSnapshotNewestFirst(t *testing.T) {
	s := New(5)
	s.Append(record(1))
	s.Append(record(2))
	s.Append(record(3))

	assert.Equal(t, []int64{3, 2, 1}, amounts(s.Snapshot()))
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(5)
	s.Append(record(1))
	s.Append(record(2))

	snap := s.Snapshot()
	snap[0].Amount = 999

	assert.Equal(t, []int64{2, 1}, amounts(s.Snapshot()))
	assert.Equal(t, 2, s.Len())
}

func TestRecent(t *testing.T) {
	s := New(4)
	for i := int64(1); i <= 6; i++ {
		s.Append(record(i))
	}

	tests := []struct {
		name  string
		limit int
		want  []int64
	}{
		{name: "all", limit: 0, want: []int64{6, 5, 4, 3}},
		{name: "negative means all", limit: -1, want: []int64{6, 5, 4, 3}},
		{name: "limited", limit: 2, want: []int64{6, 5}},
		{name: "over size", limit: 10, want: []int64{6, 5, 4, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, amounts(s.Recent(tc.limit)))
		})
	}
}

func TestClear(t *testing.T) {
	s := New(3)
	for i := int64(1); i <= 5; i++ {
		s.Append(record(i))
	}

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())

	s.Append(record(9))
	assert.Equal(t, []int64{9}, amounts(s.Snapshot()))
}

func TestCapacityOne(t *testing.T) {
	s := New(1)
	assert.False(t, s.Append(record(1)))
	assert.True(t, s.Append(record(2)))
	assert.Equal(t, []int64{2}, amounts(s.Snapshot()))
}
