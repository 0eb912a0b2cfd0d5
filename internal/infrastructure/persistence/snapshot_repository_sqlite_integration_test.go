//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSqliteRepository_Get_NeverObserved(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	snapshot, err := ctx.SnapshotRepo.Get(context.Background(), "unknown-source")
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestSnapshotSqliteRepository_PutAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	snapshot := &changedetect.SourceSnapshot{
		SourceCode:  TestSourceCodeEU,
		RecordCount: 120,
		ContentHash: TestChecksum("v1"),
		CheckedAt:   time.Now(),
	}
	require.NoError(t, ctx.SnapshotRepo.Put(context.Background(), snapshot))

	fetched, err := ctx.SnapshotRepo.Get(context.Background(), TestSourceCodeEU)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, 120, fetched.RecordCount)
}

func TestSnapshotSqliteRepository_Put_Replaces(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	first := &changedetect.SourceSnapshot{
		SourceCode:  TestSourceCodeEU,
		RecordCount: 120,
		ContentHash: TestChecksum("v1"),
		CheckedAt:   time.Now(),
	}
	require.NoError(t, ctx.SnapshotRepo.Put(context.Background(), first))

	second := &changedetect.SourceSnapshot{
		SourceCode:  TestSourceCodeEU,
		RecordCount: 123,
		ContentHash: TestChecksum("v2"),
		CheckedAt:   time.Now(),
	}
	require.NoError(t, ctx.SnapshotRepo.Put(context.Background(), second))

	fetched, err := ctx.SnapshotRepo.Get(context.Background(), TestSourceCodeEU)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, 123, fetched.RecordCount)
	assert.True(t, fetched.Changed(changedetect.Summary{RecordCount: 123, ContentHash: TestChecksum("v3")}))
	assert.False(t, fetched.Changed(changedetect.Summary{RecordCount: 123, ContentHash: TestChecksum("v2")}))
}
