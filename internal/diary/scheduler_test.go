package diary

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdd/internal/structures"
	"sdd/internal/testutil"
)

func newTestScheduler(t *testing.T) (*Scheduler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diary.json")
	conf := &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     path,
			SaveInterval: time.Hour,
		},
	}
	mgr := NewBackupManager(&testutil.MockCompressor{}, &testutil.MockLogger{})
	return NewScheduler(conf, &testutil.MockLogger{}, mgr).(*Scheduler), path
}

func TestScheduler_PersistSnapshotsBlob(t *testing.T) {
	scheduler, path := newTestScheduler(t)
	blob := []byte(`[{"id":"1"}]`)
	require.NoError(t, os.WriteFile(path, blob, 0644))

	require.NoError(t, scheduler.Persist())

	snapshot, err := os.ReadFile(path + BackupExt)
	require.NoError(t, err)
	assert.Equal(t, blob, snapshot)
}

func TestScheduler_RestoreRebuildsMissingBlob(t *testing.T) {
	scheduler, path := newTestScheduler(t)
	require.NoError(t, os.WriteFile(path+BackupExt, []byte(`[{"id":"1"}]`), 0644))

	require.NoError(t, scheduler.Restore())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), data)
}

func TestScheduler_RestoreNothingToDo(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	assert.NoError(t, scheduler.Restore())
}

func TestScheduler_StopBeforeInit(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	assert.NotPanics(t, func() { scheduler.Stop() })
}

func TestScheduler_InitAndStop(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	scheduler.Init()
	scheduler.Stop()
}
