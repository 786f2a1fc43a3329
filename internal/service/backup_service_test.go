package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/bizbook/internal/backup"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_ExportLoadRestore(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewBackupService(st, obs)
	original := testutil.NewTestState()
	seedState(t, st, original)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, svc.Export(ctx, path))
	assert.Equal(t, "export-backup", obs.last().Name)

	seedState(t, st, domain.EmptyState())

	res, err := svc.Load(ctx, path, backup.ImportOptions{})
	require.NoError(t, err)
	assert.True(t, st.Current().Equal(domain.EmptyState()), "loading does not apply")

	next, err := svc.Restore(ctx, res.State)
	require.NoError(t, err)
	assert.True(t, next.Equal(original))
	assert.True(t, st.Current().Equal(original))
}

func TestBackupService_Load_IncompleteLeavesStoreAlone(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	svc := NewBackupService(st)
	seedState(t, st, testutil.NewTestState())
	before := st.Current()

	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clients":[]}`), 0o644))

	res, err := svc.Load(ctx, path, backup.ImportOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, res)
	assert.True(t, st.Current().Equal(before))
}
