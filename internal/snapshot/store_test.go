package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	st := NewStore(path)

	saved := fullSnapshot()
	require.NoError(t, st.Save(saved))

	loaded, err := st.LoadPrevious()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Empty(t, Compare(saved, loaded))
	assert.True(t, saved.Timestamp.Equal(loaded.Timestamp))
}

func TestStore_MissingFileIsNoHistory(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "nope.json"))

	loaded, err := st.LoadPrevious()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_CorruptFileIsNoHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	loaded, err := NewStore(path).LoadPrevious()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	st := NewStore(path)

	first := fullSnapshot()
	require.NoError(t, st.Save(first))

	second := fullSnapshot()
	second.CPU.Percent = 90
	require.NoError(t, st.Save(second))

	loaded, err := st.LoadPrevious()
	require.NoError(t, err)
	assert.Equal(t, 90.0, loaded.CPU.Percent)
}

func TestStore_SaveToUnwritablePathErrors(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "missing-dir", "snap.json"))

	err := st.Save(fullSnapshot())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
}

func TestStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFile, NewStore("").Path())
}
