package runlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.log")

	sink, err := NewFileSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Append("2026-01-02 03:04:05 Created brand Acme"))
	require.NoError(t, sink.Append("2026-01-02 03:04:06 Migrated 1 brands"))
	require.NoError(t, sink.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2026-01-02 03:04:05 Created brand Acme\n2026-01-02 03:04:06 Migrated 1 brands\n",
		string(content))
}

func TestFileSink_AccumulatesAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.log")

	first, err := NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, first.Append("run one"))
	require.NoError(t, first.Close())

	// A new process appends; the file is never reset between runs.
	second, err := NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, second.Append("run two"))
	require.NoError(t, second.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run one\nrun two\n", string(content))
}

func TestNewFileSink_BadPath(t *testing.T) {
	_, err := NewFileSink(filepath.Join(t.TempDir(), "missing", "migration.log"))
	assert.Error(t, err)
}
