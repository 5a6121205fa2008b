package helptags_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/helptags"
)

func TestRebuildSkipsDirWithoutDoc(t *testing.T) {
	ix := helptags.NewVimIndexer("vim", time.Minute)

	// No doc/ subdirectory means nothing to do, even with no vim around.
	err := ix.Rebuild(context.Background(), t.TempDir())
	assert.NoError(t, err)
}

func TestRebuildGeneratesTags(t *testing.T) {
	if _, err := exec.LookPath("vim"); err != nil {
		t.Skip("vim not available")
	}

	dir := t.TempDir()
	docDir := filepath.Join(dir, "doc")
	require.NoError(t, os.MkdirAll(docDir, 0755))
	helpText := "*mything.txt* help for mything\n\n*mything-intro*\nHello.\n"
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "mything.txt"), []byte(helpText), 0644))

	ix := helptags.NewVimIndexer("vim", time.Minute)
	require.NoError(t, ix.Rebuild(context.Background(), dir))

	tags, err := os.ReadFile(filepath.Join(docDir, "tags"))
	require.NoError(t, err)
	assert.Contains(t, string(tags), "mything-intro")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, helptags.Noop{}.Rebuild(context.Background(), "/anywhere"))
}
