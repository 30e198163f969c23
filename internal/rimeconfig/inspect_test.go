package rimeconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_MissingFile(t *testing.T) {
	insp, err := NewPatcher(nil).Inspect(Path(t.TempDir()), "xiaobai")

	require.NoError(t, err)
	assert.False(t, insp.Exists)
	assert.False(t, insp.Listed)
}

func TestInspect_PatchedFileIsListed(t *testing.T) {
	path := Path(t.TempDir())
	patcher := NewPatcher(nil)
	require.NoError(t, os.WriteFile(path, []byte("patch:\n  schema_list:\n    - schema: luna_pinyin\n"), 0o644))
	_, err := patcher.EnsureSchemaActivated(path, "xiaobai")
	require.NoError(t, err)

	insp, err := patcher.Inspect(path, "xiaobai")

	require.NoError(t, err)
	assert.True(t, insp.Exists)
	assert.NoError(t, insp.ParseErr)
	assert.True(t, insp.Listed)
	assert.True(t, insp.Marked)
	assert.Equal(t, []string{"luna_pinyin", "xiaobai"}, insp.Schemas)
}

func TestInspect_InvalidYAMLIsReportedNotFatal(t *testing.T) {
	path := Path(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("patch:\n\t- schema: xiaobai\n  : ["), 0o644))

	insp, err := NewPatcher(nil).Inspect(path, "xiaobai")

	require.NoError(t, err)
	assert.Error(t, insp.ParseErr)
	assert.True(t, insp.Marked)
	assert.False(t, insp.Listed)
}
