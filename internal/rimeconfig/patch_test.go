package rimeconfig

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultSystem is a test helper that allows deterministic error injection for
// the patcher System interface.
type faultSystem struct {
	base     System
	statErr  error
	readErr  error
	writeErr error
	writes   int
}

func (f *faultSystem) Stat(name string) (os.FileInfo, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	return f.base.Stat(name)
}

func (f *faultSystem) Lstat(name string) (os.FileInfo, error) {
	return f.base.Lstat(name)
}

func (f *faultSystem) Readlink(name string) (string, error) {
	return f.base.Readlink(name)
}

func (f *faultSystem) ReadFile(name string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.base.ReadFile(name)
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.base.WriteFileAtomic(filename, data, perm)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		changed bool
	}{
		{
			name:    "empty",
			content: "",
			want:    "patch:\n  schema_list:\n    - schema: xiaobai\n",
			changed: true,
		},
		{
			name:    "unrelated content without trailing newline",
			content: "# my settings\nmenu:\n  page_size: 9",
			want:    "# my settings\nmenu:\n  page_size: 9\npatch:\n  schema_list:\n    - schema: xiaobai\n",
			changed: true,
		},
		{
			name:    "patch without schema list",
			content: "patch:\n  menu/page_size: 9\n",
			want:    "patch:\n  menu/page_size: 9\n  schema_list:\n    - schema: xiaobai\n",
			changed: true,
		},
		{
			name:    "schema list with other schema",
			content: "patch:\n  schema_list:\n    - schema: luna_pinyin\n",
			want:    "patch:\n  schema_list:\n    - schema: luna_pinyin\n    - schema: xiaobai\n",
			changed: true,
		},
		{
			name:    "already present",
			content: "patch:\n  schema_list:\n    - schema: xiaobai\n",
			want:    "patch:\n  schema_list:\n    - schema: xiaobai\n",
			changed: false,
		},
		{
			name:    "marker inside hand-edited flow style",
			content: "patch: {schema_list: [{schema: xiaobai}]}\n",
			want:    "patch: {schema_list: [{schema: xiaobai}]}\n",
			changed: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Merge(tt.content, "xiaobai")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
			assert.True(t, strings.HasPrefix(got, tt.content))
		})
	}
}

func TestEnsureSchemaActivated_CreatesMissingFile(t *testing.T) {
	path := Path(t.TempDir())

	result, err := NewPatcher(nil).EnsureSchemaActivated(path, "xiaobai")

	require.NoError(t, err)
	assert.Equal(t, Patched, result)
	assert.Equal(t, "patch:\n  schema_list:\n    - schema: xiaobai\n", readFile(t, path))
}

func TestEnsureSchemaActivated_Idempotent(t *testing.T) {
	path := Path(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("menu:\n  page_size: 9\n"), 0o600))
	sys := &faultSystem{base: RealSystem{}}
	patcher := NewPatcher(sys)

	first, err := patcher.EnsureSchemaActivated(path, "xiaobai")
	require.NoError(t, err)
	require.Equal(t, Patched, first)
	want := readFile(t, path)

	for i := 0; i < 100; i++ {
		result, err := patcher.EnsureSchemaActivated(path, "xiaobai")
		require.NoError(t, err)
		require.Equal(t, AlreadyPresent, result)
	}
	assert.Equal(t, want, readFile(t, path))
	assert.Equal(t, 1, sys.writes)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEnsureSchemaActivated_PreservesExistingContentAsPrefix(t *testing.T) {
	path := Path(t.TempDir())
	original := "# Rime default settings\nswitcher:\n  hotkeys:\n    - F4"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	_, err := NewPatcher(nil).EnsureSchemaActivated(path, "xiaobai")
	require.NoError(t, err)

	got := readFile(t, path)
	assert.True(t, strings.HasPrefix(got, original))
	assert.True(t, strings.HasSuffix(got, "\npatch:\n  schema_list:\n    - schema: xiaobai\n"))
}

func TestEnsureSchemaActivated_ReadError(t *testing.T) {
	path := Path(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	sys := &faultSystem{base: RealSystem{}, readErr: fs.ErrPermission}

	_, err := NewPatcher(sys).EnsureSchemaActivated(path, "xiaobai")

	require.ErrorIs(t, err, ErrConfigRead)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), path)
	assert.Zero(t, sys.writes)
}

func TestEnsureSchemaActivated_StatError(t *testing.T) {
	sys := &faultSystem{base: RealSystem{}, statErr: errors.New("input/output error")}

	_, err := NewPatcher(sys).EnsureSchemaActivated(Path(t.TempDir()), "xiaobai")

	require.ErrorIs(t, err, ErrConfigRead)
}

func TestEnsureSchemaActivated_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := NewPatcher(nil).EnsureSchemaActivated(path, "xiaobai")

	require.ErrorIs(t, err, ErrConfigRead)
}

func TestEnsureSchemaActivated_WriteError(t *testing.T) {
	path := Path(t.TempDir())
	sys := &faultSystem{base: RealSystem{}, writeErr: fs.ErrPermission}

	_, err := NewPatcher(sys).EnsureSchemaActivated(path, "xiaobai")

	require.ErrorIs(t, err, ErrConfigWrite)
	assert.Contains(t, err.Error(), path)
	assert.NoFileExists(t, path)
}

func TestEnsureSchemaActivated_FollowsSymlink(t *testing.T) {
	root := t.TempDir()
	dotfiles := filepath.Join(root, "dotfiles")
	require.NoError(t, os.MkdirAll(dotfiles, 0o755))
	dotfile := filepath.Join(dotfiles, FileName)
	require.NoError(t, os.WriteFile(dotfile, []byte("patch:\n  menu/page_size: 9\n"), 0o600))
	userDir := filepath.Join(root, "rime")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	link := Path(userDir)
	require.NoError(t, os.Symlink(filepath.Join("..", "dotfiles", FileName), link))

	result, err := NewPatcher(nil).EnsureSchemaActivated(link, "xiaobai")

	require.NoError(t, err)
	assert.Equal(t, Patched, result)
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink, "link replaced by a regular file")
	assert.Equal(t, "patch:\n  menu/page_size: 9\n  schema_list:\n    - schema: xiaobai\n", readFile(t, dotfile))
	realInfo, err := os.Stat(dotfile)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), realInfo.Mode().Perm())

	result, err = NewPatcher(nil).EnsureSchemaActivated(link, "xiaobai")
	require.NoError(t, err)
	assert.Equal(t, AlreadyPresent, result)
}

func TestEnsureSchemaActivated_DanglingSymlinkCreatesTarget(t *testing.T) {
	root := t.TempDir()
	dotfile := filepath.Join(root, "dotfiles.yaml")
	link := Path(root)
	require.NoError(t, os.Symlink(dotfile, link))

	result, err := NewPatcher(nil).EnsureSchemaActivated(link, "xiaobai")

	require.NoError(t, err)
	assert.Equal(t, Patched, result)
	assert.Equal(t, "patch:\n  schema_list:\n    - schema: xiaobai\n", readFile(t, dotfile))
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)
}

func TestEnsureSchemaActivated_SymlinkLoop(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.yaml")
	b := filepath.Join(root, "b.yaml")
	require.NoError(t, os.Symlink(b, a))
	require.NoError(t, os.Symlink(a, b))

	_, err := NewPatcher(nil).EnsureSchemaActivated(a, "xiaobai")

	require.ErrorIs(t, err, ErrConfigRead)
	assert.ErrorIs(t, err, syscall.ELOOP)
}

func TestEnsureSchemaActivated_RequiresSchemaID(t *testing.T) {
	_, err := NewPatcher(nil).EnsureSchemaActivated(Path(t.TempDir()), " ")
	require.Error(t, err)
}

func TestPlan_DoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	plan, err := NewPatcher(nil).Plan(path, "xiaobai")

	require.NoError(t, err)
	assert.False(t, plan.Exists)
	assert.Equal(t, Patched, plan.Result)
	assert.Equal(t, "", plan.Before)
	assert.Equal(t, "patch:\n  schema_list:\n    - schema: xiaobai\n", plan.After)
	assert.NoFileExists(t, path)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "patched", Patched.String())
	assert.Equal(t, "already_present", AlreadyPresent.String())
	assert.Equal(t, "unknown", Result(0).String())
}
