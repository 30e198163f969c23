// Package rimeconfig activates schemas in the Rime user config
// (default.custom.yaml) without parsing or reformatting the document.
package rimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// FileName is the user config file patched inside the Rime user directory.
const FileName = "default.custom.yaml"

const (
	patchKey         = "patch:"
	schemaListKey    = "schema_list:"
	patchHeader      = "patch:\n"
	schemaListHeader = "  schema_list:\n"
	entryPrefix      = "    - "
	markerPrefix     = "schema: "
	defaultPerm      = 0o644
	maxSymlinkHops   = 40
)

var (
	// ErrConfigRead reports that an existing config file could not be read.
	ErrConfigRead = errors.New("config read failed")
	// ErrConfigWrite reports that the patched config file could not be written.
	ErrConfigWrite = errors.New("config write failed")
)

// Result is the outcome of a successful EnsureSchemaActivated call.
type Result int

const (
	// Patched means the activation entry was appended and written.
	Patched Result = iota + 1
	// AlreadyPresent means the file already activates the schema; nothing was written.
	AlreadyPresent
)

func (r Result) String() string {
	switch r {
	case Patched:
		return "patched"
	case AlreadyPresent:
		return "already_present"
	default:
		return "unknown"
	}
}

// Path returns the config file path for a Rime user directory.
func Path(targetDir string) string {
	return filepath.Join(targetDir, FileName)
}

// Marker returns the substring whose presence means schemaID is activated.
func Marker(schemaID string) string {
	return markerPrefix + schemaID
}

// Merge appends the activation stanza for schemaID to content.
// It returns content unchanged and false when the marker is already present.
// Existing text is never rewritten, so content is always a prefix of the result.
func Merge(content string, schemaID string) (string, bool) {
	if strings.Contains(content, Marker(schemaID)) {
		return content, false
	}
	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	if !strings.Contains(content, patchKey) {
		b.WriteString(patchHeader)
	}
	if !strings.Contains(content, schemaListKey) {
		b.WriteString(schemaListHeader)
	}
	b.WriteString(entryPrefix + Marker(schemaID) + "\n")
	return b.String(), true
}

// Plan describes the change EnsureSchemaActivated would make.
type Plan struct {
	Path   string
	Exists bool
	Before string
	After  string
	Result Result
	perm   fs.FileMode
	// target is Path with symlinks followed; writes go here.
	target string
}

// Patcher merges schema activation entries into default.custom.yaml.
// The read-modify-write is not transactional against concurrent external
// editors of the same file.
type Patcher struct {
	sys System
}

// NewPatcher returns a Patcher backed by sys; nil uses RealSystem.
func NewPatcher(sys System) *Patcher {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Patcher{sys: sys}
}

// Plan reads path and computes the merged content without writing.
// A missing file is treated as empty.
func (p *Patcher) Plan(path string, schemaID string) (Plan, error) {
	if strings.TrimSpace(schemaID) == "" {
		return Plan{}, errors.New(messages.SchemaIDRequired)
	}
	plan := Plan{Path: path, perm: defaultPerm}
	target, err := p.resolveLink(path)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: "+messages.ConfigReadFailedFmt, ErrConfigRead, path, err)
	}
	plan.target = target

	info, err := p.sys.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Plan{}, fmt.Errorf("%w: "+messages.ConfigReadFailedFmt, ErrConfigRead, path, err)
	default:
		data, err := p.sys.ReadFile(target)
		if err != nil {
			return Plan{}, fmt.Errorf("%w: "+messages.ConfigReadFailedFmt, ErrConfigRead, path, err)
		}
		plan.Exists = true
		plan.Before = string(data)
		plan.perm = info.Mode().Perm()
	}

	after, changed := Merge(plan.Before, schemaID)
	plan.After = after
	plan.Result = AlreadyPresent
	if changed {
		plan.Result = Patched
	}
	return plan, nil
}

// EnsureSchemaActivated makes sure path activates schemaID.
// Repeated calls are safe: once the marker is present no further writes happen.
func (p *Patcher) EnsureSchemaActivated(path string, schemaID string) (Result, error) {
	plan, err := p.Plan(path, schemaID)
	if err != nil {
		return 0, err
	}
	if plan.Result == AlreadyPresent {
		return AlreadyPresent, nil
	}
	if err := p.sys.WriteFileAtomic(plan.target, []byte(plan.After), plan.perm); err != nil {
		return 0, fmt.Errorf("%w: "+messages.ConfigWriteFailedFmt, ErrConfigWrite, path, err)
	}
	return Patched, nil
}

// resolveLink follows symlinks at path so the rename in WriteFileAtomic
// replaces the link target instead of the link. A dangling link resolves to
// its missing target, which is then created.
func (p *Patcher) resolveLink(path string) (string, error) {
	for range maxSymlinkHops {
		info, err := p.sys.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}
		dest, err := p.sys.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", &fs.PathError{Op: "readlink", Path: path, Err: syscall.ELOOP}
}
