// Package assets bundles the scheme archive and the engine installer script.
package assets

import (
	"embed"
	"io/fs"
)

const (
	// SchemaArchive is the bundled Xiaobai T9 scheme archive.
	SchemaArchive = "xiaobai_schema.tar.gz"
	// EngineScript installs the Rime engine packages.
	EngineScript = "install-rime.sh"
)

//go:embed xiaobai_schema.tar.gz install-rime.sh
var files embed.FS

// FS returns the read-only bundled resources.
func FS() fs.FS {
	return files
}
