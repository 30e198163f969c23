package rimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// Inspection summarizes a structured read of default.custom.yaml.
// It is diagnostic only; patching never depends on the file being valid YAML.
type Inspection struct {
	Exists bool
	// ParseErr is set when the file is not valid YAML.
	ParseErr error
	// Listed reports whether patch.schema_list contains the schema.
	Listed bool
	// Marked reports whether the raw text contains the activation marker.
	Marked  bool
	Schemas []string
}

type customDocument struct {
	Patch struct {
		SchemaList []struct {
			Schema string `yaml:"schema"`
		} `yaml:"schema_list"`
	} `yaml:"patch"`
}

// Inspect reads path and reports how it activates schemaID.
func (p *Patcher) Inspect(path string, schemaID string) (Inspection, error) {
	var insp Inspection
	data, err := p.sys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return insp, nil
	}
	if err != nil {
		return insp, fmt.Errorf("%w: "+messages.ConfigReadFailedFmt, ErrConfigRead, path, err)
	}
	insp.Exists = true
	insp.Marked = strings.Contains(string(data), Marker(schemaID))

	var doc customDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		insp.ParseErr = err
		return insp, nil
	}
	for _, entry := range doc.Patch.SchemaList {
		insp.Schemas = append(insp.Schemas, entry.Schema)
		if entry.Schema == schemaID {
			insp.Listed = true
		}
	}
	return insp, nil
}
