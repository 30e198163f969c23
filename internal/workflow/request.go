package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/rimeconfig"
)

// ErrInvalidRequest reports an InstallRequest missing a required field.
var ErrInvalidRequest = errors.New("invalid install request")

// InstallRequest describes one scheme installation. It is immutable once created.
type InstallRequest struct {
	// ID correlates log lines for one request.
	ID           string
	ResourceName string
	TargetDir    string
	SchemaID     string
}

// NewInstallRequest returns a request with a fresh ID.
func NewInstallRequest(resourceName string, targetDir string, schemaID string) InstallRequest {
	return InstallRequest{
		ID:           uuid.NewString(),
		ResourceName: resourceName,
		TargetDir:    targetDir,
		SchemaID:     schemaID,
	}
}

// Validate reports the first missing field.
func (r InstallRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.ResourceName) == "":
		return fmt.Errorf("%w: "+messages.WorkflowRequestInvalidFmt, ErrInvalidRequest, messages.ResourceNameRequired)
	case strings.TrimSpace(r.TargetDir) == "":
		return fmt.Errorf("%w: "+messages.WorkflowRequestInvalidFmt, ErrInvalidRequest, messages.DirectoryRequired)
	case strings.TrimSpace(r.SchemaID) == "":
		return fmt.Errorf("%w: "+messages.WorkflowRequestInvalidFmt, ErrInvalidRequest, messages.SchemaIDRequired)
	}
	return nil
}

// Report is the final outcome of one InstallRequest.
type Report struct {
	Request InstallRequest
	// Status is meaningful only when Err is nil.
	Status   rimeconfig.Result
	Err      error
	Duration time.Duration
}
