package workflow

import (
	"context"
	"errors"

	"github.com/conn-castle/xiaobait9-tools/internal/archive"
	"github.com/conn-castle/xiaobait9-tools/internal/engine"
	"github.com/conn-castle/xiaobait9-tools/internal/keylock"
	"github.com/conn-castle/xiaobait9-tools/internal/metrics"
	"github.com/conn-castle/xiaobait9-tools/internal/redeploy"
	"github.com/conn-castle/xiaobait9-tools/internal/resource"
	"github.com/conn-castle/xiaobait9-tools/internal/rimeconfig"
)

var kinds = []struct {
	err   error
	label string
}{
	{ErrInvalidRequest, "invalid_request"},
	{resource.ErrResourceRead, "resource_read"},
	{resource.ErrTempFileCreate, "temp_file_create"},
	{resource.ErrTempFileWrite, "temp_file_write"},
	{archive.ErrDirectoryCreate, "directory_create"},
	{archive.ErrInstallFailure, "install_failure"},
	{rimeconfig.ErrConfigRead, "config_read"},
	{rimeconfig.ErrConfigWrite, "config_write"},
	{redeploy.ErrRedeployFailure, "redeploy_failure"},
	{engine.ErrEngineLaunch, "engine_launch"},
	{keylock.ErrLockTimeout, "lock_timeout"},
	{context.Canceled, "canceled"},
	{context.DeadlineExceeded, "timeout"},
}

// FailureKind returns a stable label for err's failure kind.
func FailureKind(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return metrics.OutcomeFailure
}
