package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/conn-castle/xiaobait9-tools/internal/config"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/rimeconfig"
)

var (
	lookPath = exec.LookPath
	statFunc = os.Stat
)

// Inspector reads default.custom.yaml for diagnostics.
type Inspector interface {
	Inspect(path string, schemaID string) (rimeconfig.Inspection, error)
}

// CheckTools verifies the external programs the actions rely on.
func CheckTools(cmds config.CommandsConfig) []Result {
	var results []Result

	results = append(results, toolResult(cmds.Unpack, StatusFail, messages.DoctorUnpackMissingRecommend))

	primary := firstArg(cmds.RedeployPrimary)
	fallback := firstArg(cmds.RedeployFallback)
	primaryPath, primaryErr := lookPath(primary)
	fallbackPath, fallbackErr := lookPath(fallback)
	switch {
	case primaryErr == nil:
		results = append(results, found(primary, primaryPath))
	case fallbackErr == nil:
		results = append(results, Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameTools,
			Message:   fmt.Sprintf(messages.DoctorRedeployFallbackOnlyFmt, primary, fallback),
		})
	default:
		results = append(results,
			missing(primary, StatusFail, messages.DoctorRedeployMissingRecommend),
			missing(fallback, StatusFail, messages.DoctorRedeployMissingRecommend))
	}

	results = append(results, toolResult(firstArg(cmds.Terminal), StatusWarn, messages.DoctorTerminalMissingRecommend))
	return results
}

func toolResult(name string, severity Status, recommendation string) Result {
	path, err := lookPath(name)
	if err != nil {
		return missing(name, severity, recommendation)
	}
	return found(name, path)
}

func found(name string, path string) Result {
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameTools,
		Message:   fmt.Sprintf(messages.DoctorToolFoundFmt, name, path),
	}
}

func missing(name string, severity Status, recommendation string) Result {
	return Result{
		Status:         severity,
		CheckName:      messages.DoctorCheckNameTools,
		Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, name),
		Recommendation: recommendation,
	}
}

func firstArg(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	return argv[0]
}

// CheckTargetDir reports whether the Rime user directory exists.
func CheckTargetDir(targetDir string) Result {
	info, err := statFunc(targetDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameTarget,
			Message:        fmt.Sprintf(messages.DoctorTargetMissingFmt, targetDir),
			Recommendation: messages.DoctorInstallRecommend,
		}
	case err != nil:
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameTarget,
			Message:   fmt.Sprintf(messages.DoctorTargetStatFmt, targetDir, err),
		}
	case !info.IsDir():
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameTarget,
			Message:        fmt.Sprintf(messages.DoctorTargetNotDirFmt, targetDir),
			Recommendation: messages.DoctorTargetNotDirAdvice,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameTarget,
		Message:   fmt.Sprintf(messages.DoctorTargetExistsFmt, targetDir),
	}
}

// CheckSchemaActivation inspects default.custom.yaml under targetDir.
func CheckSchemaActivation(inspector Inspector, targetDir string, schemaID string) Result {
	path := rimeconfig.Path(targetDir)
	insp, err := inspector.Inspect(path, schemaID)
	switch {
	case err != nil:
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   fmt.Sprintf(messages.DoctorConfigReadFailedFmt, path, err),
		}
	case !insp.Exists:
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigMissingFmt, path),
			Recommendation: messages.DoctorInstallRecommend,
		}
	case insp.ParseErr != nil:
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigInvalidYAMLFmt, path, insp.ParseErr),
			Recommendation: messages.DoctorConfigYAMLRecommend,
		}
	case insp.Listed:
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   fmt.Sprintf(messages.DoctorConfigListedFmt, schemaID, path),
		}
	case insp.Marked:
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigMarkedOnlyFmt, path, schemaID),
			Recommendation: messages.DoctorConfigMarkedOnlyHint,
		}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameConfig,
		Message:        fmt.Sprintf(messages.DoctorConfigNotListedFmt, schemaID, path),
		Recommendation: messages.DoctorInstallRecommend,
	}
}

// CheckSchemeFiles verifies that the unpacked scheme definition is present.
func CheckSchemeFiles(targetDir string, schemaID string) Result {
	path := filepath.Join(targetDir, schemaID+".schema.yaml")
	if info, err := statFunc(path); err == nil && !info.IsDir() {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameScheme,
			Message:   fmt.Sprintf(messages.DoctorSchemeFoundFmt, path),
		}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameScheme,
		Message:        fmt.Sprintf(messages.DoctorSchemeMissingFmt, path),
		Recommendation: messages.DoctorInstallRecommend,
	}
}

// Run executes every check in display order.
func Run(cfg *config.Config, inspector Inspector, targetDir string) []Result {
	results := CheckTools(cfg.Commands)
	results = append(results, CheckTargetDir(targetDir))
	results = append(results, CheckSchemaActivation(inspector, targetDir, cfg.Schema.ID))
	results = append(results, CheckSchemeFiles(targetDir, cfg.Schema.ID))
	return results
}
