package messages

// Workflow messages for resource extraction, archive install, config patching and redeploy.
const (
	// ResourceOpenFmt formats bundled resource open failures.
	ResourceOpenFmt       = "cannot read resource file %s: %w"
	ResourceReadFmt       = "cannot read resource file %s: %w"
	ResourceEmptyFmt      = "resource file %s is empty"
	TempFileCreateFmt     = "cannot create temporary file: %w"
	TempFileWriteFmt      = "failed to write temporary file %s: %w"
	TempFileShortWriteFmt = "failed to write temporary file %s: wrote %d of %d bytes"
	TempFileSyncFmt       = "failed to flush temporary file %s: %w"

	// DirectoryCreateFmt formats target directory creation failures.
	DirectoryCreateFmt = "cannot create directory %s, please check permissions: %w"
	DirectoryNotDirFmt = "cannot create directory %s: path exists but is not a directory"
	DirectoryRequired  = "target directory is required"
	ArchiveRequired    = "archive handle is required"
	InstallFailedFmt   = "installation failed: %s"
	InstallTimedOutFmt = "installation timed out after %s: %s"
	InstallCanceledFmt = "installation canceled: %s"

	// ConfigReadFailedFmt formats default.custom.yaml read failures.
	ConfigReadFailedFmt  = "cannot read %s: %w"
	ConfigWriteFailedFmt = "cannot write %s: %w"
	SchemaIDRequired     = "schema id is required"

	// RedeployFailedFmt formats redeploy failures.
	RedeployFailedFmt   = "redeploy failed: %s"
	RedeployTimedOutFmt = "redeploy timed out after %s: %s"
	RedeployCanceledFmt = "redeploy canceled: %s"

	// EngineLaunchFailedFmt formats engine installer launch failures.
	EngineLaunchFailedFmt = "cannot start terminal %s: %w"
	EngineScriptWriteFmt  = "cannot write installer script %s: %w"
	EngineScriptReadFmt   = "cannot read bundled installer script %s: %w"

	// ProcessExitFmt formats a process exit summary.
	ProcessExitFmt  = "exit status %d"
	ProcessSignaled = "terminated abnormally"

	// LockOpenFmt formats lock file open failures.
	LockOpenFmt      = "open lock %s: %w"
	LockFmt          = "lock %s: %w"
	LockTimeoutFmt   = "timed out waiting for another install into %s after %s"
	LockCreateDirFmt = "create lock dir %s: %w"
	LockKeyRequired  = "lock key is required"

	// WorkflowResourcesRequired indicates the controller is missing a resource filesystem.
	WorkflowResourcesRequired  = "workflow resources are required"
	WorkflowInstallerRequired  = "workflow archive installer is required"
	WorkflowPatcherRequired    = "workflow config patcher is required"
	WorkflowRedeployerRequired = "workflow redeploy invoker is required"
	WorkflowLauncherRequired   = "workflow engine launcher is required"
	WorkflowLocksRequired      = "workflow lock manager is required"
	WorkflowRequestInvalidFmt  = "invalid install request: %s"
	ResourceNameRequired       = "resource name is required"
)
