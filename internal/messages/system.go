package messages

// System messages for internal operations.
const (
	// FsutilCreateTempFileFmt formats temp file creation errors.
	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilSyncTempFileFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"
	FsutilOpenDirFmt        = "open dir %s: %w"
	FsutilSyncDirFmt        = "sync dir %s: %w"

	// LoggingInvalidLevelFmt formats unknown log level errors.
	LoggingInvalidLevelFmt = "invalid log level %q: %w"
	LoggingOpenFileFmt     = "open log file %s: %w"

	// MetricsWriteTextfileFmt formats metrics textfile export failures.
	MetricsWriteTextfileFmt = "write metrics textfile %s: %w"
)
