package messages

// Config messages for loading and validating the toolkit config file.
const (
	// ConfigReadFileFmt formats config file read failures.
	ConfigReadFileFmt         = "cannot read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"
	ConfigValidationGuidance  = "(fix the file or delete it to use the defaults)"
	ConfigHomeDirFmt          = "cannot determine home directory: %w"
	ConfigExpandPathFmt       = "cannot expand path %s: %w"

	// ConfigSchemaIDRequiredFmt formats a missing schema id.
	ConfigSchemaIDRequiredFmt       = "%s: schema.id is required"
	ConfigSchemaIDInvalidFmt        = "%s: schema.id %q must not contain whitespace or ':'"
	ConfigSchemaResourceRequiredFmt = "%s: schema.resource is required"
	ConfigCommandRequiredFmt        = "%s: commands.%s is required"
	ConfigTimeoutInvalidFmt         = "%s: timeouts.%s %q is not a valid duration"
	ConfigTimeoutNotPositiveFmt     = "%s: timeouts.%s must be greater than zero"
	ConfigLogLevelInvalidFmt        = "%s: log.level: %w"
)
