package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the input-method tools, the Rime user directory and the scheme activation"

	DoctorHealthCheckFmt = "Checking Xiaobai T9 setup in %s...\n"

	DoctorCheckNameTools  = "Tools"
	DoctorCheckNameTarget = "Target"
	DoctorCheckNameConfig = "Config"
	DoctorCheckNameScheme = "Scheme"

	DoctorToolFoundFmt             = "%s found at %s"
	DoctorToolMissingFmt           = "%s not found on PATH"
	DoctorUnpackMissingRecommend   = "Install tar and gzip with your package manager."
	DoctorRedeployMissingRecommend = "Run `xbt install-engine` to install the Rime engine."
	DoctorRedeployFallbackOnlyFmt  = "%s not found; redeploy will use %s"
	DoctorTerminalMissingRecommend = "Set commands.terminal in the config file to an installed terminal emulator."

	DoctorTargetExistsFmt    = "Rime user directory exists: %s"
	DoctorTargetMissingFmt   = "Rime user directory does not exist yet: %s"
	DoctorTargetNotDirFmt    = "%s exists but is not a directory"
	DoctorTargetStatFmt      = "Cannot inspect %s: %v"
	DoctorInstallRecommend   = "Run `xbt install-schema` to install the scheme."
	DoctorTargetNotDirAdvice = "Remove or rename the file, then run `xbt install-schema`."

	DoctorConfigMissingFmt     = "%s does not exist"
	DoctorConfigReadFailedFmt  = "Cannot read %s: %v"
	DoctorConfigInvalidYAMLFmt = "%s is not valid YAML: %v"
	DoctorConfigYAMLRecommend  = "Fix the YAML syntax; Rime ignores invalid customization files."
	DoctorConfigListedFmt      = "Schema %q is activated in %s"
	DoctorConfigMarkedOnlyFmt  = "%s mentions schema %q outside patch.schema_list"
	DoctorConfigMarkedOnlyHint = "Move the entry under patch: schema_list: so Rime picks it up."
	DoctorConfigNotListedFmt   = "Schema %q is not activated in %s"

	DoctorSchemeFoundFmt   = "Scheme file present: %s"
	DoctorSchemeMissingFmt = "Scheme file missing: %s"

	DoctorFailureSummary = "Some checks failed. Please address the items above."
	DoctorSuccessSummary = "All checks passed."
	DoctorWarningSummary = "Checks passed with warnings."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-8s %s\n"
	DoctorRecommendationPrefix = "       > "
	DoctorRecommendationIndent = "         "
)
