package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse         = "xbt"
	RootShort       = "Xiaobai T9 Toolkit"
	RootLong        = "Install the Rime engine and the Xiaobai T9 scheme for fcitx5, and redeploy the input method."
	RootFlagConfig  = "Path to the toolkit config file (default: $XDG_CONFIG_HOME/xiaobait9-tools/config.toml)"
	RootFlagVerbose = "Log workflow details to stderr"
	RootNoTerminal  = "no action given and stdin/stdout is not a terminal; run one of: install-engine, install-schema, redeploy"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallEngineUse is the install-engine command name.
	InstallEngineUse        = "install-engine"
	InstallEngineShort      = "Install the Rime engine in a terminal window"
	InstallEngineStartedFmt = "Engine installer started in %s; follow the prompts in the new window.\n"

	// InstallSchemaUse is the install-schema command name.
	InstallSchemaUse               = "install-schema"
	InstallSchemaShort             = "Install the Xiaobai T9 scheme into the Rime user directory"
	InstallSchemaFlagTarget        = "Rime user directory to install into (default: $XDG_DATA_HOME/fcitx5/rime)"
	InstallSchemaFlagSchema        = "Schema id to activate in default.custom.yaml"
	InstallSchemaFlagDryRun        = "Show the default.custom.yaml change without installing anything"
	InstallSchemaDryRunNoChangeFmt = "%s already activates schema %q; nothing to change.\n"
	InstallSchemaDryRunHeaderFmt   = "Planned change to %s:\n"

	// RedeployUse is the redeploy command name.
	RedeployUse   = "redeploy"
	RedeployShort = "Redeploy / reload the input method"

	// MenuTitle is the interactive menu title.
	MenuTitle               = "Xiaobai T9 Toolkit"
	MenuOptionInstallEngine = "Install Rime engine"
	MenuOptionInstallSchema = "Install Xiaobai T9 scheme"
	MenuOptionRedeploy      = "Redeploy input method"
	MenuOptionExit          = "Exit"
	MenuRequiresTerminal    = "menu requires an interactive terminal"
	MenuUnknownActionFmt    = "unknown menu action %q"

	// TitleError labels failure output.
	TitleError   = "Error"
	TitleInfo    = "Info"
	TitleSuccess = "Success"
	TitleLineFmt = "%s: %s\n"

	SchemaExists         = "Scheme already exists, skip installing."
	SchemaInstalled      = "Scheme installed to user directory. You can enable it now."
	RedeploySucceeded    = "Input method redeployed / reloaded."
	RedeployUsedFallback = "rime_deployer was unavailable; reloaded fcitx5 instead."
)
