package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/xiaobait9-tools/internal/menu"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

var chooseAction = func() (menu.Action, error) {
	return menu.New().Choose()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				_ = cmd.Help()
				return fmt.Errorf(messages.RootNoTerminal)
			}
			return runMenu(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootFlagVerbose)

	cmd.AddCommand(
		newInstallEngineCmd(opts),
		newInstallSchemaCmd(opts),
		newRedeployCmd(opts),
		newDoctorCmd(opts),
	)
	return cmd
}

// runMenu repeats the menu until the user exits. Action failures are
// reported and the menu is shown again.
func runMenu(cmd *cobra.Command, opts *rootOptions) error {
	a, err := newApp(*opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	for {
		action, err := chooseAction()
		if err != nil {
			return err
		}
		switch action {
		case menu.ActionExit:
			return nil
		case menu.ActionInstallEngine:
			err = runInstallEngine(a, out)
		case menu.ActionInstallSchema:
			err = runInstallSchema(cmd.Context(), a, out, installSchemaOptions{})
		case menu.ActionRedeploy:
			err = runRedeploy(cmd.Context(), a, out)
		default:
			err = fmt.Errorf(messages.MenuUnknownActionFmt, action)
		}
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
		}
		if cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
	}
}
