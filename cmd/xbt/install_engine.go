package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

func newInstallEngineCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.InstallEngineUse,
		Short: messages.InstallEngineShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return runInstallEngine(a, cmd.OutOrStdout())
		},
	}
}

func runInstallEngine(a *app, out io.Writer) error {
	if err := a.controller.InstallEngine(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, messages.InstallEngineStartedFmt, a.cfg.Commands.Terminal[0])
	return nil
}
