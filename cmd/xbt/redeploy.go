package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

func newRedeployCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.RedeployUse,
		Short: messages.RedeployShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return runRedeploy(cmd.Context(), a, cmd.OutOrStdout())
		},
	}
}

func runRedeploy(ctx context.Context, a *app, out io.Writer) error {
	result := a.controller.Redeploy(ctx, nil).Wait()
	if err := result.Err(); err != nil {
		return err
	}
	if result.UsedFallback {
		printInfo(out, messages.RedeployUsedFallback)
	}
	printSuccess(out, messages.RedeploySucceeded)
	return nil
}
