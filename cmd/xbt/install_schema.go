package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/conn-castle/xiaobait9-tools/internal/config"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/rimeconfig"
	"github.com/conn-castle/xiaobait9-tools/internal/workflow"
)

type installSchemaOptions struct {
	targetDir string
	schemaID  string
	dryRun    bool
}

func newInstallSchemaCmd(root *rootOptions) *cobra.Command {
	var opts installSchemaOptions
	cmd := &cobra.Command{
		Use:   messages.InstallSchemaUse,
		Short: messages.InstallSchemaShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return runInstallSchema(cmd.Context(), a, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.targetDir, "target", "", messages.InstallSchemaFlagTarget)
	cmd.Flags().StringVar(&opts.schemaID, "schema", "", messages.InstallSchemaFlagSchema)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, messages.InstallSchemaFlagDryRun)
	return cmd
}

// runInstallSchema installs the bundled scheme, or previews the config change with dryRun.
func runInstallSchema(ctx context.Context, a *app, out io.Writer, opts installSchemaOptions) error {
	targetDir, err := config.ResolveTargetDir(opts.targetDir, a.cfg, a.paths)
	if err != nil {
		return err
	}
	schemaID := a.cfg.Schema.ID
	if opts.schemaID != "" {
		schemaID = config.NormalizeSchemaID(opts.schemaID)
		if err := config.ValidateSchemaID("--schema", schemaID); err != nil {
			return err
		}
	}

	if opts.dryRun {
		return previewSchemaPatch(a.patcher, out, targetDir, schemaID)
	}

	req := workflow.NewInstallRequest(a.cfg.Schema.Resource, targetDir, schemaID)
	report := a.controller.InstallSchema(ctx, req, nil).Wait()
	if report.Err != nil {
		return report.Err
	}
	if report.Status == rimeconfig.AlreadyPresent {
		printInfo(out, messages.SchemaExists)
	}
	printSuccess(out, messages.SchemaInstalled)
	return nil
}

// previewSchemaPatch prints the unified diff the install would apply to default.custom.yaml.
func previewSchemaPatch(patcher *rimeconfig.Patcher, out io.Writer, targetDir string, schemaID string) error {
	path := rimeconfig.Path(targetDir)
	plan, err := patcher.Plan(path, schemaID)
	if err != nil {
		return err
	}
	if plan.Result == rimeconfig.AlreadyPresent {
		_, _ = fmt.Fprintf(out, messages.InstallSchemaDryRunNoChangeFmt, path, schemaID)
		return nil
	}
	_, _ = fmt.Fprintf(out, messages.InstallSchemaDryRunHeaderFmt, path)
	_, _ = fmt.Fprint(out, udiff.Unified(path, path, plan.Before, plan.After))
	return nil
}
