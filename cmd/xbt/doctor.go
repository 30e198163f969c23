package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/xiaobait9-tools/internal/config"
	"github.com/conn-castle/xiaobait9-tools/internal/doctor"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

func newDoctorCmd(root *rootOptions) *cobra.Command {
	var targetFlag string
	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := newApp(*root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			targetDir, err := config.ResolveTargetDir(targetFlag, a.cfg, a.paths)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, targetDir)

			results := doctor.Run(a.cfg, a.patcher, targetDir)
			for _, r := range results {
				printResult(out, r)
			}

			switch {
			case doctor.HasFailure(results):
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return &SilentExitError{Code: 1}
			case doctor.HasWarning(results):
				_, _ = fmt.Fprintln(out, color.YellowString(messages.DoctorWarningSummary))
			default:
				_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&targetFlag, "target", "", messages.InstallSchemaFlagTarget)
	return cmd
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		prefix := messages.DoctorRecommendationIndent
		if i == 0 {
			prefix = messages.DoctorRecommendationPrefix
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", prefix, line)
	}
}
