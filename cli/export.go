package cli

import (
	"fmt"

	"legal-roster/service"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of lawyers, cases and assignments to storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := bootstrap(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Exports.Export(ctx, f)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lawyers, %d cases, %d assignments\n",
				result.Lawyers, result.Cases, result.Assignments)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Export %s stored at %s (%d bytes)\n",
				result.ExportID, result.Key, result.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(service.ExportFormatJSON), "Snapshot format: json or xlsx")
	return cmd
}
