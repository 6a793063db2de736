package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test the database connection and show pool usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a, err := bootstrap(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			names, err := a.Records.TestConnection(ctx)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Connection successful! %d sample rows\n", len(names))
			for _, n := range names {
				_, _ = fmt.Fprintf(out, "  %s %s\n", n.FirstName, n.LastName)
			}

			s := a.Records.PoolStats()
			_, _ = fmt.Fprintf(out, "Pool %q: %d max, %d open, %d in use, %d idle\n",
				a.Config.Database.Pool.Name, s.MaxConns, s.TotalConns, s.AcquiredConns, s.IdleConns)
			return nil
		},
	}
}
