package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.History(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Activity"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (no activity yet)"))
				return nil
			}
			for _, e := range entries {
				stamp := ui.Muted.Render(e.CreatedAt.Format("2006-01-02 15:04"))
				fmt.Fprintf(out, "  %s  %s\n", stamp, engine.DescribeEntry(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	return cmd
}
