package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "reset <xp|debt>",
		Short:     "Restore a ledger to its defaults",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"xp", "debt"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset %s without --yes", args[0])
			}

			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var syncErr error
			switch args[0] {
			case "xp":
				res, err := svc.ResetXP(ctx)
				if err != nil {
					return err
				}
				syncErr = res.SyncErr
			case "debt":
				res, err := svc.ResetDebt(ctx)
				if err != nil {
					return err
				}
				syncErr = res.SyncErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.IconLoop+" Reset "+args[0]+" ledger to defaults.")
			warnSync(cmd, syncErr)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
