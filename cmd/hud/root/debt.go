package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newDebtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Adjust or inspect the XP wall debt ledger",
	}
	cmd.AddCommand(newDebtAdjustCmd("add"), newDebtAdjustCmd("sub"), newDebtListCmd())
	return cmd
}

func newDebtAdjustCmd(verb string) *cobra.Command {
	short := "Record an infraction (adds the category's fixed penalty)"
	if verb == "sub" {
		short = "Forgive one penalty from a category (floors at zero)"
	}

	cmd := &cobra.Command{
		Use:   verb + " <category>",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("category is required (quote multi-word names)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			dir, err := engine.ParseDirection(verb)
			if err != nil {
				return err
			}
			res, err := svc.AdjustDebt(ctx, args[0], dir)
			if err != nil {
				return suggestCategory(err, engine.DebtCategories)
			}

			out := cmd.OutOrStdout()
			sign := "+"
			if dir == engine.DirectionSubtract {
				sign = "-"
			}
			fmt.Fprintf(out, "%s %s: %s%.1f debt\n", ui.IconDebt, res.Category, sign, res.Applied)
			printDerived(out, res.Derived, res.LevelUp, res.TitleUnlocked)
			warnSync(cmd, res.SyncErr)
			return nil
		},
	}

	return cmd
}

func newDebtListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List debt per category with penalties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconDebt, "XP Wall Debt"))
			st := svc.State()
			for _, cat := range engine.DebtCategories {
				owed := st.Debt[cat]
				line := fmt.Sprintf("  %-32s %7.1f  %s", cat, owed, ui.Muted.Render(fmt.Sprintf("(penalty %.1f)", engine.DebtPenalty(cat))))
				if owed > 0 {
					line = ui.Bad.Render(fmt.Sprintf("  %-32s %7.1f", cat, owed)) + "  " + ui.Muted.Render(fmt.Sprintf("(penalty %.1f)", engine.DebtPenalty(cat)))
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("  total %.1f", st.Debt.Total())))
			return nil
		},
	}
}
