package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newXPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Adjust or inspect the XP ledger",
	}
	cmd.AddCommand(newXPAdjustCmd("add"), newXPAdjustCmd("sub"), newXPListCmd())
	return cmd
}

func newXPAdjustCmd(verb string) *cobra.Command {
	var hours float64
	var amount float64

	short := "Add XP to a category (gains settle debt first)"
	if verb == "sub" {
		short = "Remove XP from a category (floors at zero)"
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
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			category := args[0]
			dir, err := engine.ParseDirection(verb)
			if err != nil {
				return err
			}

			resolved := amount
			if resolved <= 0 {
				resolved = cfg.Rate(category).Resolve(hours)
			}
			if resolved <= 0 {
				return fmt.Errorf("no amount: pass --amount, or --hours for a category with an hourly rate")
			}

			res, err := svc.AdjustXP(ctx, category, dir, resolved)
			if err != nil {
				return suggestCategory(err, engine.XPCategories)
			}

			out := cmd.OutOrStdout()
			if dir == engine.DirectionAdd {
				fmt.Fprintf(out, "%s %s: +%.1f XP", ui.IconXP, category, res.Applied)
				if res.DebtPaid > 0 {
					fmt.Fprintf(out, " %s", ui.Muted.Render(fmt.Sprintf("(%.1f settled debt)", res.DebtPaid)))
				}
				fmt.Fprintln(out)
			} else {
				fmt.Fprintf(out, "%s %s: -%.1f XP\n", ui.IconXP, category, res.Applied)
			}
			printDerived(out, res.Derived, res.LevelUp, res.TitleUnlocked)
			warnSync(cmd, res.SyncErr)
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours spent (uses the category's hourly rate)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Explicit XP amount (overrides rates)")
	return cmd
}

func newXPListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List XP per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconXP, "XP Breakdown"))
			st := svc.State()
			for _, cat := range engine.XPCategories {
				fmt.Fprintf(out, "  %-32s %7.1f\n", cat, st.XP[cat])
			}
			d := engine.Derive(st.XP, st.Debt)
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("  total %.1f, effective %.1f", d.TotalXP, d.EffectiveXP)))
			return nil
		},
	}
}

func printDerived(out io.Writer, d engine.Derived, levelUp, titleUnlocked bool) {
	fmt.Fprintf(out, "Level %d (%s), %.1f effective XP\n", d.Level, d.Title, d.EffectiveXP)
	if levelUp {
		fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Level up!"))
	}
	if titleUnlocked {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" New title unlocked: "+d.Title))
	}
}

func warnSync(cmd *cobra.Command, syncErr error) {
	if syncErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" applied, but saving failed: "+syncErr.Error()))
	}
}

// suggestCategory augments unknown-category errors with near matches.
func suggestCategory(err error, categories []string) error {
	var unknown engine.UnknownCategoryError
	if !errors.As(err, &unknown) {
		return err
	}
	needle := strings.ToLower(unknown.Category)
	var hits []string
	for _, cat := range categories {
		if strings.Contains(strings.ToLower(cat), needle) {
			hits = append(hits, cat)
		}
	}
	if len(hits) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hits, ", "))
}
