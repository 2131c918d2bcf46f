package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newStatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat",
		Short: "Adjust or inspect stat panels",
	}
	cmd.AddCommand(newStatAdjustCmd("up"), newStatAdjustCmd("down"), newStatListCmd())
	return cmd
}

func newStatAdjustCmd(verb string) *cobra.Command {
	var by int

	short := "Raise a stat (caps at 100)"
	if verb == "down" {
		short = "Lower a stat (floors at 0)"
	}

	cmd := &cobra.Command{
		Use:   verb + " <group> <code>",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("group and code are required (e.g. Physical PUSH)")
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

			delta := by
			if verb == "down" {
				delta = -by
			}
			res, err := svc.AdjustStat(ctx, args[0], args[1], delta)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s → %d %s\n", ui.IconStat, res.Group, res.Code, res.Value, ui.Bar(float64(res.Value), 14))
			warnSync(cmd, res.SyncErr)
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "Step size")
	return cmd
}

func newStatListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stat panels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := svc.State()
			for _, group := range engine.StatGroups {
				fmt.Fprintln(out, ui.H2.Render(group))
				for _, code := range engine.StatCodes(group) {
					v := st.Stats[group][code]
					fmt.Fprintf(out, "  %-8s %3d/100 %s\n", code, v, ui.Bar(float64(v), 14))
				}
			}
			return nil
		},
	}
}
