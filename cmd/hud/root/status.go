package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the HUD: level, title, bars, stats and quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			qres, err := svc.EnsureTodaysQuests(ctx)
			if err != nil {
				return err
			}
			warnSync(cmd, qres.SyncErr)

			st := svc.State()
			d := engine.Derive(st.XP, st.Debt)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconHUD, "Player HUD"))
			fmt.Fprintln(out, ui.LabelValue("Level", d.Level))
			fmt.Fprintln(out, ui.LabelValue("Title", ui.Gold.Render(d.Title)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%.1f (effective %.1f)", d.TotalXP, d.EffectiveXP)))
			fmt.Fprintln(out, "")

			fmt.Fprintf(out, "%s XP    %s %.1f / %.0f into level %d\n", ui.IconXP, ui.Bar(d.XPPercent, 30), d.XPInLevel, d.XPRequired, d.RawLevel)
			fmt.Fprintf(out, "%s Title %s next title at level %d\n", ui.IconTrophy, ui.Bar(d.TitlePercent, 30), d.TitleNext)
			fmt.Fprintf(out, "%s Debt  %s %.1f outstanding\n", ui.IconDebt, ui.DebtBar(d.DebtPercent, 30), d.TotalDebt)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconStat+" Stats"))
			for _, group := range engine.StatGroups {
				line := "- " + ui.Key.Render(group+":")
				for _, code := range engine.StatCodes(group) {
					line += fmt.Sprintf("  %s %d", code, st.Stats[group][code])
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Daily Quests ("+qres.Quests.Date+")"))
			for i, slot := range qres.Quests.Slots {
				fmt.Fprintf(out, "- %s %d. %s\n", ui.QuestIcon(slot.Done), i+1, slot.Text)
			}

			if svc.StoreLess() {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render("(store-less session: progress is not saved)"))
			}
			return nil
		},
	}

	return cmd
}
