package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Daily quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestShow(cmd)
		},
	}
	cmd.AddCommand(newQuestShowCmd(), newQuestRerollCmd(), newQuestDoneCmd())
	return cmd
}

func newQuestShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show today's quests (rolls them if stale)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestShow(cmd)
		},
	}
}

func runQuestShow(cmd *cobra.Command) error {
	ctx := context.Background()
	svc, _, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.EnsureTodaysQuests(ctx)
	if err != nil {
		return err
	}
	printQuests(cmd, res)
	warnSync(cmd, res.SyncErr)
	return nil
}

func newQuestRerollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reroll",
		Short: "Draw a fresh quest set for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.RerollQuests(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconLoop+" Rerolled.")
			printQuests(cmd, res)
			warnSync(cmd, res.SyncErr)
			return nil
		},
	}
}

func newQuestDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <slot>",
		Short: "Complete a quest slot (1-3) and collect its bonus XP",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("slot is required (1-3)")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("slot must be a number")
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

			slot, _ := strconv.Atoi(args[0])
			slot-- // 1-based on the CLI
			bonus := cfg.Rate(engine.QuestXPCategory(slot)).Resolve(0)

			res, err := svc.CompleteQuest(ctx, slot, bonus)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Quest %d done: %s\n", ui.IconDone, res.Slot+1, res.Text)
			if res.Bonus > 0 {
				fmt.Fprintf(out, "+%.1f XP", res.Applied)
				if res.DebtPaid > 0 {
					fmt.Fprintf(out, " %s", ui.Muted.Render(fmt.Sprintf("(%.1f settled debt)", res.DebtPaid)))
				}
				fmt.Fprintln(out)
			}
			printDerived(out, res.Derived, res.LevelUp, res.TitleUnlocked)
			warnSync(cmd, res.SyncErr)
			return nil
		},
	}
}

func printQuests(cmd *cobra.Command, res *engine.QuestsResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Daily Quests ("+res.Quests.Date+")"))
	for i, slot := range res.Quests.Slots {
		fmt.Fprintf(out, "- %s %d. %s\n", ui.QuestIcon(slot.Done), i+1, slot.Text)
	}
}
