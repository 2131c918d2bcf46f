package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "hud",
	Short:         "Player HUD — personal XP, debt and quest tracker",
	Long:          "Player HUD is a gamified self-tracker: log XP and debt across fixed categories, level up through titles, keep daily quests, and watch the HUD.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newXPCmd(),
		newDebtCmd(),
		newStatCmd(),
		newQuestCmd(),
		newLogCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
