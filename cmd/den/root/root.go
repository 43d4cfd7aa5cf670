package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"denling/internal/engine"
	"denling/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "den",
	Short:         "Denling — a companion that grows as you get things done",
	Long:          "Denling is a local-first CLI task manager where a virtual companion levels up and evolves as you complete tasks and keep a daily streak.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	if err := engine.ValidateSpecies(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" bad species configuration: "+err.Error()))
		os.Exit(1)
	}

	rootCmd.AddCommand(
		newCheckinCmd(),
		newStatusCmd(),
		newProtectCmd(),
		newCompanionCmd(),
		newAdoptCmd(),
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newHistoryCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
