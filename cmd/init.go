package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/persona/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a persona site with an interactive wizard",
	Long:  `Runs an interactive wizard that writes a .persona.yml file, a site config and a sample profile document.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		cfg, err := config.RunWizard(dir)
		if err != nil {
			return err
		}
		fmt.Printf("Site ready. Run `persona serve` and open http://localhost:%d\n", cfg.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
