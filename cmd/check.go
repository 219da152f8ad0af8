package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/persona/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and every page's documents",
	Long: `Loads the config, then renders every configured page and every enabled
person and profile the way the server would. Reports load failures,
unsupported section kinds, disabled defaults and data documents that no
page or profile references. Exits non-zero when any page fails to load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l := newLoader(cfg)
		rep, err := check.New(cfg, l, l.Remote()).Run(context.Background())
		if err != nil {
			return err
		}

		for _, f := range rep.Findings {
			fmt.Println(f)
		}
		errs := rep.Errors()
		fmt.Printf("Checked %d pages: %d errors, %d warnings\n", rep.Pages, errs, len(rep.Findings)-errs)
		if errs > 0 {
			fmt.Fprintln(os.Stderr, "Pages with errors render the failure view.")
			return fmt.Errorf("%d pages failed to load", errs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
