package cmd

import (
	"errors"
	"fmt"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the menu and course averages to the configured output",
		Example: "  chefmenu export --output-format csv --output-path ./out\n" +
			"  chefmenu export --output-format parquet --sample-items 500",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if a.cfg.OutputFormat == models.OutputFormatNone {
				return errors.New("nothing to export to: set --output-format")
			}

			sess, err := a.newSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeSession(sess, &err)

			progress := cmd.ErrOrStderr()
			if !a.cfg.Progress || a.cfg.OutputFormat == models.OutputFormatConsole {
				progress = nil
			}

			n, err := sess.Export(progress)
			if err != nil {
				return err
			}
			a.log.Info().Int("records", n).Str("format", a.cfg.OutputFormat).Msg("menu exported")
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records.\n", n)
			return nil
		},
	}
}
