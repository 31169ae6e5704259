package cmd

import (
	"github.com/chrisdamba/chefmenu/internal/session"
	"github.com/spf13/cobra"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session (same as running without a subcommand)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) (err error) {
	sess, err := a.newSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	sh := session.NewShell(sess, cmd.InOrStdin(), cmd.OutOrStdout(), session.ShellOptions{
		Currency:        a.cfg.CurrencySymbol,
		DefaultCourse:   a.cfg.DefaultCategory,
		ConfirmRemovals: a.cfg.ConfirmRemovals,
	})
	return sh.Run(cmd.Context())
}
