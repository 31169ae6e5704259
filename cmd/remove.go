package cmd

import (
	"fmt"

	"github.com/chrisdamba/chefmenu/internal/session"
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a dish from the menu and show what is left",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id := args[0]

			sess, err := a.newSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeSession(sess, &err)

			if _, ok := sess.Store().Get(id); !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No item with id %s.\n", id)
				return nil
			}

			var confirm session.Confirmer = session.AutoConfirm
			if !yes && a.cfg.ConfirmRemovals {
				confirm = session.NewShell(sess, cmd.InOrStdin(), cmd.OutOrStdout(), session.ShellOptions{}).
					WithContext(cmd.Context())
			}
			if !sess.Remove(id, confirm) {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", id)
			a.renderer().Listing(cmd.OutOrStdout(), sess.Listing())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Remove without asking for confirmation")
	return cmd
}
