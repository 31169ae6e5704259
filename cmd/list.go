package cmd

import (
	"strings"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the menu with the average price of every course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.newSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeSession(sess, &err)

			a.renderer().Listing(cmd.OutOrStdout(), sess.Listing())
			return nil
		},
	}
}

func newAveragesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "averages",
		Short: "Show the average price of every course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.newSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeSession(sess, &err)

			a.renderer().Averages(cmd.OutOrStdout(), sess.Store().Averages())
			return nil
		},
	}
}

func newFilterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "filter <course>",
		Short:   "Show the dishes of one course (STARTER, MAIN or DESSERT)",
		Example: "  chefmenu filter dessert\n  chefmenu filter main meal",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			course, err := models.ParseCourse(strings.Join(args, " "))
			if err != nil {
				return err
			}

			sess, err := a.newSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeSession(sess, &err)

			a.renderer().Filter(cmd.OutOrStdout(), sess.Filter(course))
			return nil
		},
	}
}
