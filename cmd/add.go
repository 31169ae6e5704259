package cmd

import (
	"fmt"

	"github.com/chrisdamba/chefmenu/internal/catalog"
	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var d models.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a dish to the menu and show the result",
		Example: `  chefmenu add --name "Tuna Tartare" --description "Yellowfin with ponzu" \
    --category starter --price 145 --image https://example.com/tuna.jpg \
    --ingredients "tuna, avocado, ponzu"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if d.Category == "" {
				d.Category = string(a.cfg.DefaultCategory)
			}

			sess, err := a.newSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeSession(sess, &err)

			r := a.renderer()
			item, err := sess.Submit(d)
			if err != nil {
				if !catalog.IsValidationError(err) {
					return err
				}
				r.Problem(cmd.ErrOrStderr(), err)
				return fmt.Errorf("item not saved: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Saved:")
			r.Item(cmd.OutOrStdout(), item)
			fmt.Fprintf(cmd.OutOrStdout(), "%d items on the menu\n", sess.Store().Len())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&d.ItemName, "name", "", "Dish name")
	flags.StringVar(&d.Description, "description", "", "Dish description")
	flags.StringVar(&d.Category, "category", "", "Course: STARTER, MAIN or DESSERT (default from config)")
	flags.StringVar(&d.Price, "price", "", "Price, greater than zero")
	flags.StringVar(&d.Image, "image", "", "Image URL")
	flags.StringVar(&d.Ingredients, "ingredients", "", "Comma separated ingredients")
	return cmd
}
