package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/resolve"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cleanup catalog",
	Long:  "List every cleanup item with its ID, category, risk, and current status.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := buildCatalog()
		if err != nil {
			return err
		}
		env := resolve.OSEnv()

		items := cat.List()
		if listCategory != "" {
			c, err := catalog.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			items = cat.ByCategory(c)
		}

		var lastCat catalog.Category = -1
		for _, item := range items {
			if item.Category != lastCat {
				if lastCat != -1 {
					fmt.Println()
				}
				fmt.Printf("%s\n", item.Category)
				lastCat = item.Category
			}
			fmt.Printf("  %-26s %-34s %s\n", item.ID, item.DisplayName, itemStatus(item, env))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Show one category (dev, app, system, custom)")
}

// itemStatus summarizes what cleaning the item would currently do.
func itemStatus(item catalog.Item, env resolve.Env) string {
	var notes []string
	if item.Risk == catalog.RiskElevated {
		notes = append(notes, "admin")
	}
	if item.RequiresConfirmation() {
		notes = append(notes, "confirm")
	}

	switch target, err := resolve.Resolve(item, env); {
	case err != nil:
		notes = append(notes, "unavailable")
	case item.IsAction():
		notes = append(notes, "system utility")
	case resolve.Validate(target).Existence == resolve.NotFound:
		notes = append(notes, "nothing to clean")
	case item.SizeHint != "":
		notes = append(notes, "~"+item.SizeHint)
	}

	if len(notes) == 0 {
		return ""
	}
	out := notes[0]
	for _, n := range notes[1:] {
		out += ", " + n
	}
	return "[" + out + "]"
}
