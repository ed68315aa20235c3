package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/priyamkaur/winbroom/internal/core"
	"github.com/priyamkaur/winbroom/internal/resolve"
	"github.com/priyamkaur/winbroom/internal/status"
	"github.com/priyamkaur/winbroom/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show disk usage",
	Long:  "Per-drive capacity overview, so you can see what a cleanup would buy you.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s\n\n", core.OSVersionString())

		drives, err := status.CollectDrives()
		if err != nil {
			return fmt.Errorf("collect drives: %w", err)
		}
		if len(drives) == 0 {
			fmt.Println("no mounted drives found")
			return nil
		}

		for _, d := range drives {
			name := d.Path
			if d.Label != "" {
				name += " " + d.Label
			}
			fmt.Printf("  %-14s %s  %5.1f%%  %s free of %s\n",
				name,
				usageBar(d.UsedPercent, 28),
				d.UsedPercent,
				core.FormatSize(int64(d.Free)),
				core.FormatSize(int64(d.Total)))
		}

		printCatalogSummary()
		return nil
	},
}

// printCatalogSummary reports how many catalog items currently have
// something to clean.
func printCatalogSummary() {
	cat, err := buildCatalog()
	if err != nil {
		return
	}
	env := resolve.OSEnv()

	cleanable, actions, unavailable := 0, 0, 0
	for _, item := range cat.List() {
		target, err := resolve.Resolve(item, env)
		switch {
		case err != nil:
			unavailable++
		case item.IsAction():
			actions++
		case resolve.Validate(target).Existence == resolve.Exists:
			cleanable++
		}
	}

	fmt.Printf("\nCatalog: %d of %d items have something to clean", cleanable, cat.Len())
	if actions > 0 {
		fmt.Printf(", %d system utilities", actions)
	}
	if unavailable > 0 {
		fmt.Printf(", %d unavailable here", unavailable)
	}
	fmt.Println()
}

// usageBar renders a ████░░░░ bar colored by how full the drive is.
func usageBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	barColor := ui.ColorSuccess
	switch {
	case pct >= 90:
		barColor = ui.ColorError
	case pct >= 75:
		barColor = ui.ColorWarning
	}

	f := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	e := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("░", width-filled))
	return f + e
}
