package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/core"
	"github.com/priyamkaur/winbroom/internal/engine"
	"github.com/priyamkaur/winbroom/internal/resolve"
)

var (
	cleanCategory string
	cleanAll      bool
	cleanYes      bool
	dryRun        bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [item-id...]",
	Short: "Free up disk space",
	Long: `Clean catalog items by ID, by category, or all at once.

Items run independently: one failure never aborts the rest. Exit code is
0 when nothing failed, 1 when any item failed, 2 when the only non-success
was a declined confirmation.`,
	Example: `  wb clean npm-cache go-mod-cache
  wb clean --category dev
  wb clean --all --yes`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanCategory, "category", "", "Clean one category (dev, app, system, custom)")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean every catalog item")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Assume yes for all confirmations")
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the cleanup plan without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog()
	if err != nil {
		return err
	}

	items, err := selectItems(cat, args)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("nothing selected; pass item IDs, --category, or --all (see 'wb list')")
	}

	env := resolve.OSEnv()
	exec := buildExecutor(env)

	// Resolve and validate the whole selection up front so the preview,
	// the confirmations, and the execution all see the same plan.
	var plan []planned
	resolveFailures := 0
	for _, item := range items {
		target, err := resolve.Resolve(item, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", item.ID, err)
			resolveFailures++
			continue
		}
		plan = append(plan, planned{item: item, target: resolve.Validate(target)})
	}

	if dryRun {
		printPlan(plan)
		if resolveFailures > 0 {
			exit(1)
		}
		return nil
	}

	// Confirmation pass. Items that will fail the privilege precheck are
	// not worth asking about; the engine reports them as failures.
	reader := bufio.NewReader(os.Stdin)
	attempts := make([]engine.Attempt, 0, len(plan))
	for _, p := range plan {
		decision := engine.Proceed
		if engine.RequiresConfirmation(p.item) && !exec.NeedsElevation(p.item) {
			decision = engine.Gate(p.item, cleanYes || promptYesNo(reader, p.item))
		}
		attempts = append(attempts, engine.Attempt{Item: p.item, Target: p.target, Decision: decision})
	}

	results := exec.ExecuteBatch(context.Background(), attempts, printResult)
	report := engine.Aggregate(results)

	fmt.Printf("\n%d cleaned, %d skipped, %d cancelled, %d failed",
		report.Succeeded, report.Skipped, report.Cancelled, report.Failed)
	if report.Reclaimed > 0 {
		fmt.Printf("  (%s reclaimed)", core.FormatSize(report.Reclaimed))
	}
	fmt.Println()

	code := report.ExitCode()
	if resolveFailures > 0 && code != 1 {
		code = 1
	}
	if code != 0 {
		exit(code)
	}
	return nil
}

// exit flushes logs before terminating with a batch exit code.
func exit(code int) {
	closeLogs()
	os.Exit(code)
}

// planned pairs one selected item with its resolved, validated target.
type planned struct {
	item   catalog.Item
	target resolve.Target
}

// printPlan renders the dry-run preview: what would be attempted, where,
// and whether anything is there to clean.
func printPlan(plan []planned) {
	fmt.Println("Cleanup plan (dry run, nothing deleted):")
	for _, p := range plan {
		where := p.target.Path
		if p.item.IsAction() {
			where = "system utility"
		}
		note := ""
		switch {
		case p.item.IsAction():
		case p.target.Existence == resolve.NotFound:
			note = "  [nothing to clean]"
		}
		if p.item.Risk == catalog.RiskElevated {
			note += "  [requires administrator]"
		}
		fmt.Printf("  %-26s %s%s\n", p.item.ID, where, note)
	}
}

// printResult renders one incremental outcome line as the batch runs.
func printResult(res engine.Result) {
	switch res.Outcome {
	case engine.OutcomeSucceeded:
		if res.Reclaimed > 0 {
			fmt.Printf("✓ %s  %s\n", res.ItemID, core.FormatSize(res.Reclaimed))
			return
		}
		fmt.Printf("✓ %s\n", res.ItemID)
	case engine.OutcomeSkippedNotFound:
		fmt.Printf("· %s  nothing to clean\n", res.ItemID)
	case engine.OutcomeCancelled:
		fmt.Printf("· %s  cancelled\n", res.ItemID)
	default:
		fmt.Printf("✗ %s  %s\n", res.ItemID, res.Reason)
	}
}

// selectItems turns the clean command's arguments into catalog items,
// preserving catalog order for --all and --category and argument order for
// explicit IDs.
func selectItems(cat *catalog.Catalog, ids []string) ([]catalog.Item, error) {
	set := 0
	for _, on := range []bool{cleanAll, cleanCategory != "", len(ids) > 0} {
		if on {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("pass item IDs, --category, or --all, not a combination")
	}

	switch {
	case cleanAll:
		return cat.List(), nil
	case cleanCategory != "":
		c, err := catalog.ParseCategory(cleanCategory)
		if err != nil {
			return nil, err
		}
		return cat.ByCategory(c), nil
	default:
		var items []catalog.Item
		for _, id := range ids {
			item, err := cat.Get(id)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}
}

func promptYesNo(reader *bufio.Reader, item catalog.Item) bool {
	label := item.DisplayName
	if item.Risk == catalog.RiskElevated {
		label += " (requires administrator)"
	}
	fmt.Printf("Clean %s? [y/N]: ", label)

	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
