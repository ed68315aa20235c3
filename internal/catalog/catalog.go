// Package catalog is the static registry of cleanup item definitions. The
// catalog is compiled-in configuration: it is assembled once at startup
// (built-in table plus optional user config) and read-only afterwards.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Get for an unknown item ID.
var ErrNotFound = errors.New("catalog: item not found")

// Category groups related cleanup items.
type Category int

const (
	DevToolCache Category = iota
	AppCache
	SystemCleanup
	Custom
)

// String returns the display label for the category.
func (c Category) String() string {
	switch c {
	case DevToolCache:
		return "Developer Tools"
	case AppCache:
		return "Application Caches"
	case SystemCleanup:
		return "System Cleanup"
	case Custom:
		return "Custom Rules"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ParseCategory maps a command-line category name to its Category.
func ParseCategory(name string) (Category, error) {
	switch name {
	case "dev":
		return DevToolCache, nil
	case "app":
		return AppCache, nil
	case "system":
		return SystemCleanup, nil
	case "custom":
		return Custom, nil
	default:
		return 0, fmt.Errorf("unknown category %q (want dev, app, system, or custom)", name)
	}
}

// Risk classifies how dangerous an item is to clean.
type Risk int

const (
	// RiskLow items proceed without confirmation unless overridden.
	RiskLow Risk = iota
	// RiskElevated items need administrator privilege and always require
	// explicit confirmation.
	RiskElevated
)

func (r Risk) String() string {
	if r == RiskElevated {
		return "elevated"
	}
	return "low"
}

// Action names an OS utility invoked for items that have no filesystem
// target of their own.
type Action int

const (
	ActionNone Action = iota
	ActionDiskCleanup
	ActionComponentCleanup
	ActionEmptyRecycleBin
)

// LocationSpec is either a %VAR%-style path template (filesystem-backed
// items) or a named OS action (everything else). Exactly one is set.
type LocationSpec struct {
	PathTemplate string
	Action       Action
}

// Item is one cleanup item definition.
type Item struct {
	ID          string
	DisplayName string
	Description string
	Category    Category
	Risk        Risk

	// ConfirmOverride forces confirmation for low-risk items that are
	// large or irreversible. It cannot remove confirmation from
	// elevated items.
	ConfirmOverride bool

	// SizeHint is advisory display text, never used for decisions.
	SizeHint string

	Location LocationSpec
}

// IsAction reports whether the item targets an OS utility rather than a
// filesystem path.
func (i Item) IsAction() bool {
	return i.Location.Action != ActionNone
}

// RequiresConfirmation reports whether the confirmation gate must be passed
// before this item is executed. Elevated items always require it.
func (i Item) RequiresConfirmation() bool {
	return i.Risk == RiskElevated || i.ConfirmOverride
}

// builtinItems is the compiled-in cleanup table. Adding an item is a data
// change here, not a new code path.
func builtinItems() []Item {
	return []Item{
		// ── Developer tool caches ───────────────────────────────
		{
			ID:          "go-mod-cache",
			DisplayName: "Go Module Cache",
			Description: "Downloaded Go module sources and archives",
			Category:    DevToolCache,
			Risk:        RiskLow,
			SizeHint:    "~500MB",
			Location:    LocationSpec{PathTemplate: `%USERPROFILE%\go\pkg\mod\cache`},
		},
		{
			ID:          "gradle-cache",
			DisplayName: "Gradle Cache",
			Description: "Gradle dependency and build caches",
			Category:    DevToolCache,
			Risk:        RiskLow,
			SizeHint:    "auto",
			Location:    LocationSpec{PathTemplate: `%USERPROFILE%\.gradle\caches`},
		},
		{
			ID:          "gradle-wrapper-dists",
			DisplayName: "Gradle Wrapper Dists",
			Description: "Downloaded Gradle wrapper distributions",
			Category:    DevToolCache,
			Risk:        RiskLow,
			SizeHint:    "auto",
			Location:    LocationSpec{PathTemplate: `%USERPROFILE%\.gradle\wrapper\dists`},
		},
		{
			ID:          "cargo-cache",
			DisplayName: "Cargo Registry Cache",
			Description: "Rust crate registry downloads",
			Category:    DevToolCache,
			Risk:        RiskLow,
			SizeHint:    "~2GB",
			Location:    LocationSpec{PathTemplate: `%USERPROFILE%\.cargo\registry\cache`},
		},
		{
			ID:          "npm-cache",
			DisplayName: "npm Cache",
			Description: "npm package manager download cache",
			Category:    DevToolCache,
			Risk:        RiskLow,
			SizeHint:    "~200MB",
			Location:    LocationSpec{PathTemplate: `%APPDATA%\npm-cache`},
		},

		// ── Application caches ──────────────────────────────────
		{
			ID:              "trae-ai-logs",
			DisplayName:     "Trae AI Chat Logs",
			Description:     "Trae AI chat history logs (can grow very large)",
			Category:        AppCache,
			Risk:            RiskLow,
			ConfirmOverride: true,
			SizeHint:        "auto",
			Location:        LocationSpec{PathTemplate: `%USERPROFILE%\.marscode\ai-chat\logs`},
		},
		{
			ID:          "kugou-image-cache",
			DisplayName: "KuGou Image Cache",
			Description: "KuGou music player image cache",
			Category:    AppCache,
			Risk:        RiskLow,
			SizeHint:    "auto",
			Location:    LocationSpec{PathTemplate: `%APPDATA%\KuGou8\ImagesCache`},
		},
		{
			ID:          "vscode-cpptools-cache",
			DisplayName: "VSCode Cpptools Cache",
			Description: "VS Code C/C++ extension IntelliSense cache",
			Category:    AppCache,
			Risk:        RiskLow,
			SizeHint:    "auto",
			Location:    LocationSpec{PathTemplate: `%LOCALAPPDATA%\Microsoft\vscode-cpptools`},
		},
		{
			ID:          "office-updates",
			DisplayName: "Office Update Cache",
			Description: "Microsoft Office downloaded update packages",
			Category:    AppCache,
			Risk:        RiskElevated,
			SizeHint:    "auto",
			Location:    LocationSpec{PathTemplate: `%PROGRAMFILES(X86)%\Microsoft Office\Updates`},
		},
		{
			ID:          "qq-miniapp",
			DisplayName: "QQ MiniApp Cache",
			Description: "QQ mini-program cache",
			Category:    AppCache,
			Risk:        RiskElevated,
			SizeHint:    "auto",
			Location:    LocationSpec{PathTemplate: `%APPDATA%\QQ\miniapp`},
		},

		// ── System cleanup ──────────────────────────────────────
		{
			ID:          "system-component-cleanup",
			DisplayName: "System Component Cleanup",
			Description: "DISM component store cleanup (requires administrator)",
			Category:    SystemCleanup,
			Risk:        RiskElevated,
			SizeHint:    "~1-3GB",
			Location:    LocationSpec{Action: ActionComponentCleanup},
		},
		{
			ID:          "disk-cleanup",
			DisplayName: "Disk Cleanup",
			Description: "Windows built-in Disk Cleanup utility",
			Category:    SystemCleanup,
			Risk:        RiskLow,
			SizeHint:    "varies",
			Location:    LocationSpec{Action: ActionDiskCleanup},
		},
		{
			ID:              "recycle-bin",
			DisplayName:     "Recycle Bin",
			Description:     "Empty the Windows Recycle Bin on all drives",
			Category:        SystemCleanup,
			Risk:            RiskLow,
			ConfirmOverride: true,
			SizeHint:        "varies",
			Location:        LocationSpec{Action: ActionEmptyRecycleBin},
		},
	}
}

// Catalog is the immutable item registry.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

// New assembles the catalog from the built-in table plus any extra items
// (user-configured Custom rules). Items are validated once here; a
// malformed built-in table is a programming defect and fails construction.
func New(extra ...Item) (*Catalog, error) {
	items := append(builtinItems(), extra...)

	byID := make(map[string]Item, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog: item %q has empty ID", it.DisplayName)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate item ID %q", it.ID)
		}
		hasPath := it.Location.PathTemplate != ""
		hasAction := it.Location.Action != ActionNone
		if hasPath == hasAction {
			return nil, fmt.Errorf("catalog: item %q must have exactly one of path or action", it.ID)
		}
		byID[it.ID] = it
	}

	// Stable presentation order: grouped by category, original order
	// preserved within each group.
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Category < items[b].Category
	})

	return &Catalog{items: items, byID: byID}, nil
}

// MustNew is New for the compiled-in table only, where failure means the
// table itself is broken.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// List returns all items in stable category-grouped order. The returned
// slice is a copy; the catalog cannot be mutated through it.
func (c *Catalog) List() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ByCategory returns the items in one category, preserving catalog order.
func (c *Catalog) ByCategory(cat Category) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Get looks up an item by ID.
func (c *Catalog) Get(id string) (Item, error) {
	it, ok := c.byID[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return it, nil
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
