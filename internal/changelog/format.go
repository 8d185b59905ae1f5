package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps category names to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	"breaking": {Color: color.New(color.FgRed), Icon: "⚠"},
	"features": {Color: color.New(color.FgGreen), Icon: "✓"},
	"fixes":    {Color: color.New(color.FgYellow), Icon: "⚡"},
	"other":    {Color: color.New(color.FgBlue), Icon: "~"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes changelog entries to the writer with terminal
// styling, grouped by version with color-coded category headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)
	groups := groupEntriesByVersion(entries)

	for i, group := range groups {
		if err := formatVersionGroup(group, w, opts, width, i > 0); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
	}

	return nil
}

// FormatVersion writes a single version's entries to the writer.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(v.Version, v.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	categoryEntries := groupByCategory(v.Entries())
	for _, cat := range ValidCategories() {
		if entries, ok := categoryEntries[cat]; ok {
			if err := writeCategorySection(cat, entries, w, opts, width); err != nil {
				return err
			}
		}
	}

	return nil
}

// versionGroup holds entries for a single version.
type versionGroup struct {
	version string
	entries []Entry
}

// groupEntriesByVersion groups entries by their version, preserving order.
func groupEntriesByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	var current *versionGroup

	for _, e := range entries {
		if current == nil || current.version != e.Version {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &versionGroup{version: e.Version}
		}
		current.entries = append(current.entries, e)
	}

	if current != nil {
		groups = append(groups, *current)
	}

	return groups
}

func formatVersionGroup(group versionGroup, w io.Writer, opts FormatOptions, width int, addSeparator bool) error {
	if addSeparator {
		fmt.Fprintln(w)
	}

	if err := writeVersionHeader(group.version, "", w, opts); err != nil {
		return err
	}

	categoryEntries := groupByCategory(group.entries)
	for _, cat := range ValidCategories() {
		if entries, ok := categoryEntries[cat]; ok {
			if err := writeCategorySection(cat, entries, w, opts, width); err != nil {
				return err
			}
		}
	}

	return nil
}

func groupByCategory(entries []Entry) map[string][]Entry {
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped
}

func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	header := "v" + NormalizeVersion(version)
	if date != "" {
		header = fmt.Sprintf("%s (%s)", header, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeCategorySection(category string, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[category]

	if err := writeCategoryHeader(category, style, w, opts); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

func writeCategoryHeader(category string, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	displayName := categoryHeadings[category]

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", displayName)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(displayName))
	return err
}

func writeEntry(entry Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry.Text)
		return err
	}

	wrapped := wrapText(entry.Text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
