package changelog

import (
	"fmt"
	"io"
	"strings"
)

// categoryHeadings maps category names to their Markdown section headings.
var categoryHeadings = map[string]string{
	"breaking": "Breaking Changes",
	"features": "Features",
	"fixes":    "Fixes",
	"other":    "Other",
}

// RenderMarkdown writes the changelog as a Markdown document grouped by
// release, newest first. The function is idempotent: the same input always
// produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if err := renderHeader(c, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i, v := range c.Versions {
		if err := renderVersion(&v, w, i == 0); err != nil {
			return fmt.Errorf("rendering version %s: %w", v.Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderHeader(c *Changelog, w io.Writer) error {
	project := c.Project
	if project == "" {
		project = "this project"
	}

	header := `# Changelog

All notable changes to ` + project + ` will be documented in this file.

Versions follow [Semantic Versioning](https://semver.org/spec/v2.0.0.html);
entries are grouped by the release impact of their commits.

`
	_, err := w.Write([]byte(header))
	return err
}

func renderVersion(v *Version, w io.Writer, isFirst bool) error {
	if !isFirst {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	header := "## v" + NormalizeVersion(v.Version)
	if v.Date != "" {
		header += " - " + v.Date
	}
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}

	categories := []struct {
		name    string
		entries []string
	}{
		{"breaking", v.Changes.Breaking},
		{"features", v.Changes.Features},
		{"fixes", v.Changes.Fixes},
		{"other", v.Changes.Other},
	}

	for _, cat := range categories {
		if len(cat.entries) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n### %s\n\n", categoryHeadings[cat.name]); err != nil {
			return err
		}
		for _, entry := range cat.entries {
			if _, err := fmt.Fprintf(w, "- %s\n", entry); err != nil {
				return err
			}
		}
	}

	return nil
}
