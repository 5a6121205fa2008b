package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/flavor/pkg/errors"
)

// Renderer defines the interface for rendering flavor's output views.
type Renderer interface {
	RenderSyncReport(changes []FlavorChange) string
	RenderFlavorList(rows []FlavorRow) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output.
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderSyncReport renders an install or upgrade report: one line per
// flavor plus a closing count line.
func (r *TerminalRenderer) RenderSyncReport(changes []FlavorChange) string {
	if len(changes) == 0 {
		return pterm.NewStyle(pterm.FgGray).Sprint("No flavors declared.")
	}

	var result strings.Builder
	for _, c := range changes {
		label := StatusStyle(c.Status).Sprintf("%-8s", string(c.Status))
		result.WriteString(fmt.Sprintf("  %s %s %s", label, pterm.Bold.Sprint(c.Name), c.Version))
		if c.Status == StatusUpdated && c.Previous != "" {
			result.WriteString(fmt.Sprintf(" (was %s)", c.Previous))
		}
		result.WriteString("\n")
	}
	result.WriteString("\n" + SummarizeChanges(changes) + "\n")
	return strings.TrimRight(result.String(), "\n")
}

// RenderFlavorList renders the joined manifest/lock/deployment view.
func (r *TerminalRenderer) RenderFlavorList(rows []FlavorRow) string {
	if len(rows) == 0 {
		return pterm.NewStyle(pterm.FgGray).Sprint("No flavors declared.")
	}

	nameWidth, constraintWidth := columnWidths(rows)

	var result strings.Builder
	for _, row := range rows {
		name := fmt.Sprintf("%-*s", nameWidth, row.Name)
		constraint := fmt.Sprintf("%-*s", constraintWidth, row.Constraint)

		version := row.Version
		if version == "" {
			version = pterm.NewStyle(pterm.FgYellow).Sprint("unlocked")
		}

		var state string
		switch {
		case row.Stale:
			state = pterm.NewStyle(pterm.FgYellow).Sprint("not declared")
		case row.Deployed:
			state = pterm.NewStyle(pterm.FgGreen).Sprint("deployed")
		default:
			state = pterm.NewStyle(pterm.FgGray).Sprint("not deployed")
		}

		result.WriteString(fmt.Sprintf("  %s  %s  %-8s  %s",
			pterm.Bold.Sprint(name), constraint, version, state))
		if len(row.Groups) > 0 {
			result.WriteString("  " + pterm.NewStyle(pterm.FgGray).Sprint("["+strings.Join(row.Groups, ", ")+"]"))
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error with its structured details, most
// importantly the captured diagnostic output of failed git runs.
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s",
		pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(err.Error())))

	details := errors.GetErrorDetails(err)
	for _, key := range sortedDetailKeys(details) {
		result.WriteString(fmt.Sprintf("\n    %s: %v", key, details[key]))
	}
	return result.String()
}

// PlainRenderer implements Renderer with plain text output (no
// styling), for non-terminal destinations.
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

func (r *PlainRenderer) RenderSyncReport(changes []FlavorChange) string {
	if len(changes) == 0 {
		return "No flavors declared."
	}

	var result strings.Builder
	for _, c := range changes {
		result.WriteString(fmt.Sprintf("  %-8s %s %s", string(c.Status), c.Name, c.Version))
		if c.Status == StatusUpdated && c.Previous != "" {
			result.WriteString(fmt.Sprintf(" (was %s)", c.Previous))
		}
		result.WriteString("\n")
	}
	result.WriteString("\n" + SummarizeChanges(changes) + "\n")
	return strings.TrimRight(result.String(), "\n")
}

func (r *PlainRenderer) RenderFlavorList(rows []FlavorRow) string {
	if len(rows) == 0 {
		return "No flavors declared."
	}

	nameWidth, constraintWidth := columnWidths(rows)

	var result strings.Builder
	for _, row := range rows {
		version := row.Version
		if version == "" {
			version = "unlocked"
		}
		var state string
		switch {
		case row.Stale:
			state = "not declared"
		case row.Deployed:
			state = "deployed"
		default:
			state = "not deployed"
		}

		result.WriteString(fmt.Sprintf("  %-*s  %-*s  %-8s  %s",
			nameWidth, row.Name, constraintWidth, row.Constraint, version, state))
		if len(row.Groups) > 0 {
			result.WriteString("  [" + strings.Join(row.Groups, ", ") + "]")
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var result strings.Builder
	result.WriteString("Error: " + err.Error())
	details := errors.GetErrorDetails(err)
	for _, key := range sortedDetailKeys(details) {
		result.WriteString(fmt.Sprintf("\n    %s: %v", key, details[key]))
	}
	return result.String()
}

func columnWidths(rows []FlavorRow) (name, constraint int) {
	for _, row := range rows {
		if len(row.Name) > name {
			name = len(row.Name)
		}
		if len(row.Constraint) > constraint {
			constraint = len(row.Constraint)
		}
	}
	return name, constraint
}

func sortedDetailKeys(details map[string]interface{}) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
