// Package style renders flavor's user-facing output: install and
// upgrade reports, the declared-flavor listing, and error messages.
// All styling goes through pterm so output degrades cleanly on dumb
// terminals.
package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Status classifies what happened to one flavor during a run.
type Status string

const (
	// StatusAdded marks a flavor locked for the first time.
	StatusAdded Status = "added"

	// StatusKept marks a flavor whose prior locked version was reused.
	StatusKept Status = "kept"

	// StatusUpdated marks a flavor whose locked version changed.
	StatusUpdated Status = "updated"

	// StatusSkipped marks a flavor excluded from deployment.
	StatusSkipped Status = "skipped"

	// StatusError marks a flavor whose step failed.
	StatusError Status = "error"
)

// StatusStyle returns the pterm style used for a status label.
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusAdded:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusUpdated:
		return pterm.NewStyle(pterm.FgCyan)
	case StatusKept:
		return pterm.NewStyle(pterm.FgGray)
	case StatusSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// FlavorChange is one row of an install or upgrade report.
type FlavorChange struct {
	Name     string
	Version  string
	Previous string // prior locked version when Status is StatusUpdated
	Status   Status
}

// FlavorRow is one row of the flavor listing: the joined view of
// manifest, lock, and deployment tree.
type FlavorRow struct {
	Name       string
	Constraint string
	Version    string // empty while unlocked
	Groups     []string
	Deployed   bool
	Stale      bool // locked but no longer declared in the manifest
}

// SummarizeChanges renders the closing count line of a report, e.g.
// "2 added, 1 updated, 3 kept". Statuses with no occurrences are
// omitted; an empty change set reads "nothing to do".
func SummarizeChanges(changes []FlavorChange) string {
	counts := make(map[Status]int, len(changes))
	for _, c := range changes {
		counts[c.Status]++
	}

	var parts []string
	for _, status := range []Status{StatusAdded, StatusUpdated, StatusKept, StatusSkipped, StatusError} {
		if n := counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}
