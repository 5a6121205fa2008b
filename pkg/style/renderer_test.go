// Test Type: Unit Test
// Description: Report, listing, and error rendering for both the
// terminal and plain renderers

package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/flavor/pkg/errors"
)

func sampleChanges() []FlavorChange {
	return []FlavorChange{
		{Name: "kana/vim-altr", Version: "1.3.0", Status: StatusAdded},
		{Name: "thinca/vim-quickrun", Version: "0.6.0", Previous: "0.5.2", Status: StatusUpdated},
		{Name: "Align", Version: "1.0.0", Status: StatusKept},
	}
}

func TestRenderSyncReport(t *testing.T) {
	renderers := map[string]Renderer{
		"terminal": NewTerminalRenderer(),
		"plain":    NewPlainRenderer(),
	}

	for name, r := range renderers {
		t.Run(name, func(t *testing.T) {
			out := r.RenderSyncReport(sampleChanges())

			assert.Contains(t, out, "kana/vim-altr")
			assert.Contains(t, out, "1.3.0")
			assert.Contains(t, out, "(was 0.5.2)")
			assert.Contains(t, out, "1 added, 1 updated, 1 kept")

			// Report order follows the given change order.
			assert.Less(t,
				strings.Index(out, "kana/vim-altr"),
				strings.Index(out, "thinca/vim-quickrun"))
		})
	}
}

func TestRenderSyncReportEmpty(t *testing.T) {
	out := NewPlainRenderer().RenderSyncReport(nil)
	assert.Equal(t, "No flavors declared.", out)
}

func TestRenderFlavorList(t *testing.T) {
	rows := []FlavorRow{
		{Name: "kana/vim-altr", Constraint: ">= 1.2", Version: "1.3.0", Groups: []string{"default"}, Deployed: true},
		{Name: "kana/vim-vspec", Constraint: ">= 1.0", Version: "", Groups: []string{"testing"}},
		{Name: "old/plugin", Constraint: ">= 0", Version: "0.1.0", Stale: true},
	}

	for name, r := range map[string]Renderer{
		"terminal": NewTerminalRenderer(),
		"plain":    NewPlainRenderer(),
	} {
		t.Run(name, func(t *testing.T) {
			out := r.RenderFlavorList(rows)

			assert.Contains(t, out, "kana/vim-altr")
			assert.Contains(t, out, ">= 1.2")
			assert.Contains(t, out, "deployed")
			assert.Contains(t, out, "unlocked")
			assert.Contains(t, out, "not declared")
			assert.Contains(t, out, "[testing]")
		})
	}
}

func TestRenderErrorIncludesDetails(t *testing.T) {
	err := errors.New(errors.ErrRepoAccess, "cloning vim-altr").
		WithDetail("output", "fatal: repository not found").
		WithDetail("uri", "https://github.com/kana/vim-altr.git")

	for name, r := range map[string]Renderer{
		"terminal": NewTerminalRenderer(),
		"plain":    NewPlainRenderer(),
	} {
		t.Run(name, func(t *testing.T) {
			out := r.RenderError(err)

			assert.Contains(t, out, "REPO_ACCESS")
			assert.Contains(t, out, "cloning vim-altr")
			assert.Contains(t, out, "fatal: repository not found")

			// Details render in sorted key order.
			assert.Less(t, strings.Index(out, "output:"), strings.Index(out, "uri:"))
		})
	}
}

func TestRenderErrorNil(t *testing.T) {
	assert.Empty(t, NewTerminalRenderer().RenderError(nil))
	assert.Empty(t, NewPlainRenderer().RenderError(nil))
}
