// Package deploy materializes locked flavors into the editor's
// runtime tree. A deployment wipes the flavors subtree, regenerates
// the bootstrap script, and checks out every flavor's locked version
// in order.
package deploy

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/flavor"
	"github.com/arthur-debert/flavor/pkg/helptags"
	"github.com/arthur-debert/flavor/pkg/logging"
	"github.com/arthur-debert/flavor/pkg/vcs"
)

var log = logging.GetLogger("deploy")

const (
	// FlavorsSubdir is the directory under the vimfiles root holding
	// every deployed flavor and the bootstrap script.
	FlavorsSubdir = "flavors"

	// BootstrapFileName is the generated script users source from their
	// vimrc.
	BootstrapFileName = "bootstrap.vim"
)

// Options carries the inputs of one deployment run.
type Options struct {
	// Flavors to deploy, in declaration order. Each must carry a locked
	// version.
	Flavors []*flavor.Flavor

	// VimfilesRoot is the editor runtime directory, typically ~/.vim.
	VimfilesRoot string

	// CacheRoot holds the per-flavor repository caches checkouts come
	// from.
	CacheRoot string

	// Git materializes locked versions out of the caches.
	Git vcs.Client

	// Indexer rebuilds help indices after each checkout, best-effort.
	Indexer helptags.Indexer

	// FS performs the tree wipe and the bootstrap write.
	FS filesystem.FS

	// Without lists group names excluded from this deployment. A flavor
	// deploys unless every group it belongs to is excluded. Exclusion
	// never touches reconciliation or the lock.
	Without []string
}

// Deploy wipes the flavors subtree under the vimfiles root and
// rebuilds it: bootstrap script first, then one checkout per flavor in
// order. The first checkout failure aborts the run; the tree stays
// incomplete until a later run succeeds.
func Deploy(ctx context.Context, opts Options) error {
	if opts.VimfilesRoot == "" || opts.Git == nil || opts.Indexer == nil || opts.FS == nil || opts.CacheRoot == "" {
		return errors.New(errors.ErrInvalidInput,
			"deployment needs a vimfiles root, a cache root, a git client, an indexer, and a filesystem")
	}
	defer logging.LogOperationStart(log, "deploy")()

	selected := Select(opts.Flavors, opts.Without)
	flavorsDir := filepath.Join(opts.VimfilesRoot, FlavorsSubdir)

	log.Info().
		Str("target", flavorsDir).
		Int("flavors", len(selected)).
		Int("excluded", len(opts.Flavors)-len(selected)).
		Msg("Deploying flavors")

	if err := opts.FS.RemoveAll(flavorsDir); err != nil {
		return errors.Wrapf(err, errors.ErrDeployment, "wiping %s", flavorsDir)
	}
	if err := opts.FS.MkdirAll(flavorsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDeployment, "creating %s", flavorsDir)
	}

	script := BootstrapScript(flavorsDir, selected)
	bootstrapPath := filepath.Join(flavorsDir, BootstrapFileName)
	if err := opts.FS.WriteFile(bootstrapPath, []byte(script), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrDeployment, "writing %s", bootstrapPath)
	}

	for _, fl := range selected {
		outputPath := filepath.Join(flavorsDir, fl.DirName())
		if err := fl.CheckoutTo(ctx, opts.Git, opts.Indexer, opts.CacheRoot, outputPath); err != nil {
			return err
		}
	}
	return nil
}

// BootstrapScript renders the vimscript that splices the deployed
// directories into 'runtimepath'. The user's own directories stay at
// the outer edges, flavor directories load in deployment order between
// them, and after/ directories layer in reverse order next to the
// user's own after directory. The directory list is embedded so the
// load order never depends on filesystem enumeration.
func BootstrapScript(flavorsDir string, flavors []*flavor.Flavor) string {
	var b strings.Builder
	b.WriteString("\" Generated by flavor. Do not edit: every install rewrites this file.\n")
	b.WriteString("\" Source this from your vimrc to wire deployed plugins into\n")
	b.WriteString("\" 'runtimepath'.\n")
	b.WriteString("\n")
	b.WriteString("function! s:bootstrap() abort\n")

	if len(flavors) == 0 {
		b.WriteString("  let dirs = []\n")
	} else {
		b.WriteString("  let dirs = [\n")
		for _, fl := range flavors {
			dir := filepath.ToSlash(filepath.Join(flavorsDir, fl.DirName()))
			b.WriteString("  \\   '" + escapeVimString(dir) + "',\n")
		}
		b.WriteString("  \\ ]\n")
	}

	b.WriteString(`  let rtp = split(&runtimepath, ',')
  let front = []
  for dir in dirs
    if isdirectory(dir)
      call add(front, dir)
    endif
  endfor
  let back = []
  for dir in reverse(copy(dirs))
    if isdirectory(dir . '/after')
      call add(back, dir . '/after')
    endif
  endfor
  if len(rtp) < 2
    let &runtimepath = join(rtp[:0] + front + back, ',')
  else
    let &runtimepath = join(rtp[:0] + front + rtp[1:-2] + back + rtp[-1:], ',')
  endif
endfunction

call s:bootstrap()
`)
	return b.String()
}

// escapeVimString escapes a value for a single-quoted vimscript
// string, where a quote is written as two quotes.
func escapeVimString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Select drops flavors whose every group is excluded. A flavor in at
// least one surviving group still deploys.
func Select(flavors []*flavor.Flavor, without []string) []*flavor.Flavor {
	if len(without) == 0 {
		return flavors
	}
	excluded := make(map[string]bool, len(without))
	for _, g := range without {
		excluded[g] = true
	}

	selected := make([]*flavor.Flavor, 0, len(flavors))
	for _, fl := range flavors {
		if deployable(fl, excluded) {
			selected = append(selected, fl)
		} else {
			log.Debug().Str("flavor", fl.Name).Strs("groups", fl.Groups).Msg("Excluded from deployment")
		}
	}
	return selected
}

func deployable(fl *flavor.Flavor, excluded map[string]bool) bool {
	for _, g := range fl.Groups {
		if !excluded[g] {
			return true
		}
	}
	return len(fl.Groups) == 0
}
