// pkg/testutil/fake_indexer.go
// PURPOSE: Recording helptags.Indexer double.

package testutil

import (
	"context"
	"sync"
)

// RecordingIndexer implements helptags.Indexer, recording the
// directories it was asked to index. An optional Err makes every call
// fail, for exercising the best-effort handling.
type RecordingIndexer struct {
	mu   sync.Mutex
	Err  error
	dirs []string
}

func (ix *RecordingIndexer) Rebuild(ctx context.Context, dir string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dirs = append(ix.dirs, dir)
	return ix.Err
}

// Indexed returns the directories indexed so far, in call order.
func (ix *RecordingIndexer) Indexed() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return append([]string(nil), ix.dirs...)
}
