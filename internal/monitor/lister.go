package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FolderLister lists the regular files directly inside one folder.
// Subdirectories are not descended into.
type FolderLister struct {
	dir string
}

func NewFolderLister(dir string) *FolderLister {
	return &FolderLister{dir: dir}
}

// List returns candidates ordered oldest first, ties broken by name, so
// pages scanned in sequence are processed in sequence. ModTime stands in
// for creation time, which is not portably available; for files dropped
// into the folder the two coincide.
func (fl *FolderLister) List(ctx context.Context) ([]Candidate, error) {
	entries, err := os.ReadDir(fl.dir)
	if err != nil {
		return nil, fmt.Errorf("read watch folder %s: %w", fl.dir, err)
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// File vanished between ReadDir and Stat.
			continue
		}
		candidates = append(candidates, Candidate{
			Path:      filepath.Join(fl.dir, e.Name()),
			Name:      e.Name(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].Name < candidates[j].Name
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	return candidates, nil
}
