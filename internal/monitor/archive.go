package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	pkgLog "inkscan/pkg/log"
)

// Archiver moves processed files into an archive folder. A ULID suffix
// keeps names unique and sortable by processing time.
type Archiver struct {
	l   pkgLog.Logger
	dir string
}

func NewArchiver(l pkgLog.Logger, dir string) *Archiver {
	return &Archiver{l: l, dir: dir}
}

// Do moves path into the archive folder.
func (a *Archiver) Do(ctx context.Context, path string) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create archive folder %s: %w", a.dir, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	target := filepath.Join(a.dir, fmt.Sprintf("%s-%s%s", stem, ulid.Make().String(), ext))

	if err := os.Rename(path, target); err != nil {
		// The archive folder can live on another filesystem (e.g. a
		// synced volume); rename cannot cross mounts.
		if copyErr := copyAndRemove(path, target); copyErr != nil {
			return fmt.Errorf("archive %s: %w", path, copyErr)
		}
	}

	a.l.Infof(ctx, "monitor: archived %s -> %s", path, target)
	return nil
}

func copyAndRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
