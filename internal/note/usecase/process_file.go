package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inkscan/internal/model"
	"inkscan/internal/note"
)

// ProcessFile reads a page image from disk and runs it through the
// pipeline. The folder monitor uses this as its per-file processor.
func (uc *implUseCase) ProcessFile(ctx context.Context, path string) (note.ProcessOutput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		uc.l.Errorf(ctx, "note.usecase.ProcessFile.ReadFile: %v", err)
		return note.ProcessOutput{}, fmt.Errorf("read scan %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	sc := model.Scope{
		UserID: "monitor",
		Source: string(model.ScanSourceMonitor),
	}

	return uc.ProcessImage(ctx, sc, note.ProcessImageInput{
		Title:      strings.TrimSuffix(filepath.Base(path), ext),
		MIMEType:   mimeFromExt(ext),
		Data:       base64.StdEncoding.EncodeToString(raw),
		SourcePath: path,
	})
}
