package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver maps template image paths to files under a source root.
type Resolver struct{}

var _ ports.SourceResolver = (*Resolver)(nil)

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the absolute path of source under root.
// A leading slash is treated as relative to root. Paths escaping root are
// rejected with ErrSourceOutsideRoot and missing files with ErrSourceNotFound.
func (r *Resolver) Resolve(root, source string) (string, error) {
	rel := filepath.FromSlash(strings.TrimLeft(source, "/"))
	path := filepath.Join(root, rel)

	within, err := filepath.Rel(root, path)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", domain.NewKindError(domain.StageValidate, domain.ErrSourceOutsideRoot,
			zerr.With(domain.ErrSourceOutsideRoot, "path", source))
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", domain.NewPipelineError(domain.StageResolve, source, zerr.With(domain.ErrSourceNotFound, "path", path))
		}
		return "", domain.NewPipelineError(domain.StageResolve, source, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path))
	}
	if info.IsDir() {
		return "", domain.NewPipelineError(domain.StageResolve, source, zerr.With(domain.ErrSourceNotFound, "path", path))
	}

	return path, nil
}
