package cas

import (
	"os"
	"path/filepath"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/zerr"
)

// writeAtomic writes data to path through a temp file in the same directory
// and a rename. Unless replace is set, an existing file at path is left
// untouched and reported as not written.
func writeAtomic(path string, data []byte, replace bool) (bool, error) {
	if !replace {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}

	// Another writer may have produced the same content-addressed file meanwhile.
	if !replace {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}

	success = true
	return true, nil
}

// persist writes every derivative of set below root and returns the number of
// files written. Encoded buffers are released as they are written.
func persist(root string, set *domain.DerivativeSet) (int, error) {
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", root)
	}

	written := 0
	for i := range set.Derivatives {
		d := &set.Derivatives[i]
		ok, err := writeAtomic(filepath.Join(root, d.FileName), d.Data, false)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
		d.Data = nil
	}
	return written, nil
}

// stat returns the sizes of the named files below root.
// ok is false as soon as one of them cannot be used, in which case the set is
// regenerated and persistence reports any real file system problem.
func stat(root string, names []string) ([]int64, bool) {
	sizes := make([]int64, len(names))
	for i, name := range names {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		sizes[i] = info.Size()
	}
	return sizes, true
}
