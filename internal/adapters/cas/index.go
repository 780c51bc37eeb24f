package cas

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/zerr"
)

// indexVersion is bumped when the on-disk layout of the index changes.
const indexVersion = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Core deterministic encoding keeps the index byte-identical across runs.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cas: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("cas: CBOR decoder initialization failed: " + err.Error())
	}
}

type indexFile struct {
	Version int                              `cbor:"1,keyasint"`
	Matrix  string                           `cbor:"2,keyasint"`
	Sets    map[string]*domain.DerivativeSet `cbor:"3,keyasint"`
}

// Index records the derivative sets present in an asset root, so a warm build
// can report file sizes without touching every file.
type Index struct {
	path   string
	matrix string

	mu      sync.RWMutex
	sets    map[string]*domain.DerivativeSet
	touched map[string]bool
	dirty   bool
}

// LoadIndex reads the index at path. A missing file yields an empty index.
// Entries written under a different matrix version are dropped.
func LoadIndex(path, matrixVersion string) (*Index, error) {
	idx := &Index{
		path:   path,
		matrix: matrixVersion,
		sets:    make(map[string]*domain.DerivativeSet),
		touched: make(map[string]bool),
	}

	//nolint:gosec // Path is derived from the configured asset root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return idx, nil
		}
		return idx, zerr.With(zerr.Wrap(err, domain.ErrIndexCorrupt.Error()), "path", path)
	}

	var f indexFile
	if err := decMode.Unmarshal(data, &f); err != nil {
		return idx, zerr.With(zerr.Wrap(err, domain.ErrIndexCorrupt.Error()), "path", path)
	}

	if f.Version != indexVersion || f.Matrix != matrixVersion {
		idx.dirty = true
		return idx, nil
	}

	for k, set := range f.Sets {
		if set != nil {
			idx.sets[k] = set
		}
	}
	return idx, nil
}

// Get returns the recorded set of a fingerprint and marks it as in use.
func (i *Index) Get(fp domain.Fingerprint) (*domain.DerivativeSet, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	key := fp.String()
	set, ok := i.sets[key]
	if ok {
		i.touched[key] = true
	}
	return set, ok
}

// Put records a set. Encoded buffers are not stored.
func (i *Index) Put(set *domain.DerivativeSet) {
	i.mu.Lock()
	defer i.mu.Unlock()
	key := set.Source.Fingerprint.String()
	i.sets[key] = set
	i.touched[key] = true
	i.dirty = true
}

// Prune drops every set that was neither read nor written since the index
// was loaded and returns how many were dropped.
func (i *Index) Prune() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	dropped := 0
	for key := range i.sets {
		if !i.touched[key] {
			delete(i.sets, key)
			dropped++
		}
	}
	if dropped > 0 {
		i.dirty = true
	}
	return dropped
}

// Len returns the number of recorded sets.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.sets)
}

// Save atomically writes the index if it changed since it was loaded.
func (i *Index) Save() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.dirty {
		return nil
	}

	data, err := encMode.Marshal(indexFile{
		Version: indexVersion,
		Matrix:  i.matrix,
		Sets:    i.sets,
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}

	if err := os.MkdirAll(filepath.Dir(i.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", i.path)
	}

	if _, err := writeAtomic(i.path, data, true); err != nil {
		return err
	}

	i.dirty = false
	return nil
}
