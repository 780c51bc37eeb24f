// Package cas implements the content-addressed derivative store.
package cas

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DerivativeStore = (*Store)(nil)

// Options configures a Store.
type Options struct {
	// AssetRoot is the flat output directory of derivatives.
	AssetRoot string
	// Matrix is the format/width matrix every source is expanded with.
	Matrix domain.Matrix
	// Workers bounds concurrent generate-and-persist sequences. Zero means automatic.
	Workers int
}

// Store memoizes derivative sets by fingerprint for the lifetime of one build.
// Concurrent requests for one fingerprint share a single generation and
// distinct fingerprints are generated by at most Workers goroutines at a time,
// admitted in FIFO order.
type Store struct {
	root    string
	matrix  domain.Matrix
	version string

	generator     ports.Generator
	codecs        ports.Codecs
	fingerprinter ports.Fingerprinter
	tracer        ports.Tracer
	index         *Index

	sem   *semaphore.Weighted
	group singleflight.Group

	mu    sync.Mutex
	sets  map[domain.Fingerprint]*domain.DerivativeSet
	stats domain.StoreStats
}

// NewStore creates a Store writing below opts.AssetRoot.
// An unreadable index is discarded and reported through logger.
func NewStore(
	opts Options,
	generator ports.Generator,
	codecs ports.Codecs,
	fingerprinter ports.Fingerprinter,
	tracer ports.Tracer,
	logger ports.Logger,
) (*Store, error) {
	matrix := opts.Matrix.Normalize()
	if err := matrix.Validate(); err != nil {
		return nil, err
	}

	root := filepath.Clean(opts.AssetRoot)
	version := matrix.Version()

	index, err := LoadIndex(domain.IndexPath(root), version)
	if err != nil && logger != nil {
		logger.Warn("ignoring unreadable derivative index: " + err.Error())
	}

	return &Store{
		root:          root,
		matrix:        matrix,
		version:       version,
		generator:     generator,
		codecs:        codecs,
		fingerprinter: fingerprinter,
		tracer:        tracer,
		index:         index,
		sem:           semaphore.NewWeighted(int64(ResolveWorkers(opts.Workers))),
		sets:          make(map[domain.Fingerprint]*domain.DerivativeSet),
	}, nil
}

// Root returns the asset root of the store.
func (s *Store) Root() string {
	return s.root
}

// MatrixVersion returns the version of the matrix the store was built with.
func (s *Store) MatrixVersion() string {
	return s.version
}

// GetOrCreate returns the derivative set of the source image at sourcePath.
// The returned set is shared between callers and must not be modified.
func (s *Store) GetOrCreate(ctx context.Context, sourcePath string) (*domain.DerivativeSet, error) {
	ctx, span := s.tracer.Start(ctx, domain.SpanImage, ports.WithAttribute(domain.AttrSource, sourcePath))
	defer span.End()

	set, outcome, err := s.getOrCreate(ctx, sourcePath)
	s.record(outcome, set, err)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute(domain.AttrOutcome, string(outcome))
	span.SetAttribute(domain.AttrFingerprint, set.Source.Fingerprint.Short())
	return set, nil
}

func (s *Store) getOrCreate(ctx context.Context, sourcePath string) (*domain.DerivativeSet, domain.SetOutcome, error) {
	src, specs, err := s.plan(sourcePath)
	if err != nil {
		return nil, domain.OutcomeFailed, err
	}

	if set, ok := s.lookup(src.Fingerprint); ok {
		return set, domain.OutcomeShared, nil
	}

	type result struct {
		set     *domain.DerivativeSet
		outcome domain.SetOutcome
	}

	// shared from Do is also true for the caller that ran the function, so
	// the leader is tracked separately.
	leader := false
	v, err, _ := s.group.Do(src.Fingerprint.String(), func() (any, error) {
		leader = true
		if set, ok := s.lookup(src.Fingerprint); ok {
			return result{set, domain.OutcomeShared}, nil
		}

		if set := s.warm(src, specs); set != nil {
			s.remember(set)
			return result{set, domain.OutcomeCached}, nil
		}

		set, err := s.generate(ctx, src, specs)
		if err != nil {
			return nil, err
		}
		s.remember(set)
		return result{set, domain.OutcomeGenerated}, nil
	})
	if err != nil {
		return nil, domain.OutcomeFailed, err
	}

	r, _ := v.(result)
	if !leader {
		return r.set, domain.OutcomeShared, nil
	}
	return r.set, r.outcome, nil
}

// plan reads the source, reads its dimensions and expands the matrix for it.
// Nothing is decoded beyond the container header.
func (s *Store) plan(sourcePath string) (*domain.SourceImage, []domain.TransformSpec, error) {
	//nolint:gosec // Path is resolved under the source root by the caller
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil, domain.NewPipelineError(domain.StageResolve, sourcePath,
				zerr.With(domain.ErrSourceNotFound, "path", sourcePath))
		}
		return nil, nil, domain.NewPipelineError(domain.StageDecode, sourcePath,
			zerr.With(zerr.Wrap(err, "failed to read source image"), "path", sourcePath))
	}

	cfg, container, err := s.codecs.DecodeConfig(data)
	if err != nil {
		return nil, nil, domain.NewPipelineError(domain.StageDecode, sourcePath, err)
	}

	specs := s.matrix.Specs(cfg.Width, cfg.Height)
	fp := s.fingerprinter.Fingerprint(data, s.version, specs)
	stem := domain.FileStem(sourcePath)
	for i := range specs {
		specs[i].FileName = domain.DerivativeName(stem, s.fingerprinter.DerivativeHash(fp, specs[i]), specs[i].Format)
	}

	return &domain.SourceImage{
		Path:        sourcePath,
		Stem:        stem,
		Data:        data,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      container,
		Fingerprint: fp,
	}, specs, nil
}

// warm returns the set described by specs if every planned file already
// exists in the asset root, or nil if anything is missing. Sizes come from the
// index when it recorded this exact set and from the file system otherwise.
func (s *Store) warm(src *domain.SourceImage, specs []domain.TransformSpec) *domain.DerivativeSet {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.FileName
	}

	sizes, present := stat(s.root, names)
	if !present {
		return nil
	}

	if indexed, ok := s.index.Get(src.Fingerprint); ok && matches(indexed, specs) {
		set := *indexed
		set.Source = sourceRef(src)
		return &set
	}

	set := &domain.DerivativeSet{
		Source:      sourceRef(src),
		Derivatives: make([]domain.Derivative, len(specs)),
	}
	for i, spec := range specs {
		set.Derivatives[i] = domain.Derivative{
			Format:   spec.Format,
			Width:    spec.Width,
			Height:   spec.Height,
			FileName: spec.FileName,
			Size:     sizes[i],
		}
	}
	s.index.Put(set)
	return set
}

// generate runs the generator and persists the result under the worker semaphore.
func (s *Store) generate(
	ctx context.Context,
	src *domain.SourceImage,
	specs []domain.TransformSpec,
) (*domain.DerivativeSet, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	genCtx, genSpan := s.tracer.Start(ctx, domain.SpanGenerate, ports.WithAttribute(domain.AttrSource, src.Path))
	set, err := s.generator.Generate(genCtx, src, specs)
	if err != nil {
		genSpan.RecordError(err)
		genSpan.End()
		return nil, domain.NewPipelineError(domain.StageEncode, src.Path, err)
	}
	genSpan.SetAttribute(domain.AttrDerivatives, len(set.Derivatives))
	genSpan.SetAttribute(domain.AttrBytes, set.TotalSize())
	genSpan.End()

	set.Source = sourceRef(src)

	_, persistSpan := s.tracer.Start(ctx, domain.SpanPersist, ports.WithAttribute(domain.AttrSource, src.Path))
	defer persistSpan.End()

	written, err := persist(s.root, set)
	persistSpan.SetAttribute(domain.AttrWritten, written)
	if err != nil {
		persistSpan.RecordError(err)
		return nil, domain.NewPipelineError(domain.StagePersist, src.Path, err)
	}

	s.index.Put(set)
	return set, nil
}

// Prune forgets index entries of sources no request of this store asked for.
// Call it only after a build that requested every source still in use.
func (s *Store) Prune() {
	s.index.Prune()
}

// Flush writes the derivative index.
func (s *Store) Flush() error {
	if err := s.index.Save(); err != nil {
		return domain.NewPipelineError(domain.StagePersist, domain.IndexPath(s.root), err)
	}
	return nil
}

// Stats returns the counters collected so far.
func (s *Store) Stats() domain.StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Store) lookup(fp domain.Fingerprint) (*domain.DerivativeSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[fp]
	return set, ok
}

func (s *Store) remember(set *domain.DerivativeSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.Source.Fingerprint] = set
}

func (s *Store) record(outcome domain.SetOutcome, set *domain.DerivativeSet, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.stats.Failed++
		return
	}
	switch outcome {
	case domain.OutcomeGenerated:
		s.stats.Generated++
		s.stats.Encodes += len(set.Derivatives)
		s.stats.Bytes += set.TotalSize()
	case domain.OutcomeCached:
		s.stats.Cached++
	case domain.OutcomeShared:
		s.stats.Shared++
	}
}

func sourceRef(src *domain.SourceImage) domain.SourceRef {
	return domain.SourceRef{
		Path:        src.Path,
		Width:       src.Width,
		Height:      src.Height,
		Format:      src.Format,
		Fingerprint: src.Fingerprint,
	}
}

// matches reports whether an indexed set was produced from exactly these specs.
func matches(set *domain.DerivativeSet, specs []domain.TransformSpec) bool {
	if len(set.Derivatives) != len(specs) {
		return false
	}
	for i, spec := range specs {
		d := set.Derivatives[i]
		if d.Format != spec.Format || d.Width != spec.Width || d.FileName != spec.FileName {
			return false
		}
	}
	return true
}
