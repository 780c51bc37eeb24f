package cas_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/srcset/internal/adapters/cas"
	"go.trai.ch/srcset/internal/adapters/codec"
	"go.trai.ch/srcset/internal/adapters/fs"
	"go.trai.ch/srcset/internal/adapters/telemetry"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeSource(t *testing.T, dir, name string, w, h int, seed uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: seed, G: uint8(x % 256), B: uint8(y % 256), A: 255}) //nolint:gosec // Bounded by modulo
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), domain.PrivateFilePerm))
	return path
}

func testMatrix() domain.Matrix {
	return domain.Matrix{
		Formats: []domain.Format{domain.FormatWebP, domain.FormatJPEG},
		Widths:  []int{40, 80},
		Quality: map[domain.Format]int{domain.FormatWebP: 75, domain.FormatJPEG: 80},
	}
}

// fakeGenerate produces one small buffer per spec without encoding anything.
func fakeGenerate(_ context.Context, _ *domain.SourceImage, specs []domain.TransformSpec) (*domain.DerivativeSet, error) {
	set := &domain.DerivativeSet{}
	for _, s := range specs {
		data := []byte(s.FileName)
		set.Derivatives = append(set.Derivatives, domain.Derivative{
			Format:   s.Format,
			Width:    s.Width,
			Height:   s.Height,
			FileName: s.FileName,
			Size:     int64(len(data)),
			Data:     data,
		})
	}
	return set, nil
}

func newStore(t *testing.T, root string, gen *mocks.MockGenerator, workers int) *cas.Store {
	t.Helper()
	store, err := cas.NewStore(cas.Options{
		AssetRoot: root,
		Matrix:    testMatrix(),
		Workers:   workers,
	}, gen, codec.NewDefaultRegistry(), fs.NewFingerprinter(), telemetry.NewNoOpTracer(), nil)
	require.NoError(t, err)
	return store
}

func TestStore_ConcurrentCallersShareOneGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := writeSource(t, t.TempDir(), "hero.png", 100, 50, 1)
	root := t.TempDir()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *domain.SourceImage, specs []domain.TransformSpec) (*domain.DerivativeSet, error) {
			time.Sleep(20 * time.Millisecond)
			return fakeGenerate(ctx, s, specs)
		}).Times(1)

	store := newStore(t, root, gen, 4)

	const callers = 16
	results := make([]*domain.DerivativeSet, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := store.GetOrCreate(context.Background(), src)
			assert.NoError(t, err)
			results[i] = set
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Same(t, results[0], r)
	}

	stats := store.Stats()
	assert.Equal(t, 1, stats.Generated)
	assert.Equal(t, callers-1, stats.Shared)
	assert.Equal(t, 4, stats.Encodes)
}

func TestStore_PersistsFlatContentAddressedFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := writeSource(t, t.TempDir(), "Hero Shot.png", 100, 50, 2)
	root := filepath.Join(t.TempDir(), "dist", "assets")

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeGenerate)

	store := newStore(t, root, gen, 1)
	set, err := store.GetOrCreate(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, set.Derivatives, 4)
	assert.Equal(t, src, set.Source.Path)
	assert.Equal(t, 100, set.Source.Width)
	assert.Equal(t, "png", set.Source.Format)

	for _, d := range set.Derivatives {
		assert.Nil(t, d.Data, "buffers must be released once persisted")
		assert.Regexp(t, `^Hero-Shot-[0-9a-f]{10}\.(webp|jpeg)$`, d.FileName)

		info, err := os.Stat(filepath.Join(root, d.FileName))
		require.NoError(t, err)
		assert.Equal(t, d.Size, info.Size())
		assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temp files may be left behind")
}

func TestStore_WarmCacheSkipsGenerator(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := writeSource(t, t.TempDir(), "hero.png", 100, 50, 3)
	root := t.TempDir()

	cold := mocks.NewMockGenerator(ctrl)
	cold.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeGenerate).Times(1)
	first := newStore(t, root, cold, 2)
	want, err := first.GetOrCreate(context.Background(), src)
	require.NoError(t, err)

	t.Run("Without Index", func(t *testing.T) {
		warm := mocks.NewMockGenerator(ctrl)
		store := newStore(t, root, warm, 2)

		got, err := store.GetOrCreate(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, want.Derivatives, got.Derivatives)
		assert.Equal(t, 1, store.Stats().Cached)
		assert.Zero(t, store.Stats().Encodes)
	})

	require.NoError(t, first.Flush())
	_, err = os.Stat(domain.IndexPath(root))
	require.NoError(t, err)

	t.Run("With Index", func(t *testing.T) {
		warm := mocks.NewMockGenerator(ctrl)
		store := newStore(t, root, warm, 2)

		got, err := store.GetOrCreate(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, want.Derivatives, got.Derivatives)
		assert.Equal(t, want.Source, got.Source)
	})

	t.Run("Missing File Regenerates", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(root, want.Derivatives[0].FileName)))

		again := mocks.NewMockGenerator(ctrl)
		again.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeGenerate).Times(1)
		store := newStore(t, root, again, 2)

		_, err := store.GetOrCreate(context.Background(), src)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(root, want.Derivatives[0].FileName))
	})
}

func TestStore_ExistingFilesAreNotOverwritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := writeSource(t, t.TempDir(), "hero.png", 100, 50, 4)
	root := t.TempDir()

	var planned []domain.TransformSpec
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *domain.SourceImage, specs []domain.TransformSpec) (*domain.DerivativeSet, error) {
			planned = specs
			// Simulate a concurrent writer finishing first.
			require.NoError(t, os.WriteFile(filepath.Join(root, specs[0].FileName), []byte("keep"), domain.FilePerm))
			return fakeGenerate(ctx, s, specs)
		})

	store := newStore(t, root, gen, 1)
	_, err := store.GetOrCreate(context.Background(), src)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, planned[0].FileName))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestStore_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	t.Run("Missing Source", func(t *testing.T) {
		store := newStore(t, t.TempDir(), mocks.NewMockGenerator(ctrl), 1)
		_, err := store.GetOrCreate(context.Background(), filepath.Join(dir, "missing.png"))
		require.ErrorIs(t, err, domain.ErrSourceNotFound)
		assert.Equal(t, 1, store.Stats().Failed)
	})

	t.Run("Corrupt Source", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.jpg")
		require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0x00}, domain.PrivateFilePerm))

		store := newStore(t, t.TempDir(), mocks.NewMockGenerator(ctrl), 1)
		_, err := store.GetOrCreate(context.Background(), path)
		require.ErrorIs(t, err, domain.ErrDecode)
		assert.Contains(t, err.Error(), "corrupt.jpg")
	})

	t.Run("Generator Error Keeps Kind", func(t *testing.T) {
		src := writeSource(t, dir, "unsupported.png", 100, 50, 5)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, domain.NewKindError(domain.StageEncode, domain.ErrUnsupportedFormat, errors.New("no encoder")))

		root := t.TempDir()
		store := newStore(t, root, gen, 1)
		_, err := store.GetOrCreate(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "unsupported.png")

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Persistence Failure", func(t *testing.T) {
		src := writeSource(t, dir, "blocked.png", 100, 50, 6)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeGenerate)

		root := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(root, []byte("not a directory"), domain.PrivateFilePerm))

		store := newStore(t, root, gen, 1)
		_, err := store.GetOrCreate(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrPersistence)
	})

	t.Run("Failure Is Not Memoized", func(t *testing.T) {
		src := writeSource(t, dir, "flaky.png", 100, 50, 7)
		gen := mocks.NewMockGenerator(ctrl)
		gomock.InOrder(
			gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("transient")),
			gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeGenerate),
		)

		store := newStore(t, t.TempDir(), gen, 1)
		_, err := store.GetOrCreate(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrEncode)

		_, err = store.GetOrCreate(context.Background(), src)
		require.NoError(t, err)
	})
}

func TestStore_WorkerBound(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	var inFlight, peak atomic.Int32
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *domain.SourceImage, specs []domain.TransformSpec) (*domain.DerivativeSet, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return fakeGenerate(ctx, s, specs)
		}).Times(6)

	store := newStore(t, t.TempDir(), gen, 2)

	var wg sync.WaitGroup
	for i := range 6 {
		src := writeSource(t, dir, "img"+string(rune('a'+i))+".png", 60, 30, uint8(10+i)) //nolint:gosec // Small loop index
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.GetOrCreate(context.Background(), src)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, 6, store.Stats().Generated)
}

func TestStore_CanceledWhileQueued(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	first := writeSource(t, dir, "first.png", 60, 30, 20)
	second := writeSource(t, dir, "second.png", 60, 30, 21)

	started := make(chan struct{})
	release := make(chan struct{})
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *domain.SourceImage, specs []domain.TransformSpec) (*domain.DerivativeSet, error) {
			close(started)
			<-release
			return fakeGenerate(ctx, s, specs)
		}).Times(1)

	store := newStore(t, t.TempDir(), gen, 1)

	done := make(chan error, 1)
	go func() {
		_, err := store.GetOrCreate(context.Background(), first)
		done <- err
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.GetOrCreate(ctx, second)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	require.NoError(t, <-done)
}

func TestStore_CorruptIndexIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Dir(domain.IndexPath(root)), domain.DirPerm))
	require.NoError(t, os.WriteFile(domain.IndexPath(root), []byte{0xff, 0x00, 0x13}, domain.PrivateFilePerm))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := cas.NewStore(cas.Options{AssetRoot: root, Matrix: testMatrix()},
		mocks.NewMockGenerator(ctrl), codec.NewDefaultRegistry(), fs.NewFingerprinter(), telemetry.NewNoOpTracer(), log)
	require.NoError(t, err)
}

func TestStore_InvalidMatrix(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := cas.NewStore(cas.Options{AssetRoot: t.TempDir()},
		mocks.NewMockGenerator(ctrl), codec.NewDefaultRegistry(), fs.NewFingerprinter(), telemetry.NewNoOpTracer(), nil)
	require.ErrorContains(t, err, "invalid format/width matrix")
}

func TestResolveWorkers(t *testing.T) {
	assert.Equal(t, 3, cas.ResolveWorkers(3))
	assert.GreaterOrEqual(t, cas.ResolveWorkers(0), 1)
	assert.GreaterOrEqual(t, cas.ResolveWorkers(-1), 1)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")

	written, err := cas.WriteAtomic(path, []byte("one"), false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = cas.WriteAtomic(path, []byte("two"), false)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = cas.WriteAtomic(path, []byte("three"), true)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}
