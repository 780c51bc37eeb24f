// Package config loads srcset.yaml into a domain.Project.
package config

import (
	"path/filepath"
	"slices"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader for srcset.yaml.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a Loader on the real filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: OSFS{}}
}

// Load resolves the project configuration. If path names a file it is loaded
// directly. Otherwise srcset.yaml is searched in path and its parents.
func (l *Loader) Load(path string) (*domain.Project, error) {
	configPath, err := l.find(path)
	if err != nil {
		return nil, err
	}

	var file Srcsetfile
	if err := l.readYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return l.resolve(configPath, &file)
}

func (l *Loader) find(path string) (string, error) {
	path = filepath.Clean(path)
	if info, err := l.FS.Stat(path); err == nil && info.Mode().IsRegular() {
		return path, nil
	}

	for dir := path; ; {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", path)
}

func (l *Loader) readYAML(path string, target *Srcsetfile) error {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func (l *Loader) resolve(configPath string, file *Srcsetfile) (*domain.Project, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "version", file.Version), "supported", SupportedVersion)
	}

	root := filepath.Dir(configPath)
	if !filepath.IsAbs(root) {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}

	matrix, err := l.matrix(&file.Images)
	if err != nil {
		return nil, err
	}

	if file.Images.Workers < 0 {
		return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "reason", "workers must not be negative"), "workers", file.Images.Workers)
	}

	project := &domain.Project{
		Root:       root,
		SourceRoot: resolvePath(root, file.Images.Source, domain.DefaultSourceDir),
		AssetRoot:  resolvePath(root, file.Images.Output, domain.DefaultOutputDir),
		URLPath:    domain.NormalizeURLPath(file.Images.URLPath),
		Matrix:     matrix,
		Workers:    file.Images.Workers,
	}
	if file.Data != "" {
		project.DataFile = resolvePath(root, file.Data, "")
	}

	for i, dto := range file.Pages {
		if dto == nil || dto.Src == "" || dto.Out == "" {
			return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "reason", "page needs src and out"), "page", i)
		}
		page := domain.Page{Src: resolvePath(root, dto.Src, ""), Out: resolvePath(root, dto.Out, "")}
		if page.Src == page.Out {
			return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "reason", "page would overwrite its source"), "page", dto.Src)
		}
		project.Pages = append(project.Pages, page)
	}

	if len(project.Pages) == 0 && l.Logger != nil {
		l.Logger.Warn("no pages configured in " + domain.ConfigFileName)
	}

	return project, nil
}

// matrix overlays the configured formats, widths and qualities on the defaults.
func (l *Loader) matrix(dto *ImagesDTO) (domain.Matrix, error) {
	m := domain.DefaultMatrix()

	if len(dto.Formats) > 0 {
		m.Formats = make([]domain.Format, 0, len(dto.Formats))
		for _, name := range dto.Formats {
			f, ok := domain.ParseFormat(name)
			if !ok {
				return domain.Matrix{}, zerr.With(domain.ErrInvalidMatrix, "format", name)
			}
			m.Formats = append(m.Formats, f)
		}
	}

	if len(dto.Widths) > 0 {
		m.Widths = slices.Clone(dto.Widths)
	}

	for name, q := range dto.Quality {
		f, ok := domain.ParseFormat(name)
		if !ok {
			return domain.Matrix{}, zerr.With(domain.ErrInvalidMatrix, "format", name)
		}
		m.Quality[f] = q
	}

	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return domain.Matrix{}, err
	}
	return m, nil
}

func resolvePath(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(root, configured)
}
