package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrValidation is returned when an image invocation is rejected before any work is done.
	ErrValidation = zerr.New("invalid image invocation")

	// ErrSourceNotFound is returned when the source image does not exist under the source root.
	ErrSourceNotFound = zerr.New("source image not found")

	// ErrSourceOutsideRoot is returned when a source path escapes the source root.
	ErrSourceOutsideRoot = zerr.New("source image is outside the source root")

	// ErrDecode is returned when the source container is unsupported or corrupt.
	ErrDecode = zerr.New("failed to decode source image")

	// ErrUnsupportedFormat is returned when no encoder is registered for a target format.
	ErrUnsupportedFormat = zerr.New("unsupported target format")

	// ErrEncode is returned when an encoder fails.
	ErrEncode = zerr.New("failed to encode derivative")

	// ErrPersistence is returned when a derivative or the index cannot be written.
	ErrPersistence = zerr.New("failed to persist derivative")

	// ErrInvalidMatrix is returned when the format/width matrix cannot produce derivatives.
	ErrInvalidMatrix = zerr.New("invalid format/width matrix")

	// ErrIndexCorrupt is returned when the derivative index cannot be decoded.
	ErrIndexCorrupt = zerr.New("derivative index is corrupt")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find srcset.yaml")

	// ErrPageRenderFailed is returned when a page template fails to render.
	ErrPageRenderFailed = zerr.New("failed to render page")

	// ErrDataLoadFailed is returned when the template data file cannot be loaded.
	ErrDataLoadFailed = zerr.New("failed to load template data")

	// ErrCleanFailed is returned when the asset root cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean asset root")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch sources")
)

// Stage names the pipeline step that produced an error.
type Stage string

const (
	// StageValidate covers argument validation.
	StageValidate Stage = "validate"
	// StageResolve covers source path resolution.
	StageResolve Stage = "resolve"
	// StageDecode covers reading and decoding the source.
	StageDecode Stage = "decode"
	// StageEncode covers scaling and encoding derivatives.
	StageEncode Stage = "encode"
	// StagePersist covers writing derivatives and the index.
	StagePersist Stage = "persist"
)

// PipelineError reports a failure of one image invocation.
// Kind is the sentinel the failure matches with errors.Is; it defaults to the
// sentinel of the stage.
type PipelineError struct {
	Stage  Stage
	Source string
	Kind   error
	Err    error
}

// NewPipelineError wraps err with the stage and source it occurred in.
// If err already carries a PipelineError, its stage and kind are kept and the
// source is filled in when missing.
func NewPipelineError(stage Stage, source string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		if pe.Source != "" || source == "" {
			return err
		}
		cp := *pe
		cp.Source = source
		return &cp
	}
	return &PipelineError{Stage: stage, Source: source, Kind: stage.Sentinel(), Err: err}
}

// NewKindError is like NewPipelineError with an explicit kind.
func NewKindError(stage Stage, kind error, err error) error {
	return &PipelineError{Stage: stage, Kind: kind, Err: err}
}

// Sentinel returns the error kind a stage reports by default.
func (s Stage) Sentinel() error {
	switch s {
	case StageValidate:
		return ErrValidation
	case StageResolve:
		return ErrSourceNotFound
	case StageDecode:
		return ErrDecode
	case StageEncode:
		return ErrEncode
	case StagePersist:
		return ErrPersistence
	default:
		return nil
	}
}

func (e *PipelineError) Error() string {
	if e.Source == "" {
		return string(e.Stage) + ": " + e.Err.Error()
	}
	return string(e.Stage) + " " + e.Source + ": " + e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Message implements the message interface used by the logger to walk error chains.
func (e *PipelineError) Message() string {
	if e.Source == "" {
		return string(e.Stage) + " failed"
	}
	return string(e.Stage) + " failed for " + e.Source
}

// Is matches the kind of the error, so callers can test for a sentinel
// regardless of how the cause was wrapped.
func (e *PipelineError) Is(target error) bool {
	kind := e.Kind
	if kind == nil {
		kind = e.Stage.Sentinel()
	}
	return kind != nil && target == kind
}

// StageOf returns the stage of a PipelineError in err's chain.
func StageOf(err error) (Stage, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage, true
	}
	return "", false
}
