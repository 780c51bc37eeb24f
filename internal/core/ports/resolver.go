package ports

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// SourceResolver maps a template image path to a file below a source root.
type SourceResolver interface {
	// Resolve returns the absolute path of source under root. Paths escaping
	// root fail the validate stage and missing files the resolve stage.
	Resolve(root, source string) (string, error)
}
