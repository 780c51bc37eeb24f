package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "srcset.yaml"

	// IndexDirName is the name of the metadata directory inside the asset root.
	IndexDirName = ".srcset"

	// IndexFileName is the name of the derivative index file.
	IndexFileName = "index.cbor"

	// DefaultSourceDir is the default source root, relative to the config file.
	DefaultSourceDir = "src/assets/images"

	// DefaultOutputDir is the default asset root, relative to the config file.
	DefaultOutputDir = "dist/assets"

	// DefaultURLPath is the URL prefix under which the asset root is served.
	DefaultURLPath = "/assets/"

	// HashLength is the number of hex characters of the derivative hash in file names.
	HashLength = 10

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// IndexPath returns the path of the derivative index inside an asset root.
func IndexPath(assetRoot string) string {
	return filepath.Join(assetRoot, IndexDirName, IndexFileName)
}

// DerivativeName builds the flat file name {stem}-{hash}.{ext}.
func DerivativeName(stem, hash string, f Format) string {
	if len(hash) > HashLength {
		hash = hash[:HashLength]
	}
	return stem + "-" + hash + "." + f.Extension()
}
