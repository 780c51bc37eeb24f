package ports

import "iter"

// FileWalker lists the regular files below a directory.
type FileWalker interface {
	// WalkFiles yields file paths below root, skipping VCS and index
	// directories and entries whose name matches an ignore pattern.
	WalkFiles(root string, ignores []string) iter.Seq[string]
}
