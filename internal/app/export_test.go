package app

// Exported for white-box tests.
var (
	WatchRoots = watchRoots
	Ignored    = ignored
)
