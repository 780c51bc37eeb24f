package cas

// Exported for testing.
var WriteAtomic = writeAtomic
