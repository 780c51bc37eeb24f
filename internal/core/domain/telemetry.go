package domain

// Span names opened by the derivative store.
const (
	// SpanImage covers one GetOrCreate call.
	SpanImage = "image"
	// SpanGenerate covers decoding, scaling and encoding one derivative set.
	SpanGenerate = "generate"
	// SpanPersist covers writing the files of one derivative set.
	SpanPersist = "persist"
)

// Span attribute keys.
const (
	AttrSource      = "source"
	AttrFingerprint = "fingerprint"
	AttrOutcome     = "outcome"
	AttrDerivatives = "derivatives"
	AttrBytes       = "bytes"
	AttrWritten     = "written"
)
