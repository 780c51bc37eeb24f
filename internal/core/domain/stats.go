package domain

// SetOutcome records how a derivative set request was satisfied.
type SetOutcome string

const (
	// OutcomeGenerated means the generator ran and the files were written.
	OutcomeGenerated SetOutcome = "generated"
	// OutcomeCached means every file already existed in the asset root.
	OutcomeCached SetOutcome = "cached"
	// OutcomeShared means the set was already held in memory by the store.
	OutcomeShared SetOutcome = "shared"
	// OutcomeFailed means the request returned an error.
	OutcomeFailed SetOutcome = "failed"
)

// StoreStats are cumulative counters of a derivative store.
type StoreStats struct {
	Generated int
	Cached    int
	Shared    int
	Failed    int
	Encodes   int
	Bytes     int64
}

// Requests is the number of GetOrCreate calls counted.
func (s StoreStats) Requests() int {
	return s.Generated + s.Cached + s.Shared + s.Failed
}
