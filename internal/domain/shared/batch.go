package shared

// ItemOutcome is the result of one external write inside a batch.
// Error is empty when the write succeeded.
type ItemOutcome struct {
	Key   string `json:"key"`
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the write went through
func (o ItemOutcome) Succeeded() bool {
	return o.Error == ""
}

// BatchResult collects per-item outcomes of a batch that has no
// cross-item transaction. Counts always add up to len(Outcomes).
type BatchResult struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Outcomes  []ItemOutcome `json:"outcomes"`
}

// NewBatchResult creates an empty batch result sized for n items
func NewBatchResult(n int) *BatchResult {
	return &BatchResult{Outcomes: make([]ItemOutcome, 0, n)}
}

// Record appends the outcome of writing key
func (r *BatchResult) Record(key string, err error) {
	if err != nil {
		r.Failed++
		r.Outcomes = append(r.Outcomes, ItemOutcome{Key: key, Error: err.Error()})
		return
	}
	r.Succeeded++
	r.Outcomes = append(r.Outcomes, ItemOutcome{Key: key})
}

// Failures returns only the failed outcomes, in batch order
func (r *BatchResult) Failures() []ItemOutcome {
	failures := make([]ItemOutcome, 0, r.Failed)
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failures = append(failures, o)
		}
	}
	return failures
}

// IsPartial is true when some but not all items failed
func (r *BatchResult) IsPartial() bool {
	return r.Failed > 0 && r.Succeeded > 0
}
