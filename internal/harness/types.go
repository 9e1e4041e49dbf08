package harness

// TraceEvent is one recorded evaluation, stripped of the content hash so
// traces stay hand-checkable in golden files.
type TraceEvent struct {
	Observable string `json:"observable"`
	Context    string `json:"context,omitempty"`
	Eigenvalue string `json:"eigenvalue"`
	Verdict    string `json:"verdict"`
	Size       string `json:"size,omitempty"`
	Seq        int64  `json:"seq"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace lists the recorded evaluations in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists expect and assertion failures. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates an empty passing result.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []TraceEvent{}, Errors: []string{}}
}

// AddError records a failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
