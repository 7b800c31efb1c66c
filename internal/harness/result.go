package harness

// TraceEvent records one executed operation and its outcome.
type TraceEvent struct {
	Op      string `json:"op"`
	From    int    `json:"from,omitempty"`
	To      int    `json:"to,omitempty"`
	Step    int    `json:"step,omitempty"`
	Uses    []int  `json:"uses,omitempty"`
	Deleted int64  `json:"deleted,omitempty"`
	Created int64  `json:"created,omitempty"`

	// Outcome is "ok" for accepted operations, "rejected" for refusals.
	Outcome string `json:"outcome"`
	Message string `json:"message,omitempty"`
}

// StepState is one step in a snapshot: position, text, and the positions
// whose output it uses.
type StepState struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
	Uses     []int  `json:"uses,omitempty"`
}

// Snapshot captures a recipe's state.
type Snapshot struct {
	Recipe string      `json:"recipe"`
	Steps  []StepState `json:"steps"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every operation matched its expectation and no
	// invariant was violated.
	Pass bool `json:"pass"`

	// Trace lists the executed operations in order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation mismatches and invariant violations.
	Errors []string `json:"errors,omitempty"`

	// Final is the recipe state after the last operation.
	Final Snapshot `json:"final"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
