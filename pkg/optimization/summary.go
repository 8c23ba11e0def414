// Package optimization provides shared data structures for break-even search results.
package optimization

// Summary captures the result of a single break-even directive.
type Summary struct {
	Scope        string   `json:"scope"`
	TargetName   string   `json:"targetName"`
	Kind         string   `json:"kind"`
	Target       float64  `json:"target"`
	Value        float64  `json:"value"`
	ValueDisplay string   `json:"valueDisplay,omitempty"`
	Lower        float64  `json:"lower"`
	Upper        float64  `json:"upper"`
	Iterations   int      `json:"iterations"`
	Converged    bool     `json:"converged"`
	Notes        []string `json:"notes,omitempty"`
}
