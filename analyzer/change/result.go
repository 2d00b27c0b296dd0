package change

import (
	"encoding/json"

	"github.com/viant/diffgate/inspector/graph"
)

// Result is the outcome of a single analysis run
type Result struct {
	Changes []*Change `json:"changes"`
	Scope   Scope     `json:"scope"`
	Summary Summary   `json:"summary"`
}

// Digest returns a highwayhash of the canonical JSON encoding; identical runs yield identical digests
func (r *Result) Digest() (uint64, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return 0, err
	}
	return graph.Hash(data), nil
}

// LinesAdded returns added lines attributed to units
func (r *Result) LinesAdded() int {
	result := 0
	for _, change := range r.Changes {
		result += change.LinesAdded
	}
	return result
}

// LinesRemoved returns removed lines attributed to units
func (r *Result) LinesRemoved() int {
	result := 0
	for _, change := range r.Changes {
		result += change.LinesRemoved
	}
	return result
}
