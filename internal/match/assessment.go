package match

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ProsCons is the pros/cons analysis for one scholarship.
type ProsCons struct {
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

// Assessment is one validated per-scholarship verdict extracted from the
// scorer completion.  The completion is never trusted raw: it must parse
// into this shape or the whole match fails as an upstream error.
type Assessment struct {
	ScholarshipID    uint64   `json:"scholarship_id"`
	Relevancy        int      `json:"relevancy"`
	ShortDescription string   `json:"shortDescription"`
	ProsAndCons      ProsCons `json:"prosAndCons"`
}

// parseAssessments decodes the completion into exactly want assessments.
// Models occasionally wrap JSON in a markdown fence despite the JSON MIME
// type, so fences are stripped before decoding.  Validation rules:
//
//   - the payload must be a JSON array with one element per scholarship
//   - relevancy must be a percentage in [0,100]
//   - shortDescription must be non-empty
//
// Elements missing a scholarship_id are assigned the id of the candidate
// at the same position, since units were sent in candidate order.
func parseAssessments(completion string, candidateIDs []uint64) ([]Assessment, error) {
	want := len(candidateIDs)
	text := strings.TrimSpace(completion)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var out []Assessment
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("completion is not a JSON array: %w", err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("completion has %d assessments, want %d", len(out), want)
	}
	for i := range out {
		if out[i].ScholarshipID == 0 {
			out[i].ScholarshipID = candidateIDs[i]
		}
		if out[i].Relevancy < 0 || out[i].Relevancy > 100 {
			return nil, fmt.Errorf("assessment %d: relevancy %d out of range", i, out[i].Relevancy)
		}
		if strings.TrimSpace(out[i].ShortDescription) == "" {
			return nil, fmt.Errorf("assessment %d: missing shortDescription", i)
		}
	}
	return out, nil
}
