package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/farhanrds/scholarship-finder/internal/model"
)

// ErrUpstream marks scorer failures: transport errors, deadline expiry and
// completions that fail schema validation.  Handlers translate it into a
// generic upstream fault without leaking internals.
var ErrUpstream = errors.New("scorer failure")

// Catalog is the slice of the persistence layer the orchestrator needs:
// filtered candidate lookup only.  The orchestrator never mutates catalog
// state.
type Catalog interface {
	Filter(ctx context.Context, f model.ScholarshipFilter) ([]model.Scholarship, error)
}

// ProfileStore resolves a student profile by email.
type ProfileStore interface {
	GetByEmail(ctx context.Context, email string) (model.UserProfile, error)
}

// Result is the combined outcome of one matching call.  Recommendation
// carries the raw completion text, Assessments the validated per-
// scholarship split of that same completion, and Scholarships echoes the
// candidate list unmodified.  Nothing here is persisted; the result is
// recomputed per request.
type Result struct {
	Recommendation string              `json:"recommendation"`
	Assessments    []Assessment        `json:"assessments"`
	Scholarships   []model.Scholarship `json:"scholarships"`
}

// systemInstruction is fixed for the whole batched call.  It demands a
// strict JSON array so the single completion can be split back into one
// assessment per scholarship.
const systemInstruction = `You are an expert education consultant and good at viewing student profiles to get scholarships.

IMPORTANT
The output must be only a valid JSON array with exactly one object per analyzed scholarship, in the same order as the inputs. Each object must have the following keys:
- scholarship_id: number, the id of the scholarship being assessed
- relevancy: number, match percentage between 0 and 100
- shortDescription: string
- prosAndCons: object with "pros" and "cons" arrays of strings

IMPORTANT
INPUT SCHOLARSHIP LIST IN JSON FORMAT`

// Orchestrator wires the catalog, the profile store and the scorer into
// the matching operation.  It owns the request/response pairing with the
// scorer for the lifetime of one call and nothing beyond that.
type Orchestrator struct {
	catalog  Catalog
	profiles ProfileStore
	scorer   Scorer
}

func NewOrchestrator(catalog Catalog, profiles ProfileStore, scorer Scorer) *Orchestrator {
	return &Orchestrator{catalog: catalog, profiles: profiles, scorer: scorer}
}

// Match resolves the profile and candidate set, fans the candidates out as
// one user unit each within a single scorer call, and reassembles the
// completion into a ranked result.
//
// An absent profile is a fault (the store's not-found error passes
// through).  An empty candidate set is not: it yields an empty result and
// the scorer is never invoked.  Any scorer fault, including a completion
// that fails validation, aborts the whole request wrapped in ErrUpstream.
// There are no partial results and no retries.
func (o *Orchestrator) Match(ctx context.Context, email string, filter model.ScholarshipFilter) (Result, error) {
	profile, err := o.profiles.GetByEmail(ctx, email)
	if err != nil {
		return Result{}, err
	}
	candidates, err := o.catalog.Filter(ctx, filter)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{Assessments: []Assessment{}, Scholarships: []model.Scholarship{}}, nil
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return Result{}, err
	}

	units := make([]string, 0, len(candidates))
	ids := make([]uint64, 0, len(candidates))
	for _, sch := range candidates {
		schJSON, err := json.Marshal(sch)
		if err != nil {
			return Result{}, err
		}
		units = append(units, fmt.Sprintf(
			"Analyze the suitability of your profile to this scholarship program PROFILE: %s SCHOLARSHIP: %s",
			profileJSON, schJSON))
		ids = append(ids, sch.ID)
	}

	completion, err := o.scorer.Score(ctx, systemInstruction, units)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	assessments, err := parseAssessments(completion, ids)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return Result{
		Recommendation: completion,
		Assessments:    assessments,
		Scholarships:   candidates,
	}, nil
}
