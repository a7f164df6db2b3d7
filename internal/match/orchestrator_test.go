package match

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanrds/scholarship-finder/internal/model"
	"github.com/farhanrds/scholarship-finder/internal/repository"
)

type fakeCatalog struct {
	items []model.Scholarship
	err   error
}

func (f *fakeCatalog) Filter(_ context.Context, _ model.ScholarshipFilter) ([]model.Scholarship, error) {
	return f.items, f.err
}

type fakeProfiles struct {
	profile model.UserProfile
	err     error
}

func (f *fakeProfiles) GetByEmail(_ context.Context, _ string) (model.UserProfile, error) {
	return f.profile, f.err
}

// fakeScorer records the batched conversation it receives.
type fakeScorer struct {
	instruction string
	units       []string
	calls       int
	completion  string
	err         error
}

func (f *fakeScorer) Score(_ context.Context, instruction string, units []string) (string, error) {
	f.calls++
	f.instruction = instruction
	f.units = units
	return f.completion, f.err
}

func twoScholarships() []model.Scholarship {
	return []model.Scholarship{
		{ID: 1, Name: "LPDP", University: "MIT", Country: "USA", Major: "Computer Science", FundingType: "fully_funded"},
		{ID: 2, Name: "Chevening", University: "Oxford", Country: "UK", Major: "Computer Science", FundingType: "fully_funded"},
	}
}

func validCompletion(t *testing.T, ids ...uint64) string {
	t.Helper()
	out := make([]Assessment, 0, len(ids))
	for _, id := range ids {
		out = append(out, Assessment{
			ScholarshipID:    id,
			Relevancy:        80,
			ShortDescription: "Strong fit for this profile",
			ProsAndCons:      ProsCons{Pros: []string{"full funding"}, Cons: []string{"competitive"}},
		})
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	return string(b)
}

func TestMatchTwoCandidates(t *testing.T) {
	scorer := &fakeScorer{completion: validCompletion(t, 1, 2)}
	o := NewOrchestrator(
		&fakeCatalog{items: twoScholarships()},
		&fakeProfiles{profile: model.UserProfile{Email: "siti@example.com", Major: "Computer Science"}},
		scorer,
	)

	res, err := o.Match(context.Background(), "siti@example.com", model.ScholarshipFilter{Major: "Computer Science"})
	require.NoError(t, err)

	// Exactly one batched call: one system instruction plus one user unit
	// per candidate, in list order.
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, systemInstruction, scorer.instruction)
	require.Len(t, scorer.units, 2)
	assert.Contains(t, scorer.units[0], `"LPDP"`)
	assert.Contains(t, scorer.units[1], `"Chevening"`)
	// Each unit carries the full serialized profile.
	assert.Contains(t, scorer.units[0], "siti@example.com")
	assert.Contains(t, scorer.units[1], "siti@example.com")

	// The completion text is paired with the unmodified candidate list.
	assert.Equal(t, scorer.completion, res.Recommendation)
	assert.Equal(t, twoScholarships(), res.Scholarships)
	require.Len(t, res.Assessments, 2)
	assert.Equal(t, uint64(1), res.Assessments[0].ScholarshipID)
	assert.Equal(t, uint64(2), res.Assessments[1].ScholarshipID)
}

func TestMatchNoCandidatesSkipsScorer(t *testing.T) {
	scorer := &fakeScorer{}
	o := NewOrchestrator(&fakeCatalog{}, &fakeProfiles{}, scorer)

	res, err := o.Match(context.Background(), "siti@example.com", model.ScholarshipFilter{Country: "Narnia"})
	require.NoError(t, err)
	assert.Zero(t, scorer.calls, "zero candidates must not invoke the scorer")
	assert.Empty(t, res.Scholarships)
	assert.Empty(t, res.Assessments)
	assert.Empty(t, res.Recommendation)
}

func TestMatchProfileMissing(t *testing.T) {
	scorer := &fakeScorer{}
	o := NewOrchestrator(&fakeCatalog{items: twoScholarships()},
		&fakeProfiles{err: repository.ErrProfileNotFound}, scorer)

	_, err := o.Match(context.Background(), "ghost@example.com", model.ScholarshipFilter{})
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
	assert.Zero(t, scorer.calls)
}

func TestMatchScorerFailure(t *testing.T) {
	scorer := &fakeScorer{err: context.DeadlineExceeded}
	o := NewOrchestrator(&fakeCatalog{items: twoScholarships()}, &fakeProfiles{}, scorer)

	_, err := o.Match(context.Background(), "siti@example.com", model.ScholarshipFilter{})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestMatchUnparsableCompletion(t *testing.T) {
	scorer := &fakeScorer{completion: "I think the first scholarship suits you best!"}
	o := NewOrchestrator(&fakeCatalog{items: twoScholarships()}, &fakeProfiles{}, scorer)

	_, err := o.Match(context.Background(), "siti@example.com", model.ScholarshipFilter{})
	assert.ErrorIs(t, err, ErrUpstream)
}
