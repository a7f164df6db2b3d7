package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssessmentsMarkdownFence(t *testing.T) {
	completion := "```json\n[{\"scholarship_id\":3,\"relevancy\":55,\"shortDescription\":\"ok\",\"prosAndCons\":{\"pros\":[],\"cons\":[]}}]\n```"
	out, err := parseAssessments(completion, []uint64{3})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), out[0].ScholarshipID)
	assert.Equal(t, 55, out[0].Relevancy)
}

func TestParseAssessmentsAssignsIDByPosition(t *testing.T) {
	completion := `[
		{"relevancy": 90, "shortDescription": "great", "prosAndCons": {"pros": ["a"], "cons": []}},
		{"relevancy": 40, "shortDescription": "meh", "prosAndCons": {"pros": [], "cons": ["b"]}}
	]`
	out, err := parseAssessments(completion, []uint64{11, 22})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), out[0].ScholarshipID)
	assert.Equal(t, uint64(22), out[1].ScholarshipID)
}

func TestParseAssessmentsWrongCount(t *testing.T) {
	completion := `[{"relevancy": 90, "shortDescription": "great", "prosAndCons": {"pros": [], "cons": []}}]`
	_, err := parseAssessments(completion, []uint64{1, 2})
	assert.Error(t, err)
}

func TestParseAssessmentsRelevancyOutOfRange(t *testing.T) {
	completion := `[{"relevancy": 150, "shortDescription": "great", "prosAndCons": {"pros": [], "cons": []}}]`
	_, err := parseAssessments(completion, []uint64{1})
	assert.Error(t, err)
}

func TestParseAssessmentsMissingDescription(t *testing.T) {
	completion := `[{"relevancy": 50, "shortDescription": "  ", "prosAndCons": {"pros": [], "cons": []}}]`
	_, err := parseAssessments(completion, []uint64{1})
	assert.Error(t, err)
}
