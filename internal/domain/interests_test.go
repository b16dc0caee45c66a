package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oggyb/campus-match/internal/domain"
)

func TestNewInterestSet_NormalizesAndCollapses(t *testing.T) {
	s := domain.NewInterestSet(" Music ", "IT", "music", "", "it", "Travel")

	assert.Equal(t, domain.InterestSet{"it", "music", "travel"}, s)
	assert.True(t, s.Contains("MUSIC"))
	assert.False(t, s.Contains("Art"))
}

func TestInterestSet_EncodeDecode(t *testing.T) {
	s := domain.NewInterestSet("Fitness", "Coffee shops")
	assert.Equal(t, "coffee shops,fitness", s.Encode())
	assert.Equal(t, s, domain.DecodeInterestSet(s.Encode()))
	assert.True(t, domain.DecodeInterestSet("").Empty())
	assert.True(t, domain.DecodeInterestSet(" , ").Empty())
}

func TestInterestSet_Overlap(t *testing.T) {
	viewer := domain.NewInterestSet("IT", "Music")
	a := domain.NewInterestSet("it", "MUSIC", "Travel")
	b := domain.NewInterestSet("Travel")

	assert.Equal(t, 2, viewer.Overlap(a))
	assert.Equal(t, 0, viewer.Overlap(b))
	assert.Equal(t, 0, domain.InterestSet{}.Overlap(a))
}

func TestVocabulary(t *testing.T) {
	v := domain.NewVocabulary([]string{"IT", "Music", "Travel", "it"})

	assert.Equal(t, []string{"IT", "Music", "Travel"}, v.Labels())
	assert.True(t, v.Contains(" music"))
	assert.Equal(t, "Music", v.Label("music"))
	assert.Equal(t, []string{"IT", "Travel"}, v.LabelsOf(domain.NewInterestSet("travel", "it")))

	assert.NoError(t, v.Check(domain.NewInterestSet("IT")))
	err := v.Check(domain.NewInterestSet("IT", "Knitting"))
	assert.True(t, domain.IsValidation(err))
}

func TestParseAction(t *testing.T) {
	a, err := domain.ParseAction(" Approve ")
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionApprove, a)

	a, err = domain.ParseAction("like")
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionApprove, a)

	_, err = domain.ParseAction("superlike")
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}
