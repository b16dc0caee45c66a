package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/campus-match/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func completeUpdate() domain.MemberUpdate {
	interests := domain.NewInterestSet("IT")
	return domain.MemberUpdate{
		Name:      ptr("  Anna "),
		Age:       ptr(19),
		Faculty:   ptr("Finance"),
		Course:    ptr("2"),
		Interests: &interests,
	}
}

func TestMemberUpdate_ValidateRegistration(t *testing.T) {
	vocab := domain.NewVocabulary([]string{"IT", "Music"})

	u := completeUpdate()
	require.NoError(t, u.Validate(vocab, true))
	assert.Equal(t, "Anna", *u.Name)

	u = completeUpdate()
	u.Age = nil
	err := u.Validate(vocab, true)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "age", ve.Field)
	assert.Equal(t, "required", ve.Reason)
}

func TestMemberUpdate_ValidateFields(t *testing.T) {
	vocab := domain.NewVocabulary([]string{"IT", "Music"})

	cases := []struct {
		name   string
		update domain.MemberUpdate
		field  string
	}{
		{"short name", domain.MemberUpdate{Name: ptr(" A ")}, "name"},
		{"too young", domain.MemberUpdate{Age: ptr(15)}, "age"},
		{"too old", domain.MemberUpdate{Age: ptr(101)}, "age"},
		{"course not digits", domain.MemberUpdate{Course: ptr("second")}, "course"},
		{"unknown interest", domain.MemberUpdate{Interests: ptr(domain.NewInterestSet("Knitting"))}, "interests"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.update.Validate(vocab, false)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	// boundaries are inclusive
	assert.NoError(t, (&domain.MemberUpdate{Age: ptr(16)}).Validate(vocab, false))
	assert.NoError(t, (&domain.MemberUpdate{Age: ptr(100)}).Validate(vocab, false))
	// partial edits need nothing else
	assert.NoError(t, (&domain.MemberUpdate{PhotoRef: ptr("file-1")}).Validate(vocab, false))
}

func TestMemberUpdate_ApplyLeavesOmittedFields(t *testing.T) {
	m := domain.Member{Name: "Anna", Age: 19, Faculty: "Finance", PhotoRef: "p1"}
	domain.MemberUpdate{Age: ptr(20), PhotoRef: ptr("")}.Apply(&m)

	assert.Equal(t, "Anna", m.Name)
	assert.Equal(t, 20, m.Age)
	assert.Equal(t, "Finance", m.Faculty)
	assert.Equal(t, "", m.PhotoRef)
}

func TestMember_Registered(t *testing.T) {
	var nilMember *domain.Member
	assert.False(t, nilMember.Registered())
	assert.False(t, (&domain.Member{Name: "  "}).Registered())

	m := &domain.Member{Name: "Anna"}
	assert.True(t, m.Registered())
	assert.False(t, m.CanMatch())

	m.Interests = domain.NewInterestSet("IT")
	assert.True(t, m.CanMatch())
}
