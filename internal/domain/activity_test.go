package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityMatches_CaseInsensitiveAcrossFields(t *testing.T) {
	a := ActivityRecord{Title: "Quarterly Report", Description: "Draft numbers", Tags: []string{"Finance"}}

	assert.True(t, a.Matches("quarterly"))
	assert.True(t, a.Matches("NUMBERS"))
	assert.True(t, a.Matches("fin"))
	assert.False(t, a.Matches("marketing"))
}

func TestActivityHasAnyTag(t *testing.T) {
	a := ActivityRecord{Tags: []string{"ops", "infra"}}

	assert.True(t, a.HasAnyTag([]string{"infra", "nope"}))
	assert.False(t, a.HasAnyTag([]string{"nope"}))
	assert.False(t, a.HasAnyTag(nil))
}

func TestActivityClone_Independent(t *testing.T) {
	by := "lead"
	a := ActivityRecord{Tags: []string{"x"}, Photos: []Photo{{Name: "p.png"}}, AssignedBy: &by}

	c := a.Clone()
	c.Tags[0] = "changed"
	c.Photos[0].Name = "changed.png"
	*c.AssignedBy = "other"

	assert.Equal(t, "x", a.Tags[0])
	assert.Equal(t, "p.png", a.Photos[0].Name)
	assert.Equal(t, "lead", *a.AssignedBy)
}

func TestNormalizeTags_KeepsFirstSeenOrder(t *testing.T) {
	got := NormalizeTags([]string{" b ", "a", "b", "", "c"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
	assert.Nil(t, NormalizeTags(nil))
}
