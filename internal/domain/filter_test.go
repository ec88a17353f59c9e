package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterNormalize(t *testing.T) {
	f, err := Filter{
		UserID:    " u1 ",
		StartDate: "2024-01-01T23:30:00-02:00",
		EndDate:   "2024-01-07",
		Tags:      []string{"b", "a", "b"},
		Search:    "  report ",
	}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "u1", f.UserID)
	assert.Equal(t, "2024-01-02", f.StartDate, "timestamps resolve to their UTC calendar date")
	assert.Equal(t, "2024-01-07", f.EndDate)
	assert.Equal(t, []string{"a", "b"}, f.Tags)
	assert.Equal(t, "report", f.Search)
}

func TestFilterNormalize_InvalidDate(t *testing.T) {
	_, err := Filter{StartDate: "01/02/2024"}.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date")
}

func TestInRange_Inclusive(t *testing.T) {
	assert.True(t, InRange("2024-01-01", "2024-01-01", "2024-01-07"))
	assert.True(t, InRange("2024-01-07", "2024-01-01", "2024-01-07"))
	assert.False(t, InRange("2023-12-31", "2024-01-01", "2024-01-07"))
	assert.False(t, InRange("2024-01-08", "2024-01-01", "2024-01-07"))
	assert.True(t, InRange("1999-01-01", "", ""))
}

func TestUserSessionState(t *testing.T) {
	assert.Equal(t, StateReady, UserSession{}.State())
	assert.Equal(t, StateReady, UserSession{IsTimedIn: true}.State(), "a flag without a timestamp is not a session")
}
