package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("approved")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, st)

	st, ok = ParseStatus("  Duplicate ")
	assert.True(t, ok)
	assert.Equal(t, StatusDuplicate, st)

	_, ok = ParseStatus("rejected")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Approved", StatusApproved.Label())
	assert.Equal(t, "Marked as duplicate", StatusDuplicate.Label())
	assert.Equal(t, "Forwarded to the respective team", StatusForwarded.Label())
	assert.Equal(t, "Marked as needing more information", StatusInformation.Label())
}

func TestStatusesAllValid(t *testing.T) {
	for _, st := range Statuses() {
		assert.True(t, st.Valid(), string(st))
	}
	assert.False(t, Status("unset").Valid())
}
