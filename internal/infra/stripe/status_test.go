package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"active", "active"},
		{"trialing", "trial"},
		{"past_due", "past_due"},
		{"unpaid", "past_due"},
		{"canceled", "canceled"},
		{"incomplete_expired", "canceled"},
		{"", "none"},
		{"  active  ", "active"},
		{"paused", "paused"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.in), "input %q", tt.in)
	}
}

func TestSubscribedStatus(t *testing.T) {
	assert.True(t, SubscribedStatus("active"))
	assert.True(t, SubscribedStatus("trial"))
	assert.False(t, SubscribedStatus("canceled"))
	assert.False(t, SubscribedStatus("past_due"))
	assert.False(t, SubscribedStatus("none"))
}
