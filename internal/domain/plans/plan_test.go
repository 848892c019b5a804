package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanName(t *testing.T) {
	for _, name := range []string{"free", "popular", "crescimento", "profissional"} {
		p, err := ParsePlanName(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(p))
	}

	for _, bad := range []string{"", "FREE", "basic", "pro"} {
		_, err := ParsePlanName(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"trial", "active", "canceled", "past_due"} {
		_, err := ParseStatus(s)
		assert.NoError(t, err)
	}
	_, err := ParseStatus("expired")
	assert.Error(t, err)
}

func TestCatalogSeatLimits(t *testing.T) {
	assert.Equal(t, 1, SpecFor(PlanFree).MaxSellers)
	assert.Equal(t, 5, SpecFor(PlanPopular).MaxSellers)
	assert.Equal(t, 15, SpecFor(PlanCrescimento).MaxSellers)
	assert.Equal(t, UnlimitedSellers, SpecFor(PlanProfissional).MaxSellers)
}

func TestSubscriptionUnlimited(t *testing.T) {
	sub := Subscription{MaxSellers: UnlimitedSellers}
	assert.True(t, sub.Unlimited())

	sub.MaxSellers = 5
	assert.False(t, sub.Unlimited())
}
