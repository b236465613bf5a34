package compensation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

func band(from, rate string) compensation.RateBand {
	return compensation.RateBand{EffectiveFrom: from, Rate: generic.MustMoney(rate)}
}

func TestResolveRate_MonotonicLookup(t *testing.T) {
	bands := []compensation.RateBand{band("2025-01-01", "15"), band("2025-05-01", "16")}

	assert.Equal(t, "15.00", compensation.ResolveRate("2025-03-01", bands).Fixed())
	assert.Equal(t, "16.00", compensation.ResolveRate("2025-06-01", bands).Fixed())
	assert.Equal(t, "16.00", compensation.ResolveRate("2025-05-01", bands).Fixed(), "band starts inclusive")
	assert.Equal(t, "15.00", compensation.ResolveRate("2024-01-01", bands).Fixed(), "floor to earliest")
}

func TestResolveRate_UnsortedInputNotMutated(t *testing.T) {
	bands := []compensation.RateBand{band("2025-05-01", "16"), band("2025-01-01", "15")}

	assert.Equal(t, "15.00", compensation.ResolveRate("2025-02-01", bands).Fixed())
	assert.Equal(t, "2025-05-01", bands[0].EffectiveFrom)
}

func TestResolveRate_DuplicateDateLastDefinedWins(t *testing.T) {
	bands := []compensation.RateBand{
		band("2025-01-01", "15"),
		band("2025-01-01", "15,5"),
	}

	assert.Equal(t, "15.50", compensation.ResolveRate("2025-03-01", bands).Fixed())
	assert.Equal(t, "15.50", compensation.ResolveRate("2024-03-01", bands).Fixed())
}

func TestResolveRate_EmptyFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "15.00", compensation.ResolveRate("2025-03-01", nil).Fixed())
}

func TestResolveRate_LocaleRates(t *testing.T) {
	for _, in := range []string{"15,5", "15.5", "15,50"} {
		got := compensation.ResolveRate("2025-03-01", []compensation.RateBand{band("2025-01-01", in)})
		assert.Equal(t, "15.50", got.Fixed(), in)
	}
}
