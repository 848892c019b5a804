package sellers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNearLimit(t *testing.T) {
	tests := []struct {
		name  string
		used  int
		limit int
		want  bool
	}{
		{"well below", 3, 10, false},
		{"just under 80%", 7, 10, false},
		{"exactly 80%", 8, 10, true},
		{"above 80%", 9, 10, true},
		{"at limit", 10, 10, true},
		{"zero limit", 5, 0, false},
		{"negative limit", 5, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNearLimit(tt.used, tt.limit))
		})
	}
}

func TestIsAtLimit(t *testing.T) {
	assert.False(t, IsAtLimit(9, 10))
	assert.True(t, IsAtLimit(10, 10))
	assert.True(t, IsAtLimit(11, 10))
	assert.False(t, IsAtLimit(5, 0))
}
