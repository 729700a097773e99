package productname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"API Calls - Tier 3", "API Calls"},
		{"API Calls - Tier 12", "API Calls"},
		{"API Calls-Tier 1", "API Calls"},
		{"API Calls - tier 2", "API Calls"},
		{"Storage", "Storage"},
		{"Tier 1 Support", "Tier 1 Support"},
		{"  Compute - Tier 2  ", "Compute"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}
