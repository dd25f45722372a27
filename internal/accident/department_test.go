package accident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDepartment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"7", "07", true},
		{"75", "75", true},
		{"07", "07", true},
		{"2A", "2A", true},
		{"2B", "2B", true},
		{"2a", "2A", true},
		{" 13 ", "13", true},
		{"", "", false},
		{"7A", "7A", false},
		{"975", "975", false},
		{"AB", "AB", false},
	}
	for _, tc := range cases {
		got, valid := NormalizeDepartment(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.valid, valid, "input %q", tc.in)
	}
}

func TestNormalizeDepartmentIdempotent(t *testing.T) {
	t.Parallel()

	for _, dep := range []string{"01", "75", "95", "2A", "2B"} {
		once, valid := NormalizeDepartment(dep)
		assert.True(t, valid)
		twice, valid := NormalizeDepartment(once)
		assert.True(t, valid)
		assert.Equal(t, once, twice)
	}
}
