package randid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]*$`)

	for _, n := range []int{-1, 0, 1, 4, 12} {
		got := Generate(n)
		assert.Len(t, got, max(n, 0))
		assert.Regexp(t, pattern, got)
	}
}

func TestGenerate_Spread(t *testing.T) {
	seen := make(map[string]struct{})
	for range 200 {
		seen[Generate(6)] = struct{}{}
	}

	// 36^6 possibilities; collisions in 200 draws would point at a broken source
	assert.GreaterOrEqual(t, len(seen), 195)
}
