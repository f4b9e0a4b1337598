package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cc 1.0.0", "libc 0.2.0", "serde 1.0.0"},
		SortedStringKeys(map[string]int{"serde 1.0.0": 1, "cc 1.0.0": 2, "libc 0.2.0": 3}))
	assert.Empty(t, SortedStringKeys(map[string]struct{}{}))
}
