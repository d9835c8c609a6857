package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSliceKeepsFirstOccurrenceOrder(t *testing.T) {
	s := FromSlice([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, s.Values())
	assert.Equal(t, 3, s.Size())
}

func TestAddReportsNewItems(t *testing.T) {
	s := New[int]()
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1))
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))
}

func TestValuesIsACopy(t *testing.T) {
	s := FromSlice([]string{"a"})
	v := s.Values()
	v[0] = "changed"
	assert.Equal(t, []string{"a"}, s.Values())
}
