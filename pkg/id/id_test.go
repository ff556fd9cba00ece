package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	ids := make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		ids = append(ids, g.New())
	}

	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)
}

func TestTime(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	g := NewGenerator()
	g.now = func() time.Time { return fixed }

	got, err := Time(g.New())
	require.NoError(t, err)
	assert.True(t, fixed.Equal(got))

	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}

func TestPackageNew(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	assert.NotEqual(t, a, b)
}
