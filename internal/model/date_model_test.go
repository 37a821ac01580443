package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateModel_Add(t *testing.T) {
	m, err := NewDateModel()
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())

	require.NoError(t, m.Add(single(t, "2024-10-07")))
	require.NoError(t, m.Add(dateRange(t, "2024-09-02/2024-09-30", Every)))
	require.NoError(t, m.Add(single(t, "2024-12-23")))

	require.Equal(t, 3, m.Len())
	assert.Equal(t, "[2024-09-02/2024-09-30, 2024-10-07, 2024-12-23]", m.String())

	dow, ok := m.DayOfWeek()
	require.True(t, ok)
	assert.Equal(t, Monday, dow)

	start, ok := m.StartDate()
	require.True(t, ok)
	assert.Equal(t, NewDate(2024, 9, 2), start)
	end, ok := m.EndDate()
	require.True(t, ok)
	assert.Equal(t, NewDate(2024, 12, 23), end)
}

func TestDateModel_AddRejects(t *testing.T) {
	m, err := NewDateModel(dateRange(t, "2024-09-02/2024-09-30", Every))
	require.NoError(t, err)

	t.Run("other day of week", func(t *testing.T) {
		err := m.Add(single(t, "2024-09-03"))
		assert.ErrorIs(t, err, ErrDayOfWeek)
	})

	t.Run("intersecting date", func(t *testing.T) {
		err := m.Add(single(t, "2024-09-16"))
		require.ErrorIs(t, err, ErrDateIntersect)

		var intersectErr *DateIntersectError
		require.True(t, errors.As(err, &intersectErr))
		assert.Equal(t, "2024-09-02/2024-09-30", intersectErr.First.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		err := m.Add(dateRange(t, "2024-09-02/2024-09-30", Every))
		assert.ErrorIs(t, err, ErrDateIntersect)
	})

	assert.Equal(t, 1, m.Len(), "failed adds must not change the model")
}

func TestDateModel_Replace(t *testing.T) {
	first := single(t, "2024-09-02")

	t.Run("only item may change day of week", func(t *testing.T) {
		m, err := NewDateModel(first)
		require.NoError(t, err)

		require.NoError(t, m.Replace(first, single(t, "2024-09-03")))
		dow, _ := m.DayOfWeek()
		assert.Equal(t, Tuesday, dow)
	})

	t.Run("day of week is kept with several items", func(t *testing.T) {
		m, err := NewDateModel(first, single(t, "2024-09-09"))
		require.NoError(t, err)

		err = m.Replace(first, single(t, "2024-09-03"))
		assert.ErrorIs(t, err, ErrDayOfWeek)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("old item is excluded from intersection", func(t *testing.T) {
		r := dateRange(t, "2024-09-02/2024-09-30", Every)
		m, err := NewDateModel(r)
		require.NoError(t, err)

		require.NoError(t, m.Replace(r, dateRange(t, "2024-09-02/2024-09-30", Throughout)))
		assert.Equal(t, Throughout, m.Get(0).Frequency())
	})
}

func TestDateModel_Remove(t *testing.T) {
	a := single(t, "2024-09-02")
	b := single(t, "2024-09-09")
	m, err := NewDateModel(a, b)
	require.NoError(t, err)

	assert.True(t, m.Remove(a.Clone()))
	assert.False(t, m.Remove(a))
	assert.Equal(t, b, m.RemoveAt(0))
	assert.True(t, m.IsEmpty())

	_, ok := m.DayOfWeek()
	assert.False(t, ok)
	_, ok = m.StartDate()
	assert.False(t, ok)

	require.NoError(t, m.Add(single(t, "2024-09-04")), "emptied model accepts any day")
}

func TestDateModel_ContainsAndIntersect(t *testing.T) {
	m, err := NewDateModel(dateRange(t, "2024-09-02/2024-09-30", Throughout), single(t, "2024-10-21"))
	require.NoError(t, err)

	assert.True(t, m.Contains(NewDate(2024, 9, 16)))
	assert.False(t, m.Contains(NewDate(2024, 9, 9)))
	assert.True(t, m.Contains(NewDate(2024, 10, 21)))

	other, err := NewDateModel(dateRange(t, "2024-09-09/2024-09-23", Throughout))
	require.NoError(t, err)
	assert.False(t, m.IntersectModel(other))
	assert.False(t, other.IntersectModel(m))

	require.NoError(t, other.Add(single(t, "2024-10-21")))
	assert.True(t, m.IntersectModel(other))
	assert.True(t, other.IntersectModel(m))
}

func TestDateModel_CloneIsDeep(t *testing.T) {
	m, err := NewDateModel(single(t, "2024-09-02"))
	require.NoError(t, err)

	clone := m.Clone()
	require.True(t, m.Equal(clone))

	require.NoError(t, clone.Add(single(t, "2024-09-09")))
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.Equal(clone))
}
