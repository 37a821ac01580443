package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(t *testing.T, text string) *DateSingle {
	t.Helper()
	d, err := ParseDateSingle(text)
	require.NoError(t, err)
	return d
}

func dateRange(t *testing.T, text string, f Frequency) *DateRange {
	t.Helper()
	r, err := ParseDateRangeText(text, f)
	require.NoError(t, err)
	return r
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "primary pattern", text: "2024-09-02"},
		{name: "legacy pattern", text: "2024.09.02"},
		{name: "garbage", text: "02/09/2024", wantErr: true},
		{name: "empty", text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDateParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, NewDate(2024, 9, 2), d)
		})
	}
}

func TestNewDateSingle_Sunday(t *testing.T) {
	_, err := ParseDateSingle("2024-09-01")
	assert.ErrorIs(t, err, ErrDayOfWeek)
}

func TestNewDateRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		frequency Frequency
		wantErr   error
	}{
		{name: "every week", text: "2024-09-02/2024-12-23", frequency: Every},
		{name: "throughout", text: "2024-09-02/2024-12-23", frequency: Throughout},
		{name: "dash separator", text: "2024.09.02-2024.09.16", frequency: Every},
		{name: "different days", text: "2024-09-02/2024-09-10", frequency: Every, wantErr: ErrDayOfWeek},
		{name: "not multiple of period", text: "2024-09-02/2024-09-09", frequency: Throughout, wantErr: ErrFrequency},
		{name: "empty length", text: "2024-09-02/2024-09-02", frequency: Every, wantErr: ErrFrequency},
		{name: "reversed", text: "2024-09-16/2024-09-02", frequency: Every, wantErr: ErrFrequency},
		{name: "once", text: "2024-09-02/2024-09-09", frequency: Once, wantErr: ErrFrequency},
		{name: "sunday", text: "2024-09-01/2024-09-08", frequency: Every, wantErr: ErrDayOfWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRangeText(tt.text, tt.frequency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Monday, r.DayOfWeek())
			assert.Equal(t, tt.frequency, r.Frequency())
		})
	}
}

func TestNewDateRange_FrequencyError(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		frequency Frequency
	}{
		{name: "throughout over one week", text: "2024-09-02/2024-09-09", frequency: Throughout},
		// once описывается одиночной датой, диапазон с ней не строится даже кратный неделе
		{name: "once over whole weeks", text: "2024-09-02/2024-09-16", frequency: Once},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateRangeText(tt.text, tt.frequency)

			var freqErr *FrequencyError
			require.True(t, errors.As(err, &freqErr))
			assert.Equal(t, tt.frequency, freqErr.Frequency)
			assert.Equal(t, tt.text, freqErr.Date)
		})
	}
}

func TestDateRange_Occurrences(t *testing.T) {
	r := dateRange(t, "2024-09-02/2024-09-30", Throughout)

	got := r.Occurrences()
	require.Len(t, got, 3)
	assert.Equal(t, NewDate(2024, 9, 2), got[0])
	assert.Equal(t, NewDate(2024, 9, 16), got[1])
	assert.Equal(t, NewDate(2024, 9, 30), got[2])
}

func TestDateItem_Intersect(t *testing.T) {
	tests := []struct {
		name  string
		a, b  DateItem
		wants bool
	}{
		{
			name:  "same single",
			a:     single(t, "2024-09-02"),
			b:     single(t, "2024-09-02"),
			wants: true,
		},
		{
			name: "different single",
			a:    single(t, "2024-09-02"),
			b:    single(t, "2024-09-09"),
		},
		{
			name:  "single inside every",
			a:     single(t, "2024-09-09"),
			b:     dateRange(t, "2024-09-02/2024-09-30", Every),
			wants: true,
		},
		{
			name: "single between throughout occurrences",
			a:    single(t, "2024-09-09"),
			b:    dateRange(t, "2024-09-02/2024-09-30", Throughout),
		},
		{
			name: "single after range",
			a:    single(t, "2024-10-07"),
			b:    dateRange(t, "2024-09-02/2024-09-30", Every),
		},
		{
			name: "interleaved throughout ranges",
			a:    dateRange(t, "2024-09-02/2024-12-23", Throughout),
			b:    dateRange(t, "2024-09-09/2024-12-16", Throughout),
		},
		{
			name:  "throughout inside every",
			a:     dateRange(t, "2024-09-09/2024-12-16", Throughout),
			b:     dateRange(t, "2024-09-02/2024-12-23", Every),
			wants: true,
		},
		{
			name:  "overlap on last occurrence",
			a:     dateRange(t, "2024-09-02/2024-09-16", Every),
			b:     dateRange(t, "2024-09-16/2024-09-30", Every),
			wants: true,
		},
		{
			name: "disjoint spans",
			a:    dateRange(t, "2024-09-02/2024-09-16", Every),
			b:    dateRange(t, "2024-09-23/2024-09-30", Every),
		},
		{
			name:  "later range meets shifted sequence",
			a:     dateRange(t, "2024-09-02/2024-10-28", Throughout),
			b:     dateRange(t, "2024-09-09/2024-10-28", Every),
			wants: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, tt.a.Intersect(tt.b))
			assert.Equal(t, tt.wants, tt.b.Intersect(tt.a), "intersect must be symmetric")
		})
	}
}

func TestDateItem_IsBefore(t *testing.T) {
	early := single(t, "2024-09-02")
	late := single(t, "2024-12-23")
	r := dateRange(t, "2024-09-09/2024-12-16", Every)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, early.IsBefore(r))
	assert.False(t, late.IsBefore(r))
	assert.True(t, r.IsBefore(late))
	assert.False(t, r.IsBefore(early))
	assert.True(t, dateRange(t, "2024-09-02/2024-12-09", Every).IsBefore(r))
}

func TestDateItem_EqualAndClone(t *testing.T) {
	r := dateRange(t, "2024-09-02/2024-12-23", Every)
	assert.True(t, r.Equal(r.Clone()))
	assert.False(t, r.Equal(dateRange(t, "2024-09-02/2024-12-23", Throughout)))
	assert.False(t, r.Equal(single(t, "2024-09-02")))

	s := single(t, "2024-09-02")
	assert.True(t, s.Equal(s.Clone()))
	assert.Equal(t, "2024-09-02", s.String())
	assert.Equal(t, "2024-09-02/2024-12-23", r.String())
	assert.Equal(t, "02.09-23.12", r.Format("02.01", "-"))
}
