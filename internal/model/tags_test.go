package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency_Tags(t *testing.T) {
	tests := []struct {
		frequency  Frequency
		wantTag    string
		wantPeriod int
		wantValid  bool
	}{
		{Once, "once", 1, true},
		{Every, "every", 7, true},
		{Throughout, "throughout", 14, true},
		{Frequency(-1), "Frequency(-1)", 0, false},
		{Frequency(3), "Frequency(3)", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.wantTag, func(t *testing.T) {
			assert.Equal(t, tt.wantValid, tt.frequency.Valid())
			assert.Equal(t, tt.wantTag, tt.frequency.Tag())
			assert.Equal(t, tt.wantTag, tt.frequency.String())
			assert.Equal(t, tt.wantPeriod, tt.frequency.Period())

			if tt.wantValid {
				parsed, err := ParseFrequency(tt.wantTag)
				require.NoError(t, err)
				assert.Equal(t, tt.frequency, parsed)
			}
		})
	}
}

func TestSubgroup_Tags(t *testing.T) {
	tests := []struct {
		subgroup  Subgroup
		wantTag   string
		wantValid bool
	}{
		{SubgroupA, "A", true},
		{SubgroupB, "B", true},
		{SubgroupCommon, "Common", true},
		{Subgroup(-1), "Subgroup(-1)", false},
		{Subgroup(7), "Subgroup(7)", false},
	}

	for _, tt := range tests {
		t.Run(tt.wantTag, func(t *testing.T) {
			assert.Equal(t, tt.wantValid, tt.subgroup.Valid())
			assert.Equal(t, tt.wantTag, tt.subgroup.String())
		})
	}
}

func TestType_Tags(t *testing.T) {
	assert.Equal(t, "Laboratory", Laboratory.Tag())
	assert.Equal(t, "Type(9)", Type(9).Tag())
	assert.False(t, Type(9).Valid())
}

func TestNewDateRange_UnknownFrequency(t *testing.T) {
	_, err := ParseDateRangeText("2024-09-02/2024-09-16", Frequency(5))
	assert.ErrorIs(t, err, ErrFrequency)
}
