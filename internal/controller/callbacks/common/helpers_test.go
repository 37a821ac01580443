package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

func TestParseIDFromCallback(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int64
		wantErr bool
	}{
		{name: "valid", data: "use:123", want: 123},
		{name: "no value", data: "use:", wantErr: true},
		{name: "no separator", data: "use", wantErr: true},
		{name: "not a number", data: "use:abc", wantErr: true},
		{name: "too many parts", data: "use:1:2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDFromCallback(tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateFromCallback(t *testing.T) {
	got, err := ParseDateFromCallback("week:2024-09-09")
	require.NoError(t, err)
	assert.True(t, model.NewDate(2024, time.September, 9).Equal(got))

	_, err = ParseDateFromCallback("week:09.09.2024")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseSubgroupFromCallback(t *testing.T) {
	got, err := ParseSubgroupFromCallback("subgroup:b")
	require.NoError(t, err)
	assert.Equal(t, model.SubgroupB, got)

	_, err = ParseSubgroupFromCallback("subgroup:C")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
