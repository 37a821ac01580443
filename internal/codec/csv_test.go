package codec

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/stankin_schedule/internal/table"
)

func TestWriteCSV(t *testing.T) {
	schedule, err := DecodeSchedule("test", strings.NewReader(scheduleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table.NewFull(schedule), nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	assert.Equal(t, []string{"day", "row", "column", "row_span", "column_span", "time", "text"}, records[0])

	// 6 дней по одной строке: 8 ячеек в понедельник, 7 во вторник (двойная пара), по 8 в остальные
	assert.Len(t, records[1:], 8+7+8*4)

	var found bool
	for _, rec := range records[1:] {
		if rec[0] == "TUESDAY" && rec[2] == "2" {
			found = true
			assert.Equal(t, "2", rec[4])
			assert.Equal(t, "12:20-15:50", rec[5])
			assert.Contains(t, rec[6], "Физика")
		}
	}
	assert.True(t, found)
}

func TestWritePairsCSV(t *testing.T) {
	pairs, err := DecodePairs(strings.NewReader(scheduleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePairsCSV(&buf, pairs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "title", records[0][2])
	assert.Equal(t, []string{
		"TUESDAY", "12:20-15:50", "Физика", "Петров П.П.", "0405", "Laboratory", "A",
		"2024-09-03/2024-12-10 throughout, 2024-12-24 once", "https://example.org/lab",
	}, records[2])
}
