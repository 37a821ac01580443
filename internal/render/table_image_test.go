package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/table"
)

func testSchedule(t *testing.T) *model.Schedule {
	t.Helper()
	s := model.NewSchedule(model.ScheduleInfo{Name: "ИДБ-23-01"})

	add := func(title string, subgroup model.Subgroup, typ model.Type, start, end, dates string, f model.Frequency) {
		tm, err := model.NewTime(start, end)
		require.NoError(t, err)
		r, err := model.ParseDateRangeText(dates, f)
		require.NoError(t, err)
		date, err := model.NewDateModel(r)
		require.NoError(t, err)
		pair, err := model.NewPair(title, "Иванов И.И.", "0301", typ, subgroup, tm, date, "")
		require.NoError(t, err)
		require.NoError(t, s.Add(pair))
	}

	add("Математический анализ", model.SubgroupCommon, model.Lecture, "8:30", "10:10", "2024-09-02/2024-12-23", model.Every)
	add("Физика", model.SubgroupA, model.Laboratory, "12:20", "15:50", "2024-09-02/2024-12-23", model.Throughout)
	add("Химия", model.SubgroupB, model.Seminar, "12:20", "15:50", "2024-09-02/2024-12-23", model.Every)
	return s
}

func TestTableImage(t *testing.T) {
	s := testSchedule(t)

	tests := []struct {
		name  string
		table *table.Table
	}{
		{name: "full", table: table.NewFull(s)},
		{name: "weekly", table: table.NewWeekly(s, model.NewDate(2024, 9, 4))},
		{name: "empty week", table: table.NewWeekly(s, model.NewDate(2025, 2, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := TableImage(tt.table, nil)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			bounds := img.Bounds()
			assert.Equal(t, leftLabelsWidth+table.Columns*columnWidth, bounds.Dx())
			assert.Equal(t, titleHeight+timeHeaderHeight+tt.table.TotalLines()*lineHeight, bounds.Dy())
		})
	}
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Понедельник", DayName(model.Monday))
	assert.Equal(t, "Суббота", DayName(model.Saturday))
}
