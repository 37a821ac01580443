package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

var moscow = time.FixedZone("MSK", 3*60*60)

func TestExport(t *testing.T) {
	s := model.NewSchedule(model.ScheduleInfo{Name: "ИДБ-23-01"})

	r, err := model.ParseDateRangeText("2024-09-02/2024-12-23", model.Throughout)
	require.NoError(t, err)
	single, err := model.ParseDateSingle("2024-09-09")
	require.NoError(t, err)
	date, err := model.NewDateModel(r, single)
	require.NoError(t, err)

	pair, err := model.NewPair("Физика", "Петров П.П.", "0405", model.Seminar, model.SubgroupA,
		model.MustTime("10:20", "12:00"), date, "")
	require.NoError(t, err)
	require.NoError(t, s.Add(pair))

	out, err := Export(s, moscow)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 1, strings.Count(out, "RRULE:"))
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;UNTIL=20241223T205959Z;INTERVAL=2;BYDAY=MO")
	assert.Contains(t, out, "DTSTART:20240902T072000Z")
	assert.Contains(t, out, "DTEND:20240902T090000Z")
	assert.Contains(t, out, "DTSTART:20240909T072000Z")
	assert.Contains(t, out, "SUMMARY:Физика")
	assert.Contains(t, out, "LOCATION:0405")
	assert.Contains(t, out, "X-WR-CALNAME:ИДБ-23-01")
	assert.Contains(t, out, "METHOD:PUBLISH")
}

func TestRecurrenceRule(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		frequency model.Frequency
		want      string
	}{
		{
			name:      "every week",
			text:      "2024-09-04/2024-12-25",
			frequency: model.Every,
			want:      "FREQ=WEEKLY;UNTIL=20241225T235959Z;INTERVAL=1;BYDAY=WE",
		},
		{
			name:      "every other week",
			text:      "2024-09-07/2024-12-14",
			frequency: model.Throughout,
			want:      "FREQ=WEEKLY;UNTIL=20241214T235959Z;INTERVAL=2;BYDAY=SA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := model.ParseDateRangeText(tt.text, tt.frequency)
			require.NoError(t, err)

			got, err := recurrenceRule(r, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
