package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

const scheduleJSON = `[
  {
    "title": "Математика",
    "lecturer": "Иванов И.И.",
    "classroom": "0301",
    "type": "Lecture",
    "subgroup": "Common",
    "time": {"start": "8:30", "end": "10:10"},
    "dates": [
      {"frequency": "every", "date": "2024-09-02/2024-12-23"}
    ]
  },
  {
    "title": "Физика",
    "lecturer": "Петров П.П.",
    "classroom": "0405",
    "type": "Laboratory",
    "subgroup": "A",
    "time": {"start": "12:20", "end": "15:50"},
    "dates": [
      {"frequency": "throughout", "date": "2024.09.03/2024.12.10"},
      {"frequency": "once", "date": "2024-12-24"}
    ],
    "link": "https://example.org/lab"
  }
]`

func TestDecodePairs(t *testing.T) {
	pairs, err := DecodePairs(strings.NewReader(scheduleJSON))
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	math := pairs[0]
	assert.Equal(t, "Математика", math.Title)
	assert.Equal(t, model.Lecture, math.Type)
	assert.Equal(t, model.SubgroupCommon, math.Subgroup)
	assert.Equal(t, 1, math.Time.Duration())

	physics := pairs[1]
	assert.Equal(t, model.Laboratory, physics.Type)
	assert.Equal(t, model.SubgroupA, physics.Subgroup)
	assert.Equal(t, 2, physics.Time.Duration())
	assert.Equal(t, 2, physics.Date.Len())
	assert.Equal(t, "https://example.org/lab", physics.Link)

	dow, err := physics.DayOfWeek()
	require.NoError(t, err)
	assert.Equal(t, model.Tuesday, dow)
}

func TestDecodePairs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "broken json",
			json:    `[{"title":`,
			wantErr: ErrMalformedJSON,
		},
		{
			name:    "object instead of array",
			json:    `{"title":"X"}`,
			wantErr: ErrMalformedJSON,
		},
		{
			name:    "missing title",
			json:    `[{"type":"Lecture","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"once","date":"2024-09-02"}]}]`,
			wantErr: ErrInvalidPair,
			wantMsg: "title",
		},
		{
			name:    "no dates",
			json:    `[{"title":"X","type":"Lecture","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[]}]`,
			wantErr: ErrInvalidPair,
			wantMsg: "dates",
		},
		{
			name:    "unknown frequency",
			json:    `[{"title":"X","type":"Lecture","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"daily","date":"2024-09-02"}]}]`,
			wantErr: ErrInvalidPair,
			wantMsg: "frequency",
		},
		{
			name:    "unknown type",
			json:    `[{"title":"X","type":"Exam","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"once","date":"2024-09-02"}]}]`,
			wantErr: model.ErrUnknownTag,
		},
		{
			name:    "bad time",
			json:    `[{"title":"X","type":"Lecture","subgroup":"A","time":{"start":"8:00","end":"10:10"},"dates":[{"frequency":"once","date":"2024-09-02"}]}]`,
			wantErr: model.ErrTimeParse,
			wantMsg: "pair #1",
		},
		{
			name:    "range with wrong period",
			json:    `[{"title":"X","type":"Lecture","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"throughout","date":"2024-09-02/2024-09-09"}]}]`,
			wantErr: model.ErrFrequency,
		},
		{
			name:    "once with range",
			json:    `[{"title":"X","type":"Lecture","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"once","date":"2024-09-02/2024-09-09"}]}]`,
			wantErr: model.ErrDateParse,
		},
		{
			name:    "intersecting dates",
			json:    `[{"title":"X","type":"Lecture","subgroup":"A","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"every","date":"2024-09-02/2024-09-16"},{"frequency":"once","date":"2024-09-09"}]}]`,
			wantErr: model.ErrDateIntersect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePairs(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecodeSchedule_Conflict(t *testing.T) {
	doc := `[
		{"title":"A","type":"Lecture","subgroup":"Common","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"once","date":"2024-09-02"}]},
		{"title":"B","type":"Seminar","subgroup":"B","time":{"start":"8:30","end":"10:10"},"dates":[{"frequency":"once","date":"2024-09-02"}]}
	]`

	_, err := DecodeSchedule("test", strings.NewReader(doc))
	require.ErrorIs(t, err, model.ErrPairIntersect)
	assert.Contains(t, err.Error(), "pair #2")
}

func TestEncodeSchedule(t *testing.T) {
	schedule, err := DecodeSchedule("test", strings.NewReader(scheduleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeSchedule(&buf, schedule))

	out := buf.String()
	assert.Contains(t, out, `"date": "2024-09-03/2024-12-10"`)
	assert.Contains(t, out, `"frequency": "throughout"`)
	assert.Contains(t, out, `"https://example.org/lab"`)

	decoded, err := DecodePairs(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	for i, pair := range schedule.Pairs() {
		assert.True(t, pair.Equal(decoded[i]), "pair %d", i)
	}
}

func TestMarshalDates(t *testing.T) {
	date, err := model.NewDateModel()
	require.NoError(t, err)
	single, err := model.ParseDateSingle("2024-12-23")
	require.NoError(t, err)
	r, err := model.ParseDateRangeText("2024-09-02/2024-12-09", model.Throughout)
	require.NoError(t, err)
	require.NoError(t, date.Add(single))
	require.NoError(t, date.Add(r))

	data, err := MarshalDates(date)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"frequency":"throughout","date":"2024-09-02/2024-12-09"},
		{"frequency":"once","date":"2024-12-23"}
	]`, string(data))

	restored, err := UnmarshalDates(data)
	require.NoError(t, err)
	assert.True(t, date.Equal(restored))

	_, err = UnmarshalDates([]byte(`{`))
	assert.Error(t, err)
}

func TestDecodePair(t *testing.T) {
	pair, err := DecodePair(strings.NewReader(`{"title":"Физика","type":"Seminar","subgroup":"B",
		"time":{"start":"10:20","end":"12:00"},"dates":[{"frequency":"once","date":"2024-09-04"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Физика", pair.Title)
	assert.Equal(t, model.SubgroupB, pair.Subgroup)
	assert.Equal(t, "10:20-12:00", pair.Time.String())

	_, err = DecodePair(strings.NewReader(`[{"title":"Физика"}]`))
	assert.ErrorIs(t, err, ErrMalformedJSON)

	_, err = DecodePair(strings.NewReader(`{"title":"Физика","type":"Seminar","subgroup":"B","dates":[]}`))
	assert.ErrorIs(t, err, ErrInvalidPair)
}
