package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no args", "/use", ""},
		{"with args", "/use ИДБ-23-01", "ИДБ-23-01"},
		{"bot mention", "/use@stankin_bot  ИДБ-23-01 ", "ИДБ-23-01"},
		{"multiword", "/import Группа 1", "Группа 1"},
		{"plain text", " просто текст ", "просто текст"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commandArgs(tt.text))
		})
	}
}

func TestParseSubgroupArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    model.Subgroup
		wantErr bool
	}{
		{"A", model.SubgroupA, false},
		{"а", model.SubgroupA, false},
		{"б", model.SubgroupB, false},
		{"B", model.SubgroupB, false},
		{"all", model.SubgroupCommon, false},
		{"Все", model.SubgroupCommon, false},
		{"c", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseSubgroupArg(tt.arg)
			if tt.wantErr {
				assert.ErrorIs(t, err, errSubgroupArg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateArg(t *testing.T) {
	fallback := time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC)

	got, err := parseDateArg("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	got, err = parseDateArg("16.09.2024", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDateArg("2024-09-23", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDateArg("завтра", fallback)
	assert.ErrorIs(t, err, errDateArg)
}

func TestImportName(t *testing.T) {
	assert.Equal(t, "ИДБ-23-01", importName(" ИДБ-23-01 ", "подпись", "file.json"))
	assert.Equal(t, "подпись", importName("", " подпись ", "file.json"))
	assert.Equal(t, "ИДБ-23-02", importName("", "", "ИДБ-23-02.JSON"))
	assert.Equal(t, "", importName("", "", ".json"))
}

func TestIsJSONDocument(t *testing.T) {
	assert.True(t, isJSONDocument("a.json", ""))
	assert.True(t, isJSONDocument("A.JSON", "text/plain"))
	assert.True(t, isJSONDocument("data", "application/json"))
	assert.False(t, isJSONDocument("a.pdf", "application/pdf"))
}

func TestParsePairArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		wantID   int64
		wantRest string
		wantErr  bool
	}{
		{name: "id only", args: "12", wantID: 12},
		{name: "hash prefix", args: "#7", wantID: 7},
		{name: "id and json", args: `12 {"title": "Физика"}`, wantID: 12, wantRest: `{"title": "Физика"}`},
		{name: "json on next line", args: "12\n{\"title\": \"Физика\"}", wantID: 12, wantRest: `{"title": "Физика"}`},
		{name: "empty", args: "", wantErr: true},
		{name: "not a number", args: "abc {}", wantErr: true},
		{name: "zero", args: "0", wantErr: true},
		{name: "negative", args: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rest, err := parsePairArgs(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errPairIDArg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
