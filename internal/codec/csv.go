package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/table"
)

// CellRow строка CSV с ячейкой таблицы
type CellRow struct {
	Day        string `csv:"day"`
	Row        int    `csv:"row"`
	Column     int    `csv:"column"`
	RowSpan    int    `csv:"row_span"`
	ColumnSpan int    `csv:"column_span"`
	Time       string `csv:"time"`
	Text       string `csv:"text"`
}

// PairRow строка CSV с парой
type PairRow struct {
	Day       string `csv:"day"`
	Time      string `csv:"time"`
	Title     string `csv:"title"`
	Lecturer  string `csv:"lecturer"`
	Classroom string `csv:"classroom"`
	Type      string `csv:"type"`
	Subgroup  string `csv:"subgroup"`
	Dates     string `csv:"dates"`
	Link      string `csv:"link"`
}

// WriteCSV пишет все ячейки таблицы, включая пустые
func WriteCSV(w io.Writer, t *table.Table, format table.FormatFunc) error {
	var rows []*CellRow
	for _, dow := range model.DaysOfWeek {
		for _, cell := range t.Day(dow).Cells(format) {
			rows = append(rows, &CellRow{
				Day:        dow.String(),
				Row:        cell.Row,
				Column:     cell.Column,
				RowSpan:    cell.RowSpan,
				ColumnSpan: cell.ColumnSpan,
				Time:       model.Starts[cell.Column] + "-" + model.Ends[cell.Column+cell.ColumnSpan-1],
				Text:       cell.Text,
			})
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write table csv: %w", err)
	}
	return nil
}

// WritePairsCSV пишет пары по одной в строке
func WritePairsCSV(w io.Writer, pairs []*model.Pair) error {
	rows := make([]*PairRow, 0, len(pairs))
	for _, pair := range pairs {
		day := ""
		if dow, err := pair.DayOfWeek(); err == nil {
			day = dow.String()
		}
		dates := make([]string, 0, pair.Date.Len())
		for _, item := range pair.Date.Items() {
			dates = append(dates, item.String()+" "+item.Frequency().Tag())
		}
		rows = append(rows, &PairRow{
			Day:       day,
			Time:      pair.Time.String(),
			Title:     pair.Title,
			Lecturer:  pair.Lecturer,
			Classroom: pair.Classroom,
			Type:      pair.Type.Tag(),
			Subgroup:  pair.Subgroup.Tag(),
			Dates:     strings.Join(dates, ", "),
			Link:      pair.Link,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write pairs csv: %w", err)
	}
	return nil
}
