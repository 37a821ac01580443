package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/table"
)

// Константы размеров и отступов
const (
	titleHeight      = 70
	timeHeaderHeight = 44
	leftLabelsWidth  = 170
	columnWidth      = 220
	lineHeight       = 96
	cellPadding      = 6.0
	cellBorderRadius = 6.0
	shadowOffset     = 3.0
	textLineSpacing  = 1.2
)

// Константы шрифтов
const (
	titleFontSize = 28.0
	timeFontSize  = 18.0
	dayFontSize   = 20.0
	dateFontSize  = 16.0
	cellFontSize  = 14.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	timeLabelColor = color.RGBA{110, 115, 120, 230}
	gridLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{225, 225, 225, 255}

	lectureColor    = color.RGBA{255, 214, 153, 230}
	seminarColor    = color.RGBA{166, 206, 255, 230}
	laboratoryColor = color.RGBA{133, 193, 85, 220}
	cellTextColor   = color.RGBA{20, 24, 28, 230}
	cellShadowColor = color.RGBA{0, 0, 0, 20}
)

var dayNames = [...]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}

// DayName название дня недели на русском
func DayName(dow model.DayOfWeek) string {
	return dayNames[dow]
}

// TableImage рисует таблицу расписания в PNG: строки по дням недели,
// колонки по парам. Каждый день занимает столько подстрок, сколько в нём линий.
func TableImage(t *table.Table, format table.FormatFunc) ([]byte, error) {
	totalLines := t.TotalLines()
	width := leftLabelsWidth + table.Columns*columnWidth
	height := titleHeight + timeHeaderHeight + totalLines*lineHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawTitle(dc, t.Name, width)
	drawTimeHeader(dc)

	top := float64(titleHeight + timeHeaderHeight)

	y := top
	for i, dow := range model.DaysOfWeek {
		dayHeight := float64(t.Day(dow).Lines() * lineHeight)
		drawDayBackground(dc, y, dayHeight, float64(width), i)
		y += dayHeight
	}
	drawGrid(dc, width, height)

	y = top
	for _, dow := range model.DaysOfWeek {
		day := t.Day(dow)
		dayHeight := float64(day.Lines() * lineHeight)

		drawDayLabel(dc, t, dow, y, dayHeight)
		for _, cell := range day.Cells(format) {
			drawCell(dc, cell, y)
		}
		y += dayHeight
	}

	return encodeImage(dc)
}

// drawTitle рисует название таблицы
func drawTitle(dc *gg.Context, title string, width int) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(width)/2, titleHeight/2, 0.5, 0.35)
}

// drawTimeHeader рисует строку со временем пар
func drawTimeHeader(dc *gg.Context) {
	loadFont(dc, timeFontSize, FontStyleMedium)
	dc.SetColor(timeLabelColor)

	y := float64(titleHeight) + timeHeaderHeight/2
	for col := 0; col < table.Columns; col++ {
		x := float64(leftLabelsWidth+col*columnWidth) + columnWidth/2
		label := fmt.Sprintf("%s - %s", model.Starts[col], model.Ends[col])
		dc.DrawStringAnchored(label, x, y, 0.5, 0.35)
	}
}

// drawDayBackground рисует фон строки дня
func drawDayBackground(dc *gg.Context, y, dayHeight, width float64, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(0, y, width, dayHeight)
	dc.Fill()
}

// drawDayLabel рисует название дня, а для недельной таблицы ещё и дату
func drawDayLabel(dc *gg.Context, t *table.Table, dow model.DayOfWeek, y, dayHeight float64) {
	x := float64(leftLabelsWidth) / 2
	center := y + dayHeight/2

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)

	if t.Mode != table.ModeWeekly {
		dc.DrawStringAnchored(DayName(dow), x, center, 0.5, 0.35)
		return
	}

	dc.DrawStringAnchored(DayName(dow), x, center, 0.5, 0)
	loadFont(dc, dateFontSize, FontStyleMedium)
	date := t.WeekStart.AddDate(0, 0, int(dow))
	dc.DrawStringAnchored(date.Format("02.01"), x, center, 0.5, 1.2)
}

// drawCell рисует ячейку с парами. Пустые ячейки остаются фоном строки.
func drawCell(dc *gg.Context, cell table.Cell, dayY float64) {
	if cell.IsEmpty() {
		return
	}

	x := float64(leftLabelsWidth+cell.Column*columnWidth) + cellPadding
	y := dayY + float64(cell.Row*lineHeight) + cellPadding
	w := float64(cell.ColumnSpan*columnWidth) - 2*cellPadding
	h := float64(cell.RowSpan*lineHeight) - 2*cellPadding

	fill := cellColor(cell.Pairs[0].Type)

	// Тень
	dc.SetColor(cellShadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, cellBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, cellBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, cellBorderRadius)
	dc.Stroke()

	loadFont(dc, cellFontSize)
	dc.SetColor(cellTextColor)
	drawWrappedText(dc, cell.Text, x+cellPadding, y+cellPadding, w-2*cellPadding, h-2*cellPadding)
}

// drawWrappedText переносит текст по словам и обрезает то, что не помещается по высоте
func drawWrappedText(dc *gg.Context, text string, x, y, w, h float64) {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, dc.WordWrap(paragraph, w)...)
	}

	step := dc.FontHeight() * textLineSpacing
	maxLines := int(h / step)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = strings.TrimRight(lines[maxLines-1], " ") + "..."
	}

	for i, line := range lines {
		dc.DrawStringAnchored(line, x, y+float64(i)*step, 0, 1)
	}
}

// drawGrid рисует линии между колонками и днями
func drawGrid(dc *gg.Context, width, height int) {
	dc.SetLineWidth(0.5)
	dc.SetColor(gridLineColor)

	top := float64(titleHeight)
	for col := 0; col <= table.Columns; col++ {
		x := float64(leftLabelsWidth + col*columnWidth)
		dc.DrawLine(x, top, x, float64(height))
		dc.Stroke()
	}
	dc.DrawLine(0, top+timeHeaderHeight, float64(width), top+timeHeaderHeight)
	dc.Stroke()
}

// cellColor цвет ячейки по типу занятия
func cellColor(t model.Type) color.RGBA {
	switch t {
	case model.Lecture:
		return lectureColor
	case model.Seminar:
		return seminarColor
	default:
		return laboratoryColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
