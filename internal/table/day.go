package table

import (
	"sort"
	"strings"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

// Columns количество колонок таблицы, по одной на каждую пару дня
const Columns = model.SlotCount

// FormatFunc превращает пары ячейки в текст
type FormatFunc func(pairs []*model.Pair) string

// lane одна строка дня: группы пар по колонке начала
type lane [Columns][]*model.Pair

// Day раскладка пар одного дня по строкам и колонкам таблицы
type Day struct {
	pairs []*model.Pair
	lanes []*lane
}

// NewDay раскладывает пары дня. Пары обрабатываются по убыванию длительности.
func NewDay(pairs []*model.Pair) *Day {
	sorted := make([]*model.Pair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Duration() > sorted[j].Time.Duration()
	})

	d := &Day{pairs: sorted}
	d.allocate()
	return d
}

func (d *Day) allocate() {
	d.lanes = []*lane{new(lane)}

	for _, pair := range d.pairs {
		inserted := false
		for _, l := range d.lanes {
			if l.place(pair) {
				inserted = true
				break
			}
		}
		if !inserted {
			l := new(lane)
			l[pair.Time.Number()] = []*model.Pair{pair}
			d.lanes = append(d.lanes, l)
		}
	}
}

// place кладёт пару в строку: объединяет с ячейкой той же длительности
// и подгруппы или занимает свободное по времени место.
func (l *lane) place(pair *model.Pair) bool {
	col := pair.Time.Number()
	target := l[col]
	if len(target) > 0 && target[0].Time.Duration() == pair.Time.Duration() && canMerge(target, pair) {
		l[col] = append(target, pair)
		return true
	}

	for _, group := range l {
		if len(group) > 0 && group[0].Time.IsIntersect(pair.Time) {
			return false
		}
	}
	l[col] = []*model.Pair{pair}
	return true
}

func canMerge(pairs []*model.Pair, pair *model.Pair) bool {
	for _, p := range pairs {
		if p.Subgroup == pair.Subgroup {
			return true
		}
	}
	return false
}

// Lines количество строк дня (не меньше одной)
func (d *Day) Lines() int {
	return len(d.lanes)
}

// Pairs пары дня в порядке раскладки
func (d *Day) Pairs() []*model.Pair {
	result := make([]*model.Pair, len(d.pairs))
	copy(result, d.pairs)
	return result
}

// Cells строит ячейки дня. Каждая позиция сетки Lines() x Columns
// покрыта ровно одной ячейкой. format == nil склеивает пары построчно.
func (d *Day) Cells(format FormatFunc) []Cell {
	if format == nil {
		format = joinPairs
	}

	g := newGrid(len(d.lanes))
	var cells []Cell

	// проекция: ячейка пары занимает столько колонок, сколько длится пара
	for row, l := range d.lanes {
		for col, group := range l {
			if len(group) == 0 {
				continue
			}
			span := group[0].Time.Duration()
			g.fill(row, col, span, len(cells))
			cells = append(cells, Cell{
				Row:        row,
				Column:     col,
				RowSpan:    1,
				ColumnSpan: span,
				Text:       format(group),
				Pairs:      group,
			})
		}
	}

	for i := range cells {
		g.grow(&cells[i], i)
	}

	for row := 0; row < g.rows; row++ {
		for col := 0; col < Columns; col++ {
			if g.cells[row][col] != emptyPosition {
				continue
			}
			id := len(cells)
			g.fill(row, col, 1, id)
			cells = append(cells, Cell{Row: row, Column: col, RowSpan: 1, ColumnSpan: 1})
			g.grow(&cells[id], id)
		}
	}

	return cells
}

func joinPairs(pairs []*model.Pair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, "\n")
}

const emptyPosition = -1

// grid занятость позиций: индекс ячейки или emptyPosition
type grid struct {
	rows  int
	cells [][Columns]int
}

func newGrid(rows int) *grid {
	g := &grid{rows: rows, cells: make([][Columns]int, rows)}
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col] = emptyPosition
		}
	}
	return g
}

func (g *grid) free(row, col, span int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	for k := 0; k < span; k++ {
		if g.cells[row][col+k] != emptyPosition {
			return false
		}
	}
	return true
}

func (g *grid) fill(row, col, span, id int) {
	for k := 0; k < span; k++ {
		g.cells[row][col+k] = id
	}
}

// grow растягивает ячейку вниз, затем вверх, пока все её колонки свободны
func (g *grid) grow(c *Cell, id int) {
	for g.free(c.Row+c.RowSpan, c.Column, c.ColumnSpan) {
		g.fill(c.Row+c.RowSpan, c.Column, c.ColumnSpan, id)
		c.RowSpan++
	}
	for g.free(c.Row-1, c.Column, c.ColumnSpan) {
		c.Row--
		c.RowSpan++
		g.fill(c.Row, c.Column, c.ColumnSpan, id)
	}
}
