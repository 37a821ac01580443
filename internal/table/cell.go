package table

import "github.com/Freeeeeet/stankin_schedule/internal/model"

// Cell ячейка таблицы дня. Пустая ячейка (без пар) заполняет свободное место.
type Cell struct {
	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int
	Text       string
	Pairs      []*model.Pair
}

// IsEmpty ячейка-заполнитель без пар
func (c Cell) IsEmpty() bool {
	return len(c.Pairs) == 0
}
