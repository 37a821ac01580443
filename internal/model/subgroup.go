package model

import (
	"fmt"
	"strings"
)

// Subgroup подгруппа занятия. Common означает всю группу.
type Subgroup int

const (
	SubgroupA Subgroup = iota
	SubgroupB
	SubgroupCommon
)

var subgroupTags = [...]string{"A", "B", "Common"}

// ParseSubgroup получает подгруппу по тегу без учёта регистра
func ParseSubgroup(tag string) (Subgroup, error) {
	for i, t := range subgroupTags {
		if strings.EqualFold(t, tag) {
			return Subgroup(i), nil
		}
	}
	return 0, fmt.Errorf("%w: subgroup %q", ErrUnknownTag, tag)
}

// IsIntersect Common пересекается с любой подгруппой
func (s Subgroup) IsIntersect(other Subgroup) bool {
	return s == other || s == SubgroupCommon || other == SubgroupCommon
}

// IsShow нужно ли показывать подгруппу пользователю
func (s Subgroup) IsShow() bool {
	return s != SubgroupCommon
}

// Valid проверяет, что значение входит в диапазон A..Common
func (s Subgroup) Valid() bool {
	return s >= SubgroupA && s <= SubgroupCommon
}

func (s Subgroup) Tag() string {
	if !s.Valid() {
		return fmt.Sprintf("Subgroup(%d)", int(s))
	}
	return subgroupTags[s]
}

func (s Subgroup) String() string {
	return s.Tag()
}
