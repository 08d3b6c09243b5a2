package compensation

import (
	"fmt"

	"talent-match-workers/internal/common/errors"
)

// BadgeInfo is a display hint for an alignment. It never affects scoring.
type BadgeInfo struct {
	Icon  string `json:"icon" mapstructure:"icon"`
	Label string `json:"label" mapstructure:"label"`
	Color string `json:"color" mapstructure:"color"`
}

// BadgeTable maps every alignment to a badge.
type BadgeTable struct {
	badges map[Alignment]BadgeInfo
}

// NewBadgeTable fails unless every alignment has a badge with all fields set.
func NewBadgeTable(badges map[Alignment]BadgeInfo) (*BadgeTable, error) {
	table := make(map[Alignment]BadgeInfo, len(AllAlignments))
	for _, a := range AllAlignments {
		b, ok := badges[a]
		if !ok {
			return nil, errors.NewIncompleteBadgeTableError(fmt.Sprintf("no badge for %s", a))
		}
		if b.Icon == "" || b.Label == "" || b.Color == "" {
			return nil, errors.NewIncompleteBadgeTableError(fmt.Sprintf("badge for %s has empty fields", a))
		}
		table[a] = b
	}
	for a := range badges {
		if !a.Valid() {
			return nil, errors.NewIncompleteBadgeTableError(fmt.Sprintf("badge for unknown alignment %q", a))
		}
	}
	return &BadgeTable{badges: table}, nil
}

func DefaultBadges() map[Alignment]BadgeInfo {
	return map[Alignment]BadgeInfo{
		WithinRange: {Icon: "check-circle", Label: "Within budget", Color: "green"},
		AboveRange:  {Icon: "arrow-up", Label: "Above budget", Color: "orange"},
		BelowRange:  {Icon: "arrow-down", Label: "Below budget", Color: "blue"},
		Unknown:     {Icon: "help-circle", Label: "Not disclosed", Color: "gray"},
	}
}

var defaultBadgeTable = mustBadgeTable(DefaultBadges())

func mustBadgeTable(badges map[Alignment]BadgeInfo) *BadgeTable {
	t, err := NewBadgeTable(badges)
	if err != nil {
		panic(err)
	}
	return t
}

func DefaultBadgeTable() *BadgeTable { return defaultBadgeTable }

// Resolve returns the badge for a. Values outside the enum get the unknown badge.
func (t *BadgeTable) Resolve(a Alignment) BadgeInfo {
	if b, ok := t.badges[a]; ok {
		return b
	}
	return t.badges[Unknown]
}

// Summary is an alignment result plus its display badge.
type Summary struct {
	CompensationAlignmentResult
	Badge BadgeInfo `json:"badge"`
}

// Summarize pairs r with its badge.
func (t *BadgeTable) Summarize(r CompensationAlignmentResult) Summary {
	return Summary{CompensationAlignmentResult: r, Badge: t.Resolve(r.Alignment)}
}

// GetCompensationBadgeInfo resolves a against the default badges.
func GetCompensationBadgeInfo(a Alignment) BadgeInfo {
	return defaultBadgeTable.Resolve(a)
}
