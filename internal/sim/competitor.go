package sim

import "sort"

// Competitor represents one participant: fixed identity and skill, mutable score
type Competitor struct {
	ID           int     // unique, stable for the lifetime of one competition
	Name         string
	InitialSkill float64 // fixed at creation, never mutated
	TotalPoints  float64 // starts at 0
}

// AddPoints applies a point delta to the competitor's total. The total is
// clamped at zero after every mutation, so a negative adjustment can never
// drive a competitor below zero.
func (c *Competitor) AddPoints(delta float64) {
	c.TotalPoints += delta
	if c.TotalPoints < 0 {
		c.TotalPoints = 0
	}
}

// Clone returns an independent deep copy of the competitor
func (c *Competitor) Clone() *Competitor {
	cp := *c
	return &cp
}

// RosterEntry defines one competitor of a roster template
type RosterEntry struct {
	Name  string  `yaml:"name"`
	Skill float64 `yaml:"skill"`
}

// DefaultRoster is the fixed 12-competitor field used by the standard
// configuration. Skills span two orders of magnitude so stability and
// contender metrics have meaningful extremes.
var DefaultRoster = []RosterEntry{
	{"Rank_01", 100}, {"Rank_02", 90}, {"Rank_03", 80}, {"Rank_04", 70},
	{"Rank_05", 60}, {"Rank_06", 50}, {"Rank_07", 40}, {"Rank_08", 30},
	{"Rank_09", 20}, {"Rank_10", 10}, {"Rank_11", 5}, {"Rank_12", 1},
}

// NewRoster creates a fresh, zero-scored roster from the given template.
// IDs are assigned 1..n in template order. A nil template yields DefaultRoster.
func NewRoster(entries []RosterEntry) []*Competitor {
	if entries == nil {
		entries = DefaultRoster
	}
	roster := make([]*Competitor, len(entries))
	for i, e := range entries {
		roster[i] = &Competitor{ID: i + 1, Name: e.Name, InitialSkill: e.Skill}
	}
	return roster
}

// rankBySkill returns a new slice sorted by initial skill descending,
// ties broken by ascending id.
func rankBySkill(roster []*Competitor) []*Competitor {
	ranked := make([]*Competitor, len(roster))
	copy(ranked, roster)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].InitialSkill != ranked[j].InitialSkill {
			return ranked[i].InitialSkill > ranked[j].InitialSkill
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// rankByPoints returns a new slice sorted by total points descending,
// ties broken by ascending id.
func rankByPoints(roster []*Competitor) []*Competitor {
	ranked := make([]*Competitor, len(roster))
	copy(ranked, roster)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalPoints != ranked[j].TotalPoints {
			return ranked[i].TotalPoints > ranked[j].TotalPoints
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
