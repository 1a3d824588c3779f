package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeDraft_SixCompetitors(t *testing.T) {
	// Ranked A > B > C > D > E > F: the first row assigns A,B,C forward, the
	// second row reverses, giving {A,F}, {B,E}, {C,D}.
	ranked := []*Competitor{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
		{ID: 4, Name: "D"}, {ID: 5, Name: "E"}, {ID: 6, Name: "F"},
	}

	teams := SnakeDraft(ranked)
	require.Len(t, teams, 3)

	assert.Equal(t, []string{"A", "F"}, teams[0].Names())
	assert.Equal(t, []string{"B", "E"}, teams[1].Names())
	assert.Equal(t, []string{"C", "D"}, teams[2].Names())
}

func TestSnakeDraft_TwelveCompetitorsBalanced(t *testing.T) {
	ranked := rankBySkill(NewRoster(nil))

	teams := SnakeDraft(ranked)
	require.Len(t, teams, 3)

	seen := map[int]bool{}
	for _, team := range teams {
		assert.Len(t, team, 4, "12 competitors must split into teams of 4")
		for _, c := range team {
			assert.False(t, seen[c.ID], "competitor %d assigned twice", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Len(t, seen, 12, "every competitor assigned exactly once")

	// Mirrored rows: positions 0..5 follow the six-competitor pattern.
	assert.Equal(t, "Rank_01", teams[0][0].Name)
	assert.Equal(t, "Rank_06", teams[0][1].Name)
	assert.Equal(t, "Rank_02", teams[1][0].Name)
	assert.Equal(t, "Rank_05", teams[1][1].Name)
	assert.Equal(t, "Rank_03", teams[2][0].Name)
	assert.Equal(t, "Rank_04", teams[2][1].Name)
}

func TestSnakeDraft_AssignmentPurelyPositional(t *testing.T) {
	// Membership depends only on rank position, not identity: reordering the
	// ranked input reorders the teams identically.
	ranked := []*Competitor{
		{ID: 9, Name: "X"}, {ID: 1, Name: "Y"}, {ID: 4, Name: "Z"},
		{ID: 2, Name: "W"}, {ID: 8, Name: "V"}, {ID: 3, Name: "U"},
	}

	teams := SnakeDraft(ranked)
	assert.Equal(t, []string{"X", "U"}, teams[0].Names())
	assert.Equal(t, []string{"Y", "V"}, teams[1].Names())
	assert.Equal(t, []string{"Z", "W"}, teams[2].Names())
}
