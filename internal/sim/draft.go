package sim

// NumTeams is fixed: every stage fields exactly three teams
const NumTeams = 3

// SnakeDraft distributes a ranked roster into three teams of equal size.
//
// Position i goes to team i%3, except every second row of three picks runs
// in reverse (team 2-(i%3)), so cumulative strength stays balanced. The
// roster length must be divisible by three.
func SnakeDraft(ranked []*Competitor) []Team {
	teams := make([]Team, NumTeams)
	for i, c := range ranked {
		idx := i % NumTeams
		if (i/NumTeams)%2 == 1 {
			idx = NumTeams - 1 - idx
		}
		teams[idx] = append(teams[idx], c)
	}
	return teams
}
