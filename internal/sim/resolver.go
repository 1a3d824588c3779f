package sim

import "math/rand"

// Team is one disjoint subset of the roster formed for a single stage
type Team []*Competitor

// SkillSum returns the summed initial skill of all members
func (t Team) SkillSum() float64 {
	var sum float64
	for _, c := range t {
		sum += c.InitialSkill
	}
	return sum
}

// unitID identifies a team by its lowest member id, used for tie-breaking
func (t Team) unitID() int {
	id := t[0].ID
	for _, c := range t[1:] {
		if c.ID < id {
			id = c.ID
		}
	}
	return id
}

// Names returns the member names in team order
func (t Team) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// Resolver selects challenge winners by blending skill with randomness.
//
// Each unit in a group scores (1-r)*skill + r*draw, where draw is uniform in
// [0, maxSkill] and maxSkill is the highest skill in the group. The shared
// draw ceiling keeps even fully random outcomes biased toward strong groups.
// Exact score ties go to the unit with the lowest id (a team's id is its
// lowest member id).
type Resolver struct {
	ChallengeRand float64 // randomness weight for challenge outcomes, [0,1]
	RepRand       float64 // randomness weight for representative selection, [0,1]

	rng *rand.Rand
}

// NewResolver creates a resolver backed by the given random source. The
// source must not be shared with concurrently running competitions.
func NewResolver(challengeRand, repRand float64, rng *rand.Rand) *Resolver {
	return &Resolver{ChallengeRand: challengeRand, RepRand: repRand, rng: rng}
}

type unit struct {
	id    int
	skill float64
}

// pick returns the index of the winning unit. One draw is consumed per unit
// regardless of the randomness weight, so draw streams stay aligned across
// configurations sharing a seed.
func (r *Resolver) pick(units []unit, randomness float64) int {
	var maxSkill float64
	for _, u := range units {
		if u.skill > maxSkill {
			maxSkill = u.skill
		}
	}

	best := -1
	var bestScore float64
	var bestID int
	for i, u := range units {
		draw := r.rng.Float64() * maxSkill
		score := (1-randomness)*u.skill + randomness*draw
		if best < 0 || score > bestScore || (score == bestScore && u.id < bestID) {
			best = i
			bestScore = score
			bestID = u.id
		}
	}
	return best
}

// TeamWinner returns the index of the winning team for a team challenge
func (r *Resolver) TeamWinner(teams []Team) int {
	units := make([]unit, len(teams))
	for i, t := range teams {
		units[i] = unit{id: t.unitID(), skill: t.SkillSum()}
	}
	return r.pick(units, r.ChallengeRand)
}

// RepresentativeWinner returns the index of the winning representative in the
// individual challenge
func (r *Resolver) RepresentativeWinner(reps []*Competitor) int {
	units := make([]unit, len(reps))
	for i, c := range reps {
		units[i] = unit{id: c.ID, skill: c.InitialSkill}
	}
	return r.pick(units, r.ChallengeRand)
}

// TeamRepresentative selects one member of a team to compete individually,
// weighted by skill under the representative-selection randomness
func (r *Resolver) TeamRepresentative(team Team) *Competitor {
	units := make([]unit, len(team))
	for i, c := range team {
		units[i] = unit{id: c.ID, skill: c.InitialSkill}
	}
	return team[r.pick(units, r.RepRand)]
}
