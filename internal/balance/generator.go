package balance

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/kaduregel/matchday/internal/domain/player"
)

// DefaultTeamCount is how many teams a matchday roster is split into.
const DefaultTeamCount = 3

// Player is one roster member as seen by the balancer: a read-only snapshot
// of the registry characteristic and the rolling average rating.
type Player struct {
	Name           string
	Characteristic player.Characteristic
	Rating         float64
}

// Team is one generated side with the summed rating of its members.
type Team struct {
	Players     []Player
	TotalRating float64
}

// Options controls a single generation run. UseRankings enables the skill
// tiering and positional spread bounds; without it only assignment, size
// balance and the goalkeeper cap apply. Seed fixes both the roster shuffle
// and the solver's slot ordering, making the run reproducible.
type Options struct {
	TeamCount   int
	UseRankings bool
	Seed        int64
}

// Generator builds the constraint model for a roster and hands it to a
// pluggable solver. Constraint construction is kept separate from search so
// a different solving backend can be swapped in.
type Generator struct {
	solver Solver
}

func NewGenerator(solver Solver) *Generator {
	if solver == nil {
		solver = &BacktrackingSolver{}
	}

	return &Generator{solver: solver}
}

// Generate partitions every roster member into exactly one team, or fails
// with ErrInfeasible when no partition satisfies all bounds.
func (g *Generator) Generate(roster []Player, opts Options) ([]Team, error) {
	teamCount := opts.TeamCount
	if teamCount <= 0 {
		teamCount = DefaultTeamCount
	}

	n := len(roster)
	if n < teamCount {
		return nil, fmt.Errorf("%w: %d players cannot fill %d teams", ErrInfeasible, n, teamCount)
	}

	// Shuffle before the rating sort so equal-rated players land in varied
	// tiers across runs, then sort descending so tiers are contiguous runs.
	players := append([]Player(nil), roster...)
	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})

	problem := Problem{
		Items:  n,
		Slots:  teamCount,
		Bounds: buildBounds(players, teamCount, opts.UseRankings),
	}

	assignment, err := g.solver.Solve(problem, opts.Seed)
	if err != nil {
		return nil, err
	}

	teams := make([]Team, teamCount)
	for i, slot := range assignment {
		teams[slot].Players = append(teams[slot].Players, players[i])
		teams[slot].TotalRating += players[i].Rating
	}

	return teams, nil
}

func buildBounds(players []Player, teamCount int, useRankings bool) []CountBound {
	n := len(players)
	all := make([]int, n)
	var keepers, offensive, defensive, role []int
	for i, p := range players {
		all[i] = i
		switch p.Characteristic {
		case player.CharacteristicGoalkeeper:
			keepers = append(keepers, i)
		case player.CharacteristicOffensive:
			offensive = append(offensive, i)
			role = append(role, i)
		case player.CharacteristicDefensive:
			defensive = append(defensive, i)
			role = append(role, i)
		}
	}

	// With the per-team total fixed, floor/ceil bounds per team are the same
	// thing as "sizes differ by at most one".
	bounds := []CountBound{
		{Name: "team_size", Items: all, Min: n / teamCount, Max: ceilDiv(n, teamCount)},
	}
	if len(keepers) > 0 {
		bounds = append(bounds, CountBound{Name: "goalkeeper_cap", Items: keepers, Min: 0, Max: 1})
	}

	if !useRankings {
		return bounds
	}

	// Players are sorted by rating descending, so each full run of teamCount
	// indices is one skill tier. The incomplete tail tier stays unbound.
	for tier := 0; tier < n/teamCount; tier++ {
		items := make([]int, teamCount)
		for j := range items {
			items[j] = tier*teamCount + j
		}
		bounds = append(bounds, CountBound{
			Name:  fmt.Sprintf("tier_%d", tier),
			Items: items,
			Min:   1,
			Max:   1,
		})
	}

	bounds = append(bounds, spreadBound("role_spread", role, teamCount)...)
	bounds = append(bounds, spreadBound("offensive_spread", offensive, teamCount)...)
	bounds = append(bounds, spreadBound("defensive_spread", defensive, teamCount)...)

	return bounds
}

// spreadBound keeps a subset's per-team count within one of every other
// team, expressed as floor/ceil limits on the per-team count.
func spreadBound(name string, items []int, teamCount int) []CountBound {
	if len(items) == 0 {
		return nil
	}

	return []CountBound{{
		Name:  name,
		Items: items,
		Min:   len(items) / teamCount,
		Max:   ceilDiv(len(items), teamCount),
	}}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
