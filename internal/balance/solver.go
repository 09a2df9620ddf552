package balance

import (
	"math/rand"

	crerr "github.com/cockroachdb/errors"
)

// Solver finds any assignment satisfying a Problem, or reports that none
// exists. Implementations must be deterministic for a fixed seed.
type Solver interface {
	Solve(p Problem, seed int64) (Assignment, error)
}

const defaultMaxNodes = 1 << 21

// BacktrackingSolver is a depth-first feasibility search. Items are branched
// in input order; candidate slots are tried in a seeded random order so
// distinct seeds discover distinct feasible assignments. MaxNodes caps the
// number of placements attempted before giving up.
type BacktrackingSolver struct {
	MaxNodes int
}

func (s *BacktrackingSolver) Solve(p Problem, seed int64) (Assignment, error) {
	if err := p.validate(); err != nil {
		return nil, crerr.Wrap(err, "invalid problem")
	}

	// Aggregate bounds across all slots rule out some infeasible models
	// before any search happens.
	for _, bound := range p.Bounds {
		if len(bound.Items) < bound.Min*p.Slots {
			return nil, crerr.Wrapf(ErrInfeasible, "bound %q needs at least %d items, has %d", bound.Name, bound.Min*p.Slots, len(bound.Items))
		}
		if len(bound.Items) > bound.Max*p.Slots {
			return nil, crerr.Wrapf(ErrInfeasible, "bound %q admits at most %d items, has %d", bound.Name, bound.Max*p.Slots, len(bound.Items))
		}
	}

	maxNodes := s.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}

	search := newSearchState(p, rand.New(rand.NewSource(seed)), maxNodes)
	found, err := search.place(0)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInfeasible
	}

	return search.assignment, nil
}

type searchState struct {
	problem    Problem
	rng        *rand.Rand
	assignment Assignment
	memberOf   [][]int
	counts     [][]int
	remaining  []int
	nodesLeft  int
}

func newSearchState(p Problem, rng *rand.Rand, maxNodes int) *searchState {
	memberOf := make([][]int, p.Items)
	counts := make([][]int, len(p.Bounds))
	remaining := make([]int, len(p.Bounds))
	for b, bound := range p.Bounds {
		counts[b] = make([]int, p.Slots)
		remaining[b] = len(bound.Items)
		for _, item := range bound.Items {
			memberOf[item] = append(memberOf[item], b)
		}
	}

	assignment := make(Assignment, p.Items)
	for i := range assignment {
		assignment[i] = -1
	}

	return &searchState{
		problem:    p,
		rng:        rng,
		assignment: assignment,
		memberOf:   memberOf,
		counts:     counts,
		remaining:  remaining,
		nodesLeft:  maxNodes,
	}
}

func (s *searchState) place(item int) (bool, error) {
	if item == s.problem.Items {
		return true, nil
	}

	for _, slot := range s.rng.Perm(s.problem.Slots) {
		if s.nodesLeft <= 0 {
			return false, ErrSearchBudget
		}
		s.nodesLeft--

		if !s.admit(item, slot) {
			continue
		}

		found, err := s.place(item + 1)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
		s.retract(item, slot)
	}

	return false, nil
}

// admit tentatively places item into slot; it reverts and reports false
// when any bound can no longer be satisfied.
func (s *searchState) admit(item, slot int) bool {
	for _, b := range s.memberOf[item] {
		if s.counts[b][slot]+1 > s.problem.Bounds[b].Max {
			return false
		}
	}

	s.assignment[item] = slot
	for _, b := range s.memberOf[item] {
		s.counts[b][slot]++
		s.remaining[b]--
	}

	for _, b := range s.memberOf[item] {
		if !s.achievable(b) {
			s.retract(item, slot)
			return false
		}
	}

	return true
}

func (s *searchState) retract(item, slot int) {
	s.assignment[item] = -1
	for _, b := range s.memberOf[item] {
		s.counts[b][slot]--
		s.remaining[b]++
	}
}

// achievable checks that the unassigned members of bound b are both enough
// to close every slot's minimum deficit and few enough to fit under every
// slot's maximum.
func (s *searchState) achievable(b int) bool {
	bound := s.problem.Bounds[b]
	deficit := 0
	capacity := 0
	for slot := 0; slot < s.problem.Slots; slot++ {
		if gap := bound.Min - s.counts[b][slot]; gap > 0 {
			deficit += gap
		}
		capacity += bound.Max - s.counts[b][slot]
	}

	return deficit <= s.remaining[b] && capacity >= s.remaining[b]
}
