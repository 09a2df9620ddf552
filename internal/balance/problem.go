package balance

import crerr "github.com/cockroachdb/errors"

// ErrInfeasible reports that no assignment satisfies every bound at once.
// Callers must treat it as a distinct balancing failure, not as empty input.
var ErrInfeasible = crerr.New("cannot balance roster")

// ErrSearchBudget reports that the solver gave up before proving anything.
var ErrSearchBudget = crerr.New("solver search budget exhausted")

// Problem is a binary assignment feasibility model: every item is placed
// into exactly one slot, subject to per-slot count bounds over item subsets.
type Problem struct {
	Items  int
	Slots  int
	Bounds []CountBound
}

// CountBound restricts, for every slot, how many items of a subset that
// slot may receive.
type CountBound struct {
	Name  string
	Items []int
	Min   int
	Max   int
}

// Assignment maps each item index to the slot it was placed in.
type Assignment []int

func (p Problem) validate() error {
	if p.Items < 0 {
		return crerr.New("item count cannot be negative")
	}
	if p.Slots < 1 {
		return crerr.New("at least one slot is required")
	}
	for _, bound := range p.Bounds {
		if bound.Min < 0 || bound.Max < bound.Min {
			return crerr.Newf("bound %q has invalid limits [%d,%d]", bound.Name, bound.Min, bound.Max)
		}
		for _, item := range bound.Items {
			if item < 0 || item >= p.Items {
				return crerr.Newf("bound %q references unknown item %d", bound.Name, item)
			}
		}
	}

	return nil
}
