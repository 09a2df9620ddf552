package balance

import (
	"errors"
	"reflect"
	"testing"
)

func TestBacktrackingSolverFeasible(t *testing.T) {
	solver := &BacktrackingSolver{}
	problem := Problem{
		Items: 6,
		Slots: 3,
		Bounds: []CountBound{
			{Name: "size", Items: []int{0, 1, 2, 3, 4, 5}, Min: 2, Max: 2},
			{Name: "pair", Items: []int{0, 1}, Min: 0, Max: 1},
		},
	}

	assignment, err := solver.Solve(problem, 7)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(assignment) != problem.Items {
		t.Fatalf("unexpected assignment length: got=%d want=%d", len(assignment), problem.Items)
	}

	perSlot := make([]int, problem.Slots)
	for item, slot := range assignment {
		if slot < 0 || slot >= problem.Slots {
			t.Fatalf("item %d assigned to invalid slot %d", item, slot)
		}
		perSlot[slot]++
	}
	for slot, count := range perSlot {
		if count != 2 {
			t.Fatalf("slot %d has %d items, want 2", slot, count)
		}
	}
	if assignment[0] == assignment[1] {
		t.Fatal("items 0 and 1 share a slot despite the pair bound")
	}
}

func TestBacktrackingSolverDeterministic(t *testing.T) {
	solver := &BacktrackingSolver{}
	problem := Problem{
		Items: 9,
		Slots: 3,
		Bounds: []CountBound{
			{Name: "size", Items: []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, Min: 3, Max: 3},
		},
	}

	first, err := solver.Solve(problem, 42)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	second, err := solver.Solve(problem, 42)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different assignments: %v vs %v", first, second)
	}
}

func TestBacktrackingSolverInfeasible(t *testing.T) {
	solver := &BacktrackingSolver{}
	problem := Problem{
		Items: 4,
		Slots: 3,
		Bounds: []CountBound{
			{Name: "cap", Items: []int{0, 1, 2, 3}, Min: 0, Max: 1},
		},
	}

	_, err := solver.Solve(problem, 1)
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestBacktrackingSolverSearchBudget(t *testing.T) {
	solver := &BacktrackingSolver{MaxNodes: 1}
	problem := Problem{
		Items: 2,
		Slots: 2,
		Bounds: []CountBound{
			{Name: "size", Items: []int{0, 1}, Min: 1, Max: 1},
		},
	}

	_, err := solver.Solve(problem, 1)
	if !errors.Is(err, ErrSearchBudget) {
		t.Fatalf("expected ErrSearchBudget, got %v", err)
	}
}

func TestBacktrackingSolverInvalidProblem(t *testing.T) {
	solver := &BacktrackingSolver{}

	if _, err := solver.Solve(Problem{Items: 2, Slots: 0}, 1); err == nil {
		t.Fatal("expected an error for a problem without slots")
	}
	problem := Problem{
		Items:  2,
		Slots:  2,
		Bounds: []CountBound{{Name: "bad", Items: []int{5}, Min: 0, Max: 1}},
	}
	if _, err := solver.Solve(problem, 1); err == nil {
		t.Fatal("expected an error for a bound referencing an unknown item")
	}
}
