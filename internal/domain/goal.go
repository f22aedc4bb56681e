package domain

import "time"

// Goal is a user-defined objective broken down into an ordered sequence of
// sub-tasks. CheckpointIndex is the step the user resumes into after a
// reload; it advances monotonically as steps complete.
type Goal struct {
	ID       string
	Title    string
	Category string
	Topic    string
	Notes    string

	Status          GoalStatus
	CheckpointIndex int
	SubTasks        []*SubTask

	CreatedAt  time.Time
	FinishedAt *time.Time
	UpdatedAt  time.Time
}

// AwaitingBreakdown reports whether the goal has not yet received its
// decomposition. An empty step list means "not yet decomposed", never an
// empty path.
func (g *Goal) AwaitingBreakdown() bool {
	return len(g.SubTasks) == 0
}

// ActiveStep returns the sub-task at the checkpoint index, or nil when the
// goal has no steps or the index is out of range.
func (g *Goal) ActiveStep() *SubTask {
	if g.CheckpointIndex < 0 || g.CheckpointIndex >= len(g.SubTasks) {
		return nil
	}
	return g.SubTasks[g.CheckpointIndex]
}

// AdvanceCheckpoint moves the checkpoint to index+1 when another step
// exists. The final step remains the checkpoint so a reload lands there.
func (g *Goal) AdvanceCheckpoint(index int) {
	if index < len(g.SubTasks)-1 {
		g.CheckpointIndex = index + 1
	}
}

// CompletedSteps counts steps in the terminal completed state.
func (g *Goal) CompletedSteps() int {
	n := 0
	for _, t := range g.SubTasks {
		if t.Completed() {
			n++
		}
	}
	return n
}

// Finish marks the goal completed and stamps the finish time.
func (g *Goal) Finish(now time.Time) {
	g.Status = GoalCompleted
	finished := now
	g.FinishedAt = &finished
	g.UpdatedAt = now
}
