package domain

// Badge describes an unlockable achievement.
type Badge struct {
	ID          string
	Name        string
	Description string
	Requirement string
}

// Badges is the fixed catalog of achievements, keyed by ID in unlock checks.
var Badges = []Badge{
	{ID: "b1", Name: "First Step", Description: "Started your first goal.", Requirement: "Complete 1 goal"},
	{ID: "b2", Name: "Focus Master", Description: "Completed a task without pauses.", Requirement: "3 tasks focused"},
	{ID: "b3", Name: "Early Bird", Description: "Completed a task before 8 AM.", Requirement: "Morning productivity"},
	{ID: "b4", Name: "Consistency King", Description: "Maintained a 7-day streak.", Requirement: "7-day streak"},
	{ID: "b5", Name: "XP Hunter", Description: "Reached 500 total XP.", Requirement: "500 XP"},
	{ID: "b6", Name: "Time Bender", Description: "Finished a long task with time to spare.", Requirement: "Effort & Speed"},
	{ID: "b7", Name: "Pathfinder", Description: "Explored all categories.", Requirement: "Variety of goals"},
	{ID: "b8", Name: "Resilient", Description: "Recovered from a missed task.", Requirement: "Recovery mode use"},
	{ID: "b9", Name: "Architect", Description: "Built a full-day timetable.", Requirement: "Full schedule"},
	{ID: "b10", Name: "Grand Master", Description: "Reached level 10.", Requirement: "Level 10 reached"},
}

// BadgeByID looks up a badge in the catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
