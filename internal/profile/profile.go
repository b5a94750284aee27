package profile

import (
	"time"
)

var Goal = struct {
	Strength       string
	Muscle         string
	Endurance      string
	GeneralFitness string
}{
	Strength:       "strength",
	Muscle:         "muscle",
	Endurance:      "endurance",
	GeneralFitness: "general_fitness",
}

var Goals = []string{
	Goal.Strength,
	Goal.Muscle,
	Goal.Endurance,
	Goal.GeneralFitness,
}

var Level = struct {
	Beginner     string
	Intermediate string
	Advanced     string
}{
	Beginner:     "beginner",
	Intermediate: "intermediate",
	Advanced:     "advanced",
}

var Levels = []string{
	Level.Beginner,
	Level.Intermediate,
	Level.Advanced,
}

// Profile is what the user tells us about themselves. Filled in during
// onboarding, can stay half empty for a long while.
type Profile struct {
	UserID          string    `json:"userId"`
	Goal            string    `json:"goal"`
	ExperienceLevel string    `json:"experienceLevel"`
	DaysPerWeek     int       `json:"daysPerWeek"`
	SessionMinutes  int       `json:"sessionMinutes"`
	Equipment       []string  `json:"equipment"`
	Injuries        []string  `json:"injuries"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsComplete tells whether the profile carries enough for a program to
// be generated from it. Equipment and injuries may be empty for real,
// so they do not count.
func (p *Profile) IsComplete() bool {
	return p.Goal != "" &&
		p.ExperienceLevel != "" &&
		p.DaysPerWeek >= 1 &&
		p.SessionMinutes >= 1
}
