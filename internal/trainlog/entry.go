package trainlog

import "time"

// Entry is one logged exercise performance: the weight, reps and sets
// done for an exercise in a single session. Entries are append only,
// the ios app never updates them through this service.
type Entry struct {
	ID          int64             `json:"id"`
	UserID      string            `json:"userId"`
	ExerciseID  string            `json:"exerciseId"`
	MuscleGroup string            `json:"muscleGroup"`
	Kilos       float64           `json:"kilos"`
	Reps        int               `json:"reps"`
	Sets        int               `json:"sets"`
	Effort      *int              `json:"effort,omitempty"`
	Metadata    map[string]string `json:"metadata"`
	CreatedAt   time.Time         `json:"createdAt"`
}

const (
	CategoryCompound  = "compound"
	CategoryIsolation = "isolation"
)

type ExerciseType struct {
	ExerciseID  string    `json:"exerciseId"`
	MuscleGroup string    `json:"muscleGroup"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (et ExerciseType) IsValid() bool {
	if et.ExerciseID == "" || et.MuscleGroup == "" || et.Name == "" {
		return false
	}
	return et.Category == CategoryCompound || et.Category == CategoryIsolation
}
