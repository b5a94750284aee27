package progression

type Action string

const (
	ActionIncreaseWeight Action = "increase_weight"
	ActionKeepWeight     Action = "keep_weight"
	ActionDeload         Action = "deload"
)

type ReasonCode string

const (
	ReasonMetTarget    ReasonCode = "met_target"
	ReasonNearFailure  ReasonCode = "near_failure"
	ReasonMissedTarget ReasonCode = "missed_target"
	ReasonPlateau      ReasonCode = "plateau"
)

// Targets is what the program prescribes for an exercise session.
type Targets struct {
	Sets int `json:"sets"`
	Reps int `json:"reps"`
}

// Suggestion tells the user what to do with the working weight on the
// next session of an exercise. No suggestion is made for exercises
// without any logged history.
type Suggestion struct {
	UserID       string     `json:"userId"`
	ExerciseID   string     `json:"exerciseId"`
	Action       Action     `json:"action"`
	CurrentKilos float64    `json:"currentKilos"`
	NextKilos    float64    `json:"nextKilos"`
	ReasonCode   ReasonCode `json:"reasonCode"`
	Reason       string     `json:"reason"`
}

// Tuning holds the progression knobs. The defaults follow the usual
// double progression numbers, config can override any of them.
type Tuning struct {
	CompoundIncrementKilos  float64
	IsolationIncrementKilos float64
	MaxEffortForIncrease    int
	NearFailureEffort       int
	PlateauMissThreshold    int
	DeloadFactor            float64
	LookbackEntries         int
}

func DefaultTuning() Tuning {
	return Tuning{
		CompoundIncrementKilos:  2.5,
		IsolationIncrementKilos: 1,
		MaxEffortForIncrease:    8,
		NearFailureEffort:       9,
		PlateauMissThreshold:    3,
		DeloadFactor:            0.9,
		LookbackEntries:         10,
	}
}
