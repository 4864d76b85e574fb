package ride

// Status represents ride lifecycle status
type Status string

const (
	StatusRequested  Status = "requested"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses lists the five legal lifecycle values in order
var AllStatuses = []Status{
	StatusRequested,
	StatusAccepted,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// IsValid validates the status value
func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions is the status transition table. The current policy is fully
// permissive for direct status writes (any valid value from any state),
// matching the product's existing behavior; acceptance is the only strict
// edge and is enforced separately with a conditional update. Tightening
// the lifecycle later means editing this table, not the handlers.
var transitions = map[Status][]Status{
	StatusRequested:  {StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusAccepted:   {StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusCancelled:  {StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a direct status write from one status to
// another is allowed. Both values must be valid statuses.
func CanTransition(from, to Status) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
