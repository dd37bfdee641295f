package tournament

import "slices"

// Status is the lifecycle state of the tournament.
type Status int

const (
	StatusIdle Status = iota
	StatusScheduleReady
	StatusRaceInProgress
	StatusRaceCompleted
	StatusAllRacesCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusScheduleReady:
		return "SCHEDULE_READY"
	case StatusRaceInProgress:
		return "RACE_IN_PROGRESS"
	case StatusRaceCompleted:
		return "RACE_COMPLETED"
	case StatusAllRacesCompleted:
		return "ALL_RACES_COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// transitions is the whitelist of allowed status changes.
var transitions = map[Status][]Status{
	StatusIdle:              {StatusScheduleReady},
	StatusScheduleReady:     {StatusRaceInProgress, StatusIdle},
	StatusRaceInProgress:    {StatusRaceCompleted},
	StatusRaceCompleted:     {StatusScheduleReady, StatusAllRacesCompleted, StatusIdle},
	StatusAllRacesCompleted: {StatusIdle},
}

// AllowedFrom returns the statuses reachable from s.
func AllowedFrom(s Status) []Status {
	return slices.Clone(transitions[s])
}

// CanTransition reports whether from -> to is on the whitelist.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// RoundStatus is the lifecycle state of a single round.
type RoundStatus int

const (
	RoundPending RoundStatus = iota
	RoundInProgress
	RoundCompleted
)

func (s RoundStatus) String() string {
	switch s {
	case RoundPending:
		return "PENDING"
	case RoundInProgress:
		return "IN_PROGRESS"
	case RoundCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}
