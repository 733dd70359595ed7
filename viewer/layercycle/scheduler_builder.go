package layercycle

import "time"

// SchedulerOption is a functional option for configuring a Scheduler.
type SchedulerOption func(*schedulerImpl)

// WithPauseDuration sets the idle time between layer turns.
//
// Parameters:
//   - d: the pause duration
//
// Returns:
//   - SchedulerOption: option function to apply
func WithPauseDuration(d time.Duration) SchedulerOption {
	return func(s *schedulerImpl) {
		s.pauseDuration = d
	}
}

// WithRotateDuration sets the time a single 90 degree turn takes.
//
// Parameters:
//   - d: the turn duration
//
// Returns:
//   - SchedulerOption: option function to apply
func WithRotateDuration(d time.Duration) SchedulerOption {
	return func(s *schedulerImpl) {
		s.rotateDuration = d
	}
}

// WithStartLayer sets the layer the cycle begins with.
//
// Parameters:
//   - index: the starting layer index
//
// Returns:
//   - SchedulerOption: option function to apply
func WithStartLayer(index int) SchedulerOption {
	return func(s *schedulerImpl) {
		if index >= 0 && index < len(s.quarterTurns) {
			s.activeLayer = index
		}
	}
}
