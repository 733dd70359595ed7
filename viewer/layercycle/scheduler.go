package layercycle

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/fiathux/genesm"
)

// quarterTurn is the angle swept by a single layer turn.
const quarterTurn = float32(math.Pi / 2)

// LayerRotator receives the animated layer angles produced by the Scheduler.
// The scene graph implements it.
type LayerRotator interface {
	// LayerCount returns the number of horizontal layers that can be rotated.
	//
	// Returns:
	//   - int: the layer count
	LayerCount() int

	// SetLayerAngle sets the rotation angle of a layer about the Y axis.
	//
	// Parameters:
	//   - index: the layer index
	//   - radians: the absolute rotation angle
	SetLayerAngle(index int, radians float32)
}

// schedulerImpl is the implementation of the Scheduler interface.
//
// Phase transitions run through a two-state machine (paused, rotating) so the
// turn lifecycle is explicit: the rotating->paused event hook is the single
// place where an in-flight turn settles, snapping the layer to an exact
// quarter-turn multiple and advancing the cycle to the next layer.
type schedulerImpl struct {
	mu *sync.Mutex

	rotator LayerRotator

	pauseDuration  time.Duration
	rotateDuration time.Duration

	activeLayer int
	// Settled quarter turns per layer, kept modulo 4 so accumulated angles
	// never grow without bound.
	quarterTurns []int

	phaseStart time.Time
	started    bool

	sm            *genesm.StateMachine[*schedulerImpl]
	pausedState   genesm.StateBinder[*schedulerImpl, string]
	rotatingState genesm.StateBinder[*schedulerImpl, string]
	evStartTurn   genesm.EventX[*schedulerImpl, string, string]
	evSettleTurn  genesm.EventX[*schedulerImpl, string, string]
}

// Scheduler drives the periodic layer-turn animation: a fixed pause, then a
// 90 degree turn of the active layer, then the next layer, cycling forever.
type Scheduler interface {
	// Step advances the animation to the given time. Call once per frame.
	//
	// Parameters:
	//   - now: the current time
	Step(now time.Time)

	// ActiveLayer returns the index of the layer currently being cycled.
	//
	// Returns:
	//   - int: the active layer index
	ActiveLayer() int

	// Rotating returns whether a layer turn is currently in progress.
	//
	// Returns:
	//   - bool: true while a turn animates
	Rotating() bool

	// LayerAngle returns the settled angle of a layer, excluding any in-flight
	// animation. Always a quarter-turn multiple in [0, 2*pi).
	//
	// Parameters:
	//   - index: the layer index
	//
	// Returns:
	//   - float32: the settled angle in radians
	LayerAngle(index int) float32
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a layer-turn Scheduler bound to the given rotator.
//
// Parameters:
//   - rotator: the target receiving animated layer angles
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(rotator LayerRotator, options ...SchedulerOption) Scheduler {
	s := &schedulerImpl{
		mu:             &sync.Mutex{},
		rotator:        rotator,
		pauseDuration:  3000 * time.Millisecond,
		rotateDuration: 1000 * time.Millisecond,
		quarterTurns:   make([]int, rotator.LayerCount()),
	}
	for _, option := range options {
		option(s)
	}

	s.sm = genesm.NewStateMachine(s)
	s.pausedState = genesm.RegState(s.sm, "paused")
	s.rotatingState = genesm.RegState(s.sm, "rotating")
	s.evStartTurn = genesm.RegEvent(s.sm, s.pausedState, s.rotatingState)
	s.evSettleTurn = genesm.RegEvent(s.sm, s.rotatingState, s.pausedState)
	s.evSettleTurn.SetHook(func(owner *schedulerImpl, _ string, _ string) error {
		owner.settleLocked()
		return nil
	})
	return s
}

func (s *schedulerImpl) Step(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.phaseStart = now
		s.started = true
		return
	}

	if s.sm.StateID() == s.pausedState.ID() {
		if now.Sub(s.phaseStart) < s.pauseDuration {
			return
		}
		// Advance by the phase length rather than snapping to now, so slow
		// frames do not accumulate drift across the cycle.
		s.phaseStart = s.phaseStart.Add(s.pauseDuration)
		if err := s.evStartTurn.Trigger(); err != nil {
			log.Printf("[LayerCycle] start turn: %v", err)
		}
		return
	}

	elapsed := now.Sub(s.phaseStart)
	if elapsed >= s.rotateDuration {
		s.phaseStart = s.phaseStart.Add(s.rotateDuration)
		if err := s.evSettleTurn.Trigger(); err != nil {
			log.Printf("[LayerCycle] settle turn: %v", err)
		}
		return
	}

	frac := float32(elapsed) / float32(s.rotateDuration)
	s.rotator.SetLayerAngle(s.activeLayer, s.settledAngle(s.activeLayer)+quarterTurn*frac)
}

// settleLocked finalizes the in-flight turn: the active layer snaps to its
// next exact quarter turn and the cycle moves on. Called from the
// rotating->paused event hook with the scheduler mutex held.
func (s *schedulerImpl) settleLocked() {
	s.quarterTurns[s.activeLayer] = (s.quarterTurns[s.activeLayer] + 1) % 4
	s.rotator.SetLayerAngle(s.activeLayer, s.settledAngle(s.activeLayer))
	s.activeLayer = (s.activeLayer + 1) % s.rotator.LayerCount()
}

func (s *schedulerImpl) settledAngle(index int) float32 {
	return float32(s.quarterTurns[index]) * quarterTurn
}

func (s *schedulerImpl) ActiveLayer() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLayer
}

func (s *schedulerImpl) Rotating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sm.StateID() == s.rotatingState.ID()
}

func (s *schedulerImpl) LayerAngle(index int) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.quarterTurns) {
		return 0
	}
	return s.settledAngle(index)
}
