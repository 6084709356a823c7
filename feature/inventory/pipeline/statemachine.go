package pipeline

import (
	"context"
	"errors"
	"fmt"

	sw "github.com/filanov/stateswitch"
)

const (
	// run states
	//
	// states an inventory run transitions through
	StateReceived          sw.State = "received"
	StateValidated         sw.State = "validated"
	StateMetadataExtracted sw.State = "metadata_extracted"
	StateOwnerResolved     sw.State = "owner_resolved"
	StateNormalized        sw.State = "normalized"
	StateReconciled        sw.State = "reconciled"
	StatePersisted         sw.State = "persisted"
	StateCommitted         sw.State = "committed"
	StateAborted           sw.State = "aborted"

	Validate        sw.TransitionType = "validate"
	ExtractMetadata sw.TransitionType = "extractMetadata"
	ResolveOwner    sw.TransitionType = "resolveOwner"
	Normalize       sw.TransitionType = "normalize"
	Reconcile       sw.TransitionType = "reconcile"
	Persist         sw.TransitionType = "persist"
	Commit          sw.TransitionType = "commit"
	Abort           sw.TransitionType = "abort"
)

var (
	ErrInvalidRun            = errors.New("expected a *Run state switch")
	ErrInvalidHandlerContext = errors.New("expected a *HandlerContext transition argument")
)

// HandlerContext is passed to every transition handler of a run.
type HandlerContext struct {
	// Ctx is the parent context of the submission.
	Ctx context.Context
}

// Transitioner implements the stage handlers of an inventory run.
type Transitioner interface {
	Validate(sw sw.StateSwitch, args sw.TransitionArgs) error
	ExtractMetadata(sw sw.StateSwitch, args sw.TransitionArgs) error
	ResolveOwner(sw sw.StateSwitch, args sw.TransitionArgs) error
	Normalize(sw sw.StateSwitch, args sw.TransitionArgs) error
	Reconcile(sw sw.StateSwitch, args sw.TransitionArgs) error
	Persist(sw sw.StateSwitch, args sw.TransitionArgs) error
	Commit(sw sw.StateSwitch, args sw.TransitionArgs) error
	Abort(sw sw.StateSwitch, args sw.TransitionArgs) error
	LogState(sw sw.StateSwitch, args sw.TransitionArgs) error
}

// RunStateMachine drives a run through its stages in order.
type RunStateMachine struct {
	sm          sw.StateMachine
	transitions []sw.TransitionType
}

type rule struct {
	transition sw.TransitionType
	source     sw.State
	dest       sw.State
}

// stages lists each forward transition with its source and destination state.
var stages = []rule{
	{Validate, StateReceived, StateValidated},
	{ExtractMetadata, StateValidated, StateMetadataExtracted},
	{ResolveOwner, StateMetadataExtracted, StateOwnerResolved},
	{Normalize, StateOwnerResolved, StateNormalized},
	{Reconcile, StateNormalized, StateReconciled},
	{Persist, StateReconciled, StatePersisted},
	{Commit, StatePersisted, StateCommitted},
}

// NewRunStateMachine wires the handler methods into transition rules.
func NewRunStateMachine(handler Transitioner) *RunStateMachine {
	handlers := map[sw.TransitionType]func(sw.StateSwitch, sw.TransitionArgs) error{
		Validate:        handler.Validate,
		ExtractMetadata: handler.ExtractMetadata,
		ResolveOwner:    handler.ResolveOwner,
		Normalize:       handler.Normalize,
		Reconcile:       handler.Reconcile,
		Persist:         handler.Persist,
		Commit:          handler.Commit,
	}

	m := &RunStateMachine{sm: sw.NewStateMachine()}

	abortable := sw.States{}
	for _, s := range stages {
		m.transitions = append(m.transitions, s.transition)
		abortable = append(abortable, s.source)

		m.sm.AddTransition(sw.TransitionRule{
			TransitionType:   s.transition,
			SourceStates:     sw.States{s.source},
			DestinationState: s.dest,
			Transition:       handlers[s.transition],
			PostTransition:   handler.LogState,
		})
	}

	// Committed is terminal; every earlier state may abort.
	m.sm.AddTransition(sw.TransitionRule{
		TransitionType:   Abort,
		SourceStates:     abortable,
		DestinationState: StateAborted,
		Transition:       handler.Abort,
		PostTransition:   handler.LogState,
	})

	return m
}

// Run executes the transitions in order. On the first failure the run is
// recorded as failed and aborted; the returned error is the failure.
func (m *RunStateMachine) Run(run *Run, tctx *HandlerContext) error {
	var err error

	defer func() {
		if err != nil {
			run.fail(err)
			if abortErr := m.sm.Run(Abort, run, tctx); abortErr != nil {
				// the run must still end aborted
				_ = run.SetState(StateAborted)
			}
		}
	}()

	for _, transitionType := range m.transitions {
		err = m.sm.Run(transitionType, run, tctx)
		if err != nil {
			if errors.Is(err, sw.NoConditionPassedToRunTransaction) {
				err = fmt.Errorf("%w: no transition rule found for transition type '%s' and state '%s'",
					ErrTransition, transitionType, run.State())
			}
			return err
		}
	}

	return nil
}

func runFrom(s sw.StateSwitch, args sw.TransitionArgs) (*Run, *HandlerContext, error) {
	run, ok := s.(*Run)
	if !ok {
		return nil, nil, ErrInvalidRun
	}
	tctx, ok := args.(*HandlerContext)
	if !ok {
		return nil, nil, ErrInvalidHandlerContext
	}
	return run, tctx, nil
}
