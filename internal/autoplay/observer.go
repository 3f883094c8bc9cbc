package autoplay

// Outcome classifies what a single tick did.
type Outcome string

const (
	OutcomeAdvanced  Outcome = "advanced"
	OutcomeWrapped   Outcome = "wrapped"
	OutcomeSuspended Outcome = "suspended"
	OutcomeHidden    Outcome = "hidden"
	OutcomeInactive  Outcome = "inactive"
)

// Observer receives scheduler events, typically for metrics.
type Observer interface {
	TickObserved(outcome Outcome)
	TimerStarted()
	TimerStopped()
}
