// Package pipeline runs inventory documents through a state machine:
// received, validated, metadata extracted, owner resolved, normalized,
// reconciled, persisted and committed, or aborted from any earlier state.
//
// Steps from owner resolution to persistence share one transaction. The owning
// item is locked before anything is written and released on commit or abort.
package pipeline
