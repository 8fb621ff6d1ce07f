// Package swarm implements the adaptive task-assignment core: a registry
// of agents and tasks, and a controller that ranks eligible agents with
// the scoring contract, records assignments, and routes completion
// outcomes back into each agent's confidence model.
//
// The controller is the only writer of task lifecycle transitions. All
// reads hand out deep copies or dedicated snapshot types, so callers can
// inspect the pool while assignment and learning continue concurrently.
package swarm
