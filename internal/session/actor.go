// Package session holds the quiz-taking state machines as pure reducers.
// State values are immutable from the caller's perspective: every reducer
// returns a new state and never mutates its input, so the transitions are
// testable without any HTTP or storage harness.
package session

// Actor is the read-only identity context a session runs under. Sessions
// never mutate it; map quiz sessions accept anonymous actors and simply
// skip score submission for them.
type Actor struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
}

// Anonymous is the actor for unauthenticated map quiz players.
var Anonymous = Actor{}
