package game

import "errors"

var (
	// ErrNotAuthority is returned by every mutating call on an observer simulation.
	ErrNotAuthority = errors.New("simulation is not the authority")
	// ErrUnknownPlayer is returned for player ids that are not in the game.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrPlayerDefeated is returned when a defeated player issues a request.
	ErrPlayerDefeated = errors.New("player defeated")
	// ErrNotOwner is returned when removing another player's structure.
	ErrNotOwner = errors.New("structure belongs to another player")
	// ErrInsufficientResources is returned when a placement cannot be paid for.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrUnreachable is returned for move destinations the pathfinder rejects.
	ErrUnreachable = errors.New("destination unreachable")
	// ErrLoopStopped is returned when submitting to a loop that is not running.
	ErrLoopStopped = errors.New("simulation loop stopped")
)
