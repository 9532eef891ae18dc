package finder

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid roster")
	ErrRosterTooLarge = errors.New("roster exceeds player limit")
	ErrSearchTooLarge = errors.New("assignment search exceeds limit")
)

// Limits bounds the exponential search. Zero values mean unlimited.
type Limits struct {
	MaxPlayers int
	// MaxAssignments caps the number of partial assignments held for any
	// roster suffix. Exceeding it aborts the search with ErrSearchTooLarge.
	MaxAssignments int
}

// DefaultLimits matches the five-player cap of a League team.
var DefaultLimits = Limits{MaxPlayers: 5, MaxAssignments: 200000}

// Enumerate returns every valid assignment for roster using DefaultLimits.
func Enumerate(roster Roster) ([]Assignment, error) {
	return EnumerateWithLimits(roster, DefaultLimits)
}

// EnumerateWithLimits returns every assignment in which each player gets one of
// their own (champion, lane) candidates and no champion or lane repeats.
//
// Output order is deterministic: the first player's candidates in input
// order, then their lanes in enumeration order, then the solutions for the
// remaining players in the order they were produced.
func EnumerateWithLimits(roster Roster, limits Limits) ([]Assignment, error) {
	if err := validate(roster, limits); err != nil {
		return nil, err
	}
	return solve(roster, limits)
}

func validate(roster Roster, limits Limits) error {
	if len(roster) == 0 {
		return fmt.Errorf("%w: roster has no players", ErrInvalidInput)
	}
	if limits.MaxPlayers > 0 && len(roster) > limits.MaxPlayers {
		return fmt.Errorf("%w: %d players, limit is %d", ErrRosterTooLarge, len(roster), limits.MaxPlayers)
	}
	for i, player := range roster {
		seen := make(map[ChampionID]struct{}, len(player))
		for _, c := range player {
			if _, dup := seen[c.Champion]; dup {
				return fmt.Errorf("%w: player %d lists champion %q more than once", ErrInvalidInput, i+1, c.Champion)
			}
			seen[c.Champion] = struct{}{}
		}
	}
	return nil
}

// solve builds the assignments for players from the solutions of players[1:].
// A pick for the first player survives only if its champion and lane are
// absent from the tail solution it is prepended to.
func solve(players Roster, limits Limits) ([]Assignment, error) {
	var result []Assignment
	var err error

	if len(players) == 1 {
		for _, c := range players[0] {
			for _, lane := range c.Lanes.Lanes() {
				if result, err = push(result, Assignment{{Champion: c.Champion, Lane: lane}}, limits); err != nil {
					return nil, err
				}
			}
		}
		return result, nil
	}

	tails, err := solve(players[1:], limits)
	if err != nil {
		return nil, err
	}

	for _, c := range players[0] {
		for _, lane := range c.Lanes.Lanes() {
			for _, tail := range tails {
				if tail.hasChampion(c.Champion) || tail.hasLane(lane) {
					continue
				}
				combo := make(Assignment, 0, len(tail)+1)
				combo = append(combo, Pick{Champion: c.Champion, Lane: lane})
				combo = append(combo, tail...)
				if result, err = push(result, combo, limits); err != nil {
					return nil, err
				}
			}
		}
	}
	return result, nil
}

// push appends a to result unless that would take result past MaxAssignments.
func push(result []Assignment, a Assignment, limits Limits) ([]Assignment, error) {
	if limits.MaxAssignments > 0 && len(result) >= limits.MaxAssignments {
		return nil, fmt.Errorf("%w: more than %d partial assignments", ErrSearchTooLarge, limits.MaxAssignments)
	}
	return append(result, a), nil
}
