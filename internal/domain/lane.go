package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Lane represents a League of Legends position
type Lane string

const (
	LaneTop     Lane = "top"
	LaneJungle  Lane = "jungle"
	LaneMid     Lane = "mid"
	LaneBottom  Lane = "bottom"
	LaneSupport Lane = "support"
)

// AllLanes contains all valid lanes in enumeration order
var AllLanes = []Lane{LaneTop, LaneJungle, LaneMid, LaneBottom, LaneSupport}

var laneAliases = map[string]Lane{
	"top":     LaneTop,
	"jungle":  LaneJungle,
	"jg":      LaneJungle,
	"mid":     LaneMid,
	"middle":  LaneMid,
	"bottom":  LaneBottom,
	"bot":     LaneBottom,
	"adc":     LaneBottom,
	"support": LaneSupport,
	"supp":    LaneSupport,
	"sup":     LaneSupport,
}

// ParseLane resolves a lane name or common alias, case insensitive
func ParseLane(s string) (Lane, error) {
	if l, ok := laneAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLane, s)
}

// IsValid checks if a lane is valid
func (l Lane) IsValid() bool {
	return l.bit() != 0
}

// String returns the string representation of the lane
func (l Lane) String() string {
	return string(l)
}

// DisplayName returns a user-friendly display name for the lane
func (l Lane) DisplayName() string {
	switch l {
	case LaneTop:
		return "Top"
	case LaneJungle:
		return "Jungle"
	case LaneMid:
		return "Mid"
	case LaneBottom:
		return "Bottom"
	case LaneSupport:
		return "Support"
	default:
		return string(l)
	}
}

func (l Lane) bit() LaneSet {
	for i, lane := range AllLanes {
		if lane == l {
			return 1 << i
		}
	}
	return 0
}

// LaneSet is a set of lanes stored as bit flags in AllLanes order.
type LaneSet uint8

// NewLaneSet builds a set from lanes. Invalid lanes are ignored.
func NewLaneSet(lanes ...Lane) LaneSet {
	var s LaneSet
	for _, l := range lanes {
		s = s.Add(l)
	}
	return s
}

// ParseLaneSet parses lane names into a set
func ParseLaneSet(names []string) (LaneSet, error) {
	var s LaneSet
	for _, n := range names {
		l, err := ParseLane(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(l)
	}
	return s, nil
}

func (s LaneSet) Add(l Lane) LaneSet {
	return s | l.bit()
}

func (s LaneSet) Has(l Lane) bool {
	b := l.bit()
	return b != 0 && s&b != 0
}

func (s LaneSet) IsEmpty() bool {
	return s == 0
}

func (s LaneSet) Len() int {
	n := 0
	for _, l := range AllLanes {
		if s.Has(l) {
			n++
		}
	}
	return n
}

// Lanes returns the members in enumeration order
func (s LaneSet) Lanes() []Lane {
	lanes := make([]Lane, 0, len(AllLanes))
	for _, l := range AllLanes {
		if s.Has(l) {
			lanes = append(lanes, l)
		}
	}
	return lanes
}

func (s LaneSet) Strings() []string {
	lanes := s.Lanes()
	out := make([]string, len(lanes))
	for i, l := range lanes {
		out[i] = string(l)
	}
	return out
}

func (s LaneSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *LaneSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseLaneSet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
