package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Champion struct {
	ID           string         `json:"id" gorm:"primaryKey"`     // e.g., "Aatrox"
	Key          string         `json:"key"`                      // e.g., "266"
	Name         string         `json:"name" gorm:"not null"`     // Display name
	Title        string         `json:"title"`                    // e.g., "the Darkin Blade"
	ImageURL     string         `json:"imageUrl"`                 // Full URL to champion image
	Tags         datatypes.JSON `json:"tags" gorm:"type:jsonb"`   // ["Fighter", "Tank"]
	Lanes        datatypes.JSON `json:"lanes" gorm:"type:jsonb"`  // ["mid", "top"] - lanes the champion is eligible for
	LastSyncedAt time.Time      `json:"lastSyncedAt"`
}

// LaneSet decodes the stored lane list. Unknown lanes are skipped.
func (c *Champion) LaneSet() LaneSet {
	if len(c.Lanes) == 0 {
		return 0
	}
	var names []string
	if err := json.Unmarshal(c.Lanes, &names); err != nil {
		return 0
	}
	var s LaneSet
	for _, n := range names {
		if l, err := ParseLane(n); err == nil {
			s = s.Add(l)
		}
	}
	return s
}

// SetLaneSet stores the lanes in enumeration order
func (c *Champion) SetLaneSet(s LaneSet) {
	data, _ := json.Marshal(s.Strings())
	c.Lanes = datatypes.JSON(data)
}

// TagList decodes the stored tags
func (c *Champion) TagList() []string {
	var tags []string
	if len(c.Tags) > 0 {
		_ = json.Unmarshal(c.Tags, &tags)
	}
	return tags
}

type ChampionTag string

const (
	TagFighter  ChampionTag = "Fighter"
	TagTank     ChampionTag = "Tank"
	TagMage     ChampionTag = "Mage"
	TagAssassin ChampionTag = "Assassin"
	TagSupport  ChampionTag = "Support"
	TagMarksman ChampionTag = "Marksman"
)
