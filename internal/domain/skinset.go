package domain

import "time"

// Skinset is a named cosmetic theme shared by a group of champions
type Skinset struct {
	ID        string          `json:"id" gorm:"primaryKey"` // slug, e.g. "star-guardian"
	Name      string          `json:"name" gorm:"not null;uniqueIndex"`
	Members   []SkinsetMember `json:"members,omitempty" gorm:"foreignKey:SkinsetID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Skinset) TableName() string {
	return "skinsets"
}

// ChampionIDs returns the member champion ids in stored order
func (s *Skinset) ChampionIDs() []string {
	ids := make([]string, len(s.Members))
	for i, m := range s.Members {
		ids[i] = m.ChampionID
	}
	return ids
}

// SkinsetMember links a champion to a skinset
type SkinsetMember struct {
	SkinsetID  string `json:"skinsetId" gorm:"primaryKey"`
	ChampionID string `json:"championId" gorm:"primaryKey;index"`
}

// TableName returns the table name for GORM
func (SkinsetMember) TableName() string {
	return "skinset_members"
}
