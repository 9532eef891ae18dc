package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChampionBuilder creates test champions
type ChampionBuilder struct {
	id       string
	key      string
	name     string
	title    string
	imageURL string
	tags     []string
	lanes    domain.LaneSet
}

// NewChampionBuilder creates a new ChampionBuilder with default values
func NewChampionBuilder() *ChampionBuilder {
	id := fmt.Sprintf("Champion%d", time.Now().UnixNano()%10000)
	return &ChampionBuilder{
		id:       id,
		key:      id,
		name:     id,
		title:    "The Test Champion",
		imageURL: fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/14.1.1/img/champion/%s.png", id),
		tags:     []string{"Fighter"},
		lanes:    domain.NewLaneSet(domain.LaneTop),
	}
}

// WithID sets the champion ID
func (b *ChampionBuilder) WithID(id string) *ChampionBuilder {
	b.id = id
	b.key = id
	b.name = id
	b.imageURL = fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/14.1.1/img/champion/%s.png", id)
	return b
}

// WithName sets the champion name
func (b *ChampionBuilder) WithName(name string) *ChampionBuilder {
	b.name = name
	return b
}

// WithTitle sets the champion title
func (b *ChampionBuilder) WithTitle(title string) *ChampionBuilder {
	b.title = title
	return b
}

// WithTags sets the champion tags
func (b *ChampionBuilder) WithTags(tags []string) *ChampionBuilder {
	b.tags = tags
	return b
}

// WithLanes sets the lanes the champion is eligible for
func (b *ChampionBuilder) WithLanes(lanes ...domain.Lane) *ChampionBuilder {
	b.lanes = domain.NewLaneSet(lanes...)
	return b
}

// Build creates the champion in the database
func (b *ChampionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Champion {
	t.Helper()

	tagsJSON, _ := json.Marshal(b.tags)
	champion := &domain.Champion{
		ID:           b.id,
		Key:          b.key,
		Name:         b.name,
		Title:        b.title,
		ImageURL:     b.imageURL,
		Tags:         datatypes.JSON(tagsJSON),
		LastSyncedAt: time.Now(),
	}
	champion.SetLaneSet(b.lanes)

	if err := db.Create(champion).Error; err != nil {
		t.Fatalf("failed to create champion: %v", err)
	}

	return champion
}

// SeedChampions creates N test champions in the database
func SeedChampions(t *testing.T, db *gorm.DB, count int) []*domain.Champion {
	t.Helper()

	champions := make([]*domain.Champion, count)
	for i := 0; i < count; i++ {
		champions[i] = NewChampionBuilder().
			WithID(fmt.Sprintf("TestChampion%d", i)).
			WithName(fmt.Sprintf("Test Champion %d", i)).
			Build(t, db)
	}
	return champions
}

// SkinsetBuilder creates test skinsets
type SkinsetBuilder struct {
	name      string
	champions []string
}

// NewSkinsetBuilder creates a builder for a skinset called name
func NewSkinsetBuilder(name string) *SkinsetBuilder {
	return &SkinsetBuilder{name: name}
}

// WithChampions sets the member champions
func (b *SkinsetBuilder) WithChampions(ids ...string) *SkinsetBuilder {
	b.champions = ids
	return b
}

// Build creates the skinset and its members in the database
func (b *SkinsetBuilder) Build(t *testing.T, db *gorm.DB) *domain.Skinset {
	t.Helper()

	id := refdata.Slug(b.name)
	skinset := &domain.Skinset{
		ID:        id,
		Name:      b.name,
		UpdatedAt: time.Now(),
	}
	for _, c := range b.champions {
		skinset.Members = append(skinset.Members, domain.SkinsetMember{SkinsetID: id, ChampionID: c})
	}

	if err := db.Create(skinset).Error; err != nil {
		t.Fatalf("failed to create skinset: %v", err)
	}

	return skinset
}

// ReferenceYAML is a small dataset with two overlapping skinsets.
const ReferenceYAML = `
skinsets:
  - name: Star Guardian
    champions: [Ahri, Lux, Jinx]
  - name: Arcade
    champions: [Ahri, Caitlyn]
lanes:
  Ahri: [mid]
  Lux: [mid, support]
  Jinx: [bottom]
  Caitlyn: [bottom]
`

// SeedReference imports ReferenceYAML through the skinset service
func SeedReference(t *testing.T, ts *TestServer) {
	t.Helper()

	ds, err := refdata.Load(bytes.NewBufferString(ReferenceYAML))
	if err != nil {
		t.Fatalf("failed to parse reference data: %v", err)
	}
	if _, err := ts.Services.Skinset.Import(context.Background(), ds); err != nil {
		t.Fatalf("failed to import reference data: %v", err)
	}
}

// AdminToken issues an admin token through the service
func AdminToken(t *testing.T, ts *TestServer) string {
	t.Helper()

	token, err := ts.Services.Admin.IssueToken(AdminPassword)
	if err != nil {
		t.Fatalf("failed to issue admin token: %v", err)
	}
	return token.Token
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		bodyReader = bytes.NewBuffer(nil)
	case string:
		bodyReader = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
