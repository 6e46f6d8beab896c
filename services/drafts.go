package services

import (
	"errors"
	"sort"
	"sync"

	"github.com/timecrax/webapp/models"
)

// ErrCardLimitReached rejects card saves once a theme holds the configured
// maximum number of cards.
var ErrCardLimitReached = errors.New("card limit for this theme reached")

// ThemeDraft is one theme being authored: its metadata plus the cards saved
// so far. It exists only while the authoring flow is open and is dropped on
// successful submission.
type ThemeDraft struct {
	// ThemeID is set when the draft was loaded from an existing theme.
	ThemeID    string
	Name       string
	Resume     string
	CoverImage string

	mu    sync.Mutex
	cards []models.SavedCard
}

// NextOrderIndex returns max existing index + 1 (0 when empty). Indices are
// never reused after a deletion, so mid-edit forms keep addressing the same
// backend slots.
func (d *ThemeDraft) NextOrderIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	max := -1
	for _, c := range d.cards {
		if c.OrderIndex > max {
			max = c.OrderIndex
		}
	}
	return max + 1
}

// SaveCard replaces an existing card in place when the id matches, and
// appends otherwise. The maxCards cap applies only to new cards.
func (d *ThemeDraft) SaveCard(card models.SavedCard, maxCards int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for idx, existing := range d.cards {
		if existing.ID == card.ID {
			d.cards[idx] = card
			return nil
		}
	}
	if len(d.cards) >= maxCards {
		return ErrCardLimitReached
	}
	d.cards = append(d.cards, card)
	return nil
}

// DeleteCard removes the card with the given id, reporting whether it was
// present. It does not touch backend assets; callers delete those first.
func (d *ThemeDraft) DeleteCard(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for idx, c := range d.cards {
		if c.ID == id {
			d.cards = append(d.cards[:idx], d.cards[idx+1:]...)
			return true
		}
	}
	return false
}

func (d *ThemeDraft) CardByID(id string) (models.SavedCard, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.SavedCard{}, false
}

// Cards returns a copy sorted by order index ascending.
func (d *ThemeDraft) Cards() []models.SavedCard {
	d.mu.Lock()
	defer d.mu.Unlock()

	cards := make([]models.SavedCard, len(d.cards))
	copy(cards, d.cards)
	sort.Slice(cards, func(a, b int) bool { return cards[a].OrderIndex < cards[b].OrderIndex })
	return cards
}

func (d *ThemeDraft) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// DraftStore holds in-flight theme drafts keyed by their backend upload
// session id.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*ThemeDraft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*ThemeDraft)}
}

// Create registers an empty draft under the session id and returns it. An
// existing draft for the same session is replaced.
func (s *DraftStore) Create(sessionID string) *ThemeDraft {
	d := &ThemeDraft{}

	s.mu.Lock()
	s.drafts[sessionID] = d
	s.mu.Unlock()

	return d
}

// Put registers a pre-populated draft (edit flow) under the session id.
func (s *DraftStore) Put(sessionID string, d *ThemeDraft) {
	s.mu.Lock()
	s.drafts[sessionID] = d
	s.mu.Unlock()
}

// Get returns the draft for a session id, or nil if none exists.
func (s *DraftStore) Get(sessionID string) *ThemeDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[sessionID]
}

// Delete drops a draft, typically after successful submission.
func (s *DraftStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.drafts, sessionID)
	s.mu.Unlock()
}
