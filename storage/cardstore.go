package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fleece-labs/fleece-api/models"
	"github.com/fleece-labs/fleece-api/services"
)

// ErrCardNotFound is returned when an update or delete addresses an ID
// that is not in the portfolio.
var ErrCardNotFound = errors.New("card not found")

// CardStore persists the user's card portfolio as one JSON document.
// The whole file is read on access and rewritten wholesale on every
// mutation; the file is the source of truth, so a failed write leaves
// no phantom in-memory state behind. A missing file is an empty
// portfolio.
type CardStore struct {
	path string
	mu   sync.Mutex
}

func NewCardStore(path string) *CardStore {
	return &CardStore{path: path}
}

// List returns the portfolio in stored order.
func (s *CardStore) List() ([]models.UserCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the card with the given ID.
func (s *CardStore) Get(id string) (*models.UserCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i], nil
		}
	}
	return nil, ErrCardNotFound
}

// Add appends a card and rewrites the document.
func (s *CardStore) Add(card models.UserCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(cards, card))
}

// Update replaces the stored card with the same ID.
func (s *CardStore) Update(card models.UserCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load()
	if err != nil {
		return err
	}
	for i := range cards {
		if cards[i].ID == card.ID {
			cards[i] = card
			return s.save(cards)
		}
	}
	return ErrCardNotFound
}

// Delete removes the card with the given ID.
func (s *CardStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.load()
	if err != nil {
		return err
	}
	for i := range cards {
		if cards[i].ID == id {
			return s.save(append(cards[:i], cards[i+1:]...))
		}
	}
	return ErrCardNotFound
}

func (s *CardStore) load() ([]models.UserCard, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.UserCard{}, nil
		}
		return nil, fmt.Errorf("failed to read card store: %w", err)
	}

	var cards []models.UserCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse card store: %w", err)
	}
	if cards == nil {
		cards = []models.UserCard{}
	}
	return cards, nil
}

func (s *CardStore) save(cards []models.UserCard) error {
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode card store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write card store: %w", err)
	}
	return nil
}

// SortUserCards orders a portfolio snapshot for display. Unknown keys
// fall back to name order. The sort is stable so equal keys keep their
// stored order.
func SortUserCards(cards []models.UserCard, key string) {
	switch key {
	case "annual_fee":
		sort.SliceStable(cards, func(i, j int) bool {
			return services.ParseAnnualFee(cards[i].AnnualFee) < services.ParseAnnualFee(cards[j].AnnualFee)
		})
	case "credit_limit":
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreditLimit > cards[j].CreditLimit
		})
	case "date_added":
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].DateAdded > cards[j].DateAdded
		})
	default:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Name < cards[j].Name
		})
	}
}
