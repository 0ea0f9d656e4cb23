package services

import "github.com/thomas-vilte/github2range/internal/models"

// SuggestionSet keeps at most one suggestion per attachment source id. The
// first suggestion added for an id wins; later ones are dropped, not merged.
type SuggestionSet struct {
	seen  map[string]struct{}
	items []models.Suggestion
}

func NewSuggestionSet() *SuggestionSet {
	return &SuggestionSet{seen: make(map[string]struct{})}
}

// Add stores s unless its source id is already present, and reports whether
// it was stored.
func (s *SuggestionSet) Add(suggestion models.Suggestion) bool {
	id := suggestion.Attachment.SourceID
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, suggestion)
	return true
}

func (s *SuggestionSet) Len() int {
	return len(s.items)
}

// Suggestions returns the stored suggestions in insertion order.
func (s *SuggestionSet) Suggestions() []models.Suggestion {
	out := make([]models.Suggestion, len(s.items))
	copy(out, s.items)
	return out
}
