package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Gender is the grammatical gender of a noun.
type Gender string

// Grammatical genders of Russian nouns.
const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderNeuter    Gender = "neuter"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMasculine, GenderFeminine, GenderNeuter:
		return true
	}
	return false
}

// Noun validation errors.
var (
	ErrNounIDEmpty       = errors.New("noun ID cannot be empty")
	ErrNounEmpty         = errors.New("noun cannot be empty")
	ErrInvalidGender     = errors.New("gender must be masculine, feminine or neuter")
	ErrInvalidDeclension = errors.New("declension must be valid JSON")
)

// Noun is a Russian noun with its declension table stored as JSONB
// (case × number → surface form).
type Noun struct {
	ID           uuid.UUID       `json:"id"`
	Noun         string          `json:"noun"`
	Gender       Gender          `json:"gender"`
	Translations json.RawMessage `json:"translations,omitempty"`
	Declension   json.RawMessage `json:"declension,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewNoun creates a new Noun with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewNoun(word string, gender Gender, translations, declension json.RawMessage) (*Noun, error) {
	now := time.Now().UTC()
	noun := &Noun{
		ID:           uuid.New(),
		Noun:         word,
		Gender:       gender,
		Translations: translations,
		Declension:   declension,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := noun.Validate(); err != nil {
		return nil, err
	}

	return noun, nil
}

// Validate checks if the Noun has valid data.
func (n *Noun) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNounIDEmpty
	}
	if n.Noun == "" {
		return ErrNounEmpty
	}
	if !n.Gender.Valid() {
		return ErrInvalidGender
	}
	if !validJSONOrEmpty(n.Translations) {
		return ErrInvalidTranslations
	}
	if !validJSONOrEmpty(n.Declension) {
		return ErrInvalidDeclension
	}
	return nil
}
