package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Verb validation errors.
var (
	ErrVerbIDEmpty            = errors.New("verb ID cannot be empty")
	ErrVerbPairIDEmpty        = errors.New("verb pair ID cannot be empty")
	ErrVerbRootEmpty          = errors.New("verb root cannot be empty")
	ErrInvalidConjugationType = errors.New("conjugation type must be 1 or 2")
	ErrInvalidAspectContent   = errors.New("aspect content must be valid JSON")
	ErrInvalidTranslations    = errors.New("translations must be valid JSON")
)

// Verb is a Russian verb pair (imperfective/perfective) with its
// conjugation tables. The per-aspect data is stored as JSONB so entries
// can carry whatever tenses and participles the source material has.
type Verb struct {
	ID              uuid.UUID       `json:"id"`
	VerbPairID      string          `json:"verb_pair_id"`
	Translations    json.RawMessage `json:"translations,omitempty"`
	ConjugationType int             `json:"conjugation_type"`
	Root            string          `json:"root"`
	StressPattern   string          `json:"stress_pattern,omitempty"`
	Imperfective    json.RawMessage `json:"imperfective,omitempty"`
	Perfective      json.RawMessage `json:"perfective,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewVerb creates a new Verb with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewVerb(
	pairID string,
	conjugationType int,
	root string,
	translations, imperfective, perfective json.RawMessage,
) (*Verb, error) {
	now := time.Now().UTC()
	verb := &Verb{
		ID:              uuid.New(),
		VerbPairID:      pairID,
		Translations:    translations,
		ConjugationType: conjugationType,
		Root:            root,
		Imperfective:    imperfective,
		Perfective:      perfective,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := verb.Validate(); err != nil {
		return nil, err
	}

	return verb, nil
}

// Validate checks if the Verb has valid data.
func (v *Verb) Validate() error {
	if v.ID == uuid.Nil {
		return ErrVerbIDEmpty
	}
	if v.VerbPairID == "" {
		return ErrVerbPairIDEmpty
	}
	if v.Root == "" {
		return ErrVerbRootEmpty
	}
	if v.ConjugationType != 1 && v.ConjugationType != 2 {
		return ErrInvalidConjugationType
	}
	if !validJSONOrEmpty(v.Translations) {
		return ErrInvalidTranslations
	}
	if !validJSONOrEmpty(v.Imperfective) || !validJSONOrEmpty(v.Perfective) {
		return ErrInvalidAspectContent
	}
	return nil
}

// AspectConjugations holds the conjugation forms of one aspect, grouped
// by tense (or mood, for the imperative). Each table maps a
// person/number key such as "1sg" or "3pl" to the surface form.
type AspectConjugations struct {
	Infinitive string                       `json:"infinitive,omitempty"`
	Tenses     map[string]map[string]string `json:"tenses"`
}

// ConjugationSet is the grouped view of a verb's stored forms, as served
// by the conjugations endpoint.
type ConjugationSet struct {
	VerbPairID   string              `json:"verb_pair_id"`
	Imperfective *AspectConjugations `json:"imperfective,omitempty"`
	Perfective   *AspectConjugations `json:"perfective,omitempty"`
}

// Conjugations regroups the stored aspect JSON into tense-keyed form
// tables. It is a reshaping of stored data only; nothing is derived.
func (v *Verb) Conjugations() (*ConjugationSet, error) {
	set := &ConjugationSet{VerbPairID: v.VerbPairID}

	imperfective, err := reshapeAspect(v.Imperfective)
	if err != nil {
		return nil, err
	}
	set.Imperfective = imperfective

	perfective, err := reshapeAspect(v.Perfective)
	if err != nil {
		return nil, err
	}
	set.Perfective = perfective

	return set, nil
}

// reshapeAspect extracts the infinitive and every tense table from one
// aspect's stored JSON. Keys whose values are not string-to-string
// objects (notes, participles stored as lists, etc.) are skipped.
func reshapeAspect(raw json.RawMessage) (*AspectConjugations, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, ErrInvalidAspectContent
	}
	if len(fields) == 0 {
		return nil, nil
	}

	aspect := &AspectConjugations{Tenses: map[string]map[string]string{}}
	for key, value := range fields {
		if key == "infinitive" {
			var inf string
			if err := json.Unmarshal(value, &inf); err == nil {
				aspect.Infinitive = inf
			}
			continue
		}

		var table map[string]string
		if err := json.Unmarshal(value, &table); err == nil && len(table) > 0 {
			aspect.Tenses[key] = table
		}
	}

	return aspect, nil
}

func validJSONOrEmpty(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	return json.Valid(raw)
}
