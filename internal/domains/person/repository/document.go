package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"people-service/internal/domains/person"
)

// prepareInsert enforces the store level rules every backend shares:
// a name is required, the id is assigned here, favoriteFoods is never nil.
// The caller's struct is not modified.
func prepareInsert(p *person.Person) (*person.Person, error) {
	if p == nil {
		return nil, person.NewValidationError(fmt.Errorf("person is required"))
	}
	if p.Name == "" {
		return nil, person.NewValidationError(fmt.Errorf("name: is required"))
	}

	out := p.Clone()
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	return out, nil
}

// prepareBatch runs prepareInsert over the batch and fails on the first
// invalid item, before any of them reach the store.
func prepareBatch(people []*person.Person) ([]*person.Person, error) {
	out := make([]*person.Person, 0, len(people))
	for i, p := range people {
		prepared, err := prepareInsert(p)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, prepared)
	}
	return out, nil
}

func encodeDocument(p *person.Person) ([]byte, error) {
	data, err := json.Marshal(p.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("failed to encode person document: %w", err)
	}
	return data, nil
}

func decodeDocument(id uuid.UUID, raw []byte) (*person.Person, error) {
	var doc person.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode person document %s: %w", id, err)
	}
	return doc.ToPerson(id), nil
}

func errDuplicateID(id uuid.UUID) error {
	return fmt.Errorf("id %s already exists", id)
}
