package person

import (
	"github.com/google/uuid"
)

// Fixed values applied by the update routes.
const (
	DefaultAddedFood   = "hamburger"
	DefaultAgeOnUpdate = 20
)

// Person is the only document kept in the people collection.
// ID is assigned by the store on insert and never changes afterwards.
type Person struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Age           *int      `json:"age,omitempty"`
	FavoriteFoods []string  `json:"favoriteFoods"`
}

// HasFood reports whether food is one of the person's favorite foods
func (p *Person) HasFood(food string) bool {
	for _, f := range p.FavoriteFoods {
		if f == food {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores never hand out shared slices
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	out := *p
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	out.FavoriteFoods = make([]string, len(p.FavoriteFoods))
	copy(out.FavoriteFoods, p.FavoriteFoods)
	return &out
}

// Document is the stored body of a person, everything except the id.
// Backends persist it as JSON (jsonb in Postgres, TEXT in SQLite).
type Document struct {
	Name          string   `json:"name"`
	Age           *int     `json:"age,omitempty"`
	FavoriteFoods []string `json:"favoriteFoods"`
}

// ToDocument strips the identifier off a person
func (p *Person) ToDocument() Document {
	foods := p.FavoriteFoods
	if foods == nil {
		foods = []string{}
	}
	return Document{
		Name:          p.Name,
		Age:           p.Age,
		FavoriteFoods: foods,
	}
}

// ToPerson attaches an identifier to a stored document
func (d Document) ToPerson(id uuid.UUID) *Person {
	foods := d.FavoriteFoods
	if foods == nil {
		foods = []string{}
	}
	return &Person{
		ID:            id,
		Name:          d.Name,
		Age:           d.Age,
		FavoriteFoods: foods,
	}
}
