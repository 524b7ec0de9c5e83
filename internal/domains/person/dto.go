package person

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreatePersonRequest - POST /people, one element of POST /people/many
type CreatePersonRequest struct {
	Name          string   `json:"name"`
	Age           *int     `json:"age,omitempty"`
	FavoriteFoods []string `json:"favoriteFoods,omitempty"`
}

// Validate only enforces what the store itself requires: a name.
func (r CreatePersonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
		),
	)
}

// ToEntity converts the request to a Person without an id.
// favoriteFoods defaults to an empty sequence.
func (r *CreatePersonRequest) ToEntity() *Person {
	foods := make([]string, len(r.FavoriteFoods))
	copy(foods, r.FavoriteFoods)

	var age *int
	if r.Age != nil {
		v := *r.Age
		age = &v
	}

	return &Person{
		Name:          r.Name,
		Age:           age,
		FavoriteFoods: foods,
	}
}

// ValidateBatch validates every item and keys the failures by position
// so the caller can tell which element of the batch was rejected.
func ValidateBatch(reqs []CreatePersonRequest) error {
	errs := validation.Errors{}
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ========================================
// RESPONSE DTOs
// ========================================

// MessageResponse - {"message": "..."} body used by DELETE /people/name/:name
type MessageResponse struct {
	Message string `json:"message"`
}

// DeletedMessage formats the bulk delete summary
func DeletedMessage(count int64) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("%d documents deleted", count)}
}
