package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"people-service/internal/domains/person"
)

// personService implements person.Service
type personService struct {
	repo person.Repository
}

// NewPersonService creates a new person service instance.
// The repository is injected by the container (or a test).
func NewPersonService(repo person.Repository) person.Service {
	return &personService{
		repo: repo,
	}
}

func (s *personService) Create(ctx context.Context, req *person.CreatePersonRequest) (*person.Person, error) {
	if req == nil {
		return nil, person.NewValidationError(fmt.Errorf("request body is required"))
	}
	if err := req.Validate(); err != nil {
		return nil, person.NewValidationError(err)
	}

	return s.repo.InsertOne(ctx, req.ToEntity())
}

func (s *personService) CreateMany(ctx context.Context, reqs []person.CreatePersonRequest) ([]*person.Person, error) {
	// Whole batch is checked first: one bad item and nothing is written
	if err := person.ValidateBatch(reqs); err != nil {
		return nil, person.NewValidationError(err)
	}

	entities := make([]*person.Person, 0, len(reqs))
	for i := range reqs {
		entities = append(entities, reqs[i].ToEntity())
	}

	return s.repo.InsertMany(ctx, entities)
}

func (s *personService) GetByID(ctx context.Context, rawID string) (*person.Person, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *personService) GetByFavoriteFood(ctx context.Context, food string) (*person.Person, error) {
	return s.repo.FindOneByFood(ctx, food)
}

func (s *personService) AddDefaultFood(ctx context.Context, rawID string) (*person.Person, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.AppendFood(ctx, id, person.DefaultAddedFood)
}

func (s *personService) SetDefaultAgeByName(ctx context.Context, name string) (*person.Person, error) {
	return s.repo.UpdateAgeByName(ctx, name, person.DefaultAgeOnUpdate)
}

func (s *personService) Delete(ctx context.Context, rawID string) (*person.Person, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *personService) DeleteByName(ctx context.Context, name string) (int64, error) {
	return s.repo.DeleteAllByName(ctx, name)
}

// parseID rejects anything that isn't a UUID before it reaches the store
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", person.ErrInvalidID, raw)
	}
	return id, nil
}
