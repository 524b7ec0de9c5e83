package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-service/internal/domains/person"
	"people-service/internal/domains/person/repository"
)

func newTestService(t *testing.T) person.Service {
	t.Helper()
	return NewPersonService(repository.NewMemoryRepository())
}

func intPtr(v int) *int { return &v }

func TestCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &person.CreatePersonRequest{Name: "John", Age: intPtr(30)})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "John", created.Name)
	assert.Equal(t, 30, *created.Age)
	assert.Equal(t, []string{}, created.FavoriteFoods)

	found, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestCreate_MissingName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), &person.CreatePersonRequest{Age: intPtr(3)})
	require.Error(t, err)
	assert.ErrorIs(t, err, person.ErrValidation)

	var ve *person.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotNil(t, ve.Details)
}

func TestCreate_NilRequest(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, person.ErrValidation)
}

func TestCreateMany(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateMany(context.Background(), []person.CreatePersonRequest{
		{Name: "A"},
		{Name: "B", Age: intPtr(5)},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotEqual(t, created[0].ID, created[1].ID)
	assert.Equal(t, 5, *created[1].Age)
	assert.Empty(t, created[1].FavoriteFoods)
}

func TestCreateMany_RejectsWholeBatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateMany(ctx, []person.CreatePersonRequest{
		{Name: "Kept?"},
		{Age: intPtr(1)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, person.ErrValidation)

	n, err := svc.DeleteByName(ctx, "Kept?")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetByID_InvalidID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, person.ErrInvalidID)

	_, err = svc.AddDefaultFood(context.Background(), "123")
	assert.ErrorIs(t, err, person.ErrInvalidID)

	_, err = svc.Delete(context.Background(), "")
	assert.ErrorIs(t, err, person.ErrInvalidID)
}

func TestGetByFavoriteFood(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sushi, err := svc.Create(ctx, &person.CreatePersonRequest{Name: "S", FavoriteFoods: []string{"sushi"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &person.CreatePersonRequest{Name: "P", FavoriteFoods: []string{"pizza"}})
	require.NoError(t, err)

	found, err := svc.GetByFavoriteFood(ctx, "sushi")
	require.NoError(t, err)
	assert.Equal(t, sushi, found)

	_, err = svc.GetByFavoriteFood(ctx, "ramen")
	assert.ErrorIs(t, err, person.ErrPersonNotFound)
}

func TestAddDefaultFood(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &person.CreatePersonRequest{Name: "John", FavoriteFoods: []string{"pizza"}})
	require.NoError(t, err)

	updated, err := svc.AddDefaultFood(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"pizza", person.DefaultAddedFood}, updated.FavoriteFoods)

	_, err = svc.AddDefaultFood(ctx, uuid.NewString())
	assert.ErrorIs(t, err, person.ErrPersonNotFound)
}

func TestSetDefaultAgeByName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &person.CreatePersonRequest{Name: "Jane", Age: intPtr(25)})
	require.NoError(t, err)

	updated, err := svc.SetDefaultAgeByName(ctx, "Jane")
	require.NoError(t, err)
	assert.Equal(t, person.DefaultAgeOnUpdate, *updated.Age)

	_, err = svc.SetDefaultAgeByName(ctx, "Nobody")
	assert.ErrorIs(t, err, person.ErrPersonNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &person.CreatePersonRequest{Name: "Gone"})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.Delete(ctx, created.ID.String())
	assert.ErrorIs(t, err, person.ErrPersonNotFound)
}

func TestDeleteByName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateMany(ctx, []person.CreatePersonRequest{{Name: "Jane"}, {Name: "Jane"}, {Name: "John"}})
	require.NoError(t, err)

	n, err := svc.DeleteByName(ctx, "Jane")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = svc.DeleteByName(ctx, "Jane")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
