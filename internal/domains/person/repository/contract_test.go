package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-service/internal/domains/person"
)

func intPtr(v int) *int { return &v }

// runRepositoryContract exercises behaviour every backend must share.
// newRepo must return an empty repository.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) person.Repository) {
	t.Run("InsertOneAssignsIDAndDefaults", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertOne(ctx, &person.Person{Name: "John"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "John", created.Name)
		assert.Nil(t, created.Age)
		assert.NotNil(t, created.FavoriteFoods)
		assert.Empty(t, created.FavoriteFoods)

		other, err := repo.InsertOne(ctx, &person.Person{Name: "John"})
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, other.ID)
	})

	t.Run("InsertOneRequiresName", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.InsertOne(ctx, &person.Person{Age: intPtr(3)})
		require.Error(t, err)
		assert.ErrorIs(t, err, person.ErrValidation)

		n, err := repo.DeleteAllByName(ctx, "")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("FindByIDRoundTrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertOne(ctx, &person.Person{
			Name:          "Jane",
			Age:           intPtr(25),
			FavoriteFoods: []string{"sushi", "pasta", "sushi"},
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("FindByIDNotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, person.ErrPersonNotFound)
	})

	t.Run("InsertManyKeepsOrder", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertMany(ctx, []*person.Person{
			{Name: "A"},
			{Name: "B", Age: intPtr(5)},
		})
		require.NoError(t, err)
		require.Len(t, created, 2)

		assert.Equal(t, "A", created[0].Name)
		assert.Equal(t, "B", created[1].Name)
		assert.NotEqual(t, created[0].ID, created[1].ID)
		require.NotNil(t, created[1].Age)
		assert.Equal(t, 5, *created[1].Age)
		assert.Empty(t, created[1].FavoriteFoods)

		for _, p := range created {
			found, err := repo.FindByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, p, found)
		}
	})

	t.Run("InsertManyIsAllOrNothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.InsertMany(ctx, []*person.Person{
			{Name: "Valid"},
			{Name: ""},
		})
		assert.ErrorIs(t, err, person.ErrValidation)

		n, err := repo.DeleteAllByName(ctx, "Valid")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("InsertManyEmpty", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.InsertMany(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("FindOneByFood", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		sushi, err := repo.InsertOne(ctx, &person.Person{Name: "S", FavoriteFoods: []string{"sushi"}})
		require.NoError(t, err)
		_, err = repo.InsertOne(ctx, &person.Person{Name: "P", FavoriteFoods: []string{"pizza"}})
		require.NoError(t, err)

		found, err := repo.FindOneByFood(ctx, "sushi")
		require.NoError(t, err)
		assert.Equal(t, sushi.ID, found.ID)

		_, err = repo.FindOneByFood(ctx, "tacos")
		assert.ErrorIs(t, err, person.ErrPersonNotFound)
	})

	t.Run("FindOneByFoodReturnsFirstInserted", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.InsertOne(ctx, &person.Person{Name: "1", FavoriteFoods: []string{"pasta"}})
		require.NoError(t, err)
		_, err = repo.InsertOne(ctx, &person.Person{Name: "2", FavoriteFoods: []string{"pasta"}})
		require.NoError(t, err)

		found, err := repo.FindOneByFood(ctx, "pasta")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
	})

	t.Run("AppendFood", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertOne(ctx, &person.Person{Name: "John", FavoriteFoods: []string{"pizza", "burger"}})
		require.NoError(t, err)

		updated, err := repo.AppendFood(ctx, created.ID, "hamburger")
		require.NoError(t, err)
		assert.Equal(t, []string{"pizza", "burger", "hamburger"}, updated.FavoriteFoods)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"pizza", "burger", "hamburger"}, found.FavoriteFoods)
	})

	t.Run("AppendFoodNotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.AppendFood(context.Background(), uuid.New(), "hamburger")
		assert.ErrorIs(t, err, person.ErrPersonNotFound)
	})

	t.Run("AppendFoodConcurrent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertOne(ctx, &person.Person{Name: "Racy"})
		require.NoError(t, err)

		const writers = 8
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AppendFood(ctx, created.ID, "hamburger")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, found.FavoriteFoods, writers)
	})

	t.Run("UpdateAgeByName", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.InsertOne(ctx, &person.Person{Name: "Jane", Age: intPtr(25)})
		require.NoError(t, err)
		second, err := repo.InsertOne(ctx, &person.Person{Name: "Jane", Age: intPtr(30)})
		require.NoError(t, err)

		updated, err := repo.UpdateAgeByName(ctx, "Jane", 20)
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		require.NotNil(t, updated.Age)
		assert.Equal(t, 20, *updated.Age)

		untouched, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, 30, *untouched.Age)

		_, err = repo.UpdateAgeByName(ctx, "Nobody", 20)
		assert.ErrorIs(t, err, person.ErrPersonNotFound)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertOne(ctx, &person.Person{Name: "Gone", FavoriteFoods: []string{"soup"}})
		require.NoError(t, err)

		removed, err := repo.DeleteByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, removed)

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, person.ErrPersonNotFound)

		_, err = repo.DeleteByID(ctx, created.ID)
		assert.ErrorIs(t, err, person.ErrPersonNotFound)
	})

	t.Run("DeleteAllByName", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.InsertMany(ctx, []*person.Person{{Name: "Jane"}, {Name: "John"}, {Name: "Jane"}})
		require.NoError(t, err)

		n, err := repo.DeleteAllByName(ctx, "Jane")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.DeleteAllByName(ctx, "Jane")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		john, err := repo.UpdateAgeByName(ctx, "John", 20)
		require.NoError(t, err)
		assert.Equal(t, "John", john.Name)
	})

	t.Run("ReturnedRecordsAreCopies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.InsertOne(ctx, &person.Person{Name: "Copy", FavoriteFoods: []string{"rice"}})
		require.NoError(t, err)
		created.FavoriteFoods[0] = "mutated"

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"rice"}, found.FavoriteFoods)
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(context.Background()))
	})
}
