package impl

import (
	"context"
	"testing"

	"cashtrail/internal/domain/entity"
	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserCategoryService(repos *memRepos) *userCategoryService {
	return &userCategoryService{categoryRepo: repos}
}

func TestUserCategoryServiceCreateDefaultsColor(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserCategoryService(repos)

	category, err := svc.CreateCategory(context.Background(), uuid.New(), &usecase.CreateUserCategoryInput{
		Name: "Groceries",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultHexColor, category.HexColor)
}

func TestUserCategoryServiceCreateValidatesColor(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserCategoryService(repos)

	_, err := svc.CreateCategory(context.Background(), uuid.New(), &usecase.CreateUserCategoryInput{
		Name:     "Groceries",
		HexColor: "green",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	category, err := svc.CreateCategory(context.Background(), uuid.New(), &usecase.CreateUserCategoryInput{
		Name:     "Groceries",
		HexColor: "#A1b2C3",
	})
	require.NoError(t, err)
	assert.Equal(t, "#A1b2C3", category.HexColor)

	// The short three-digit form is accepted too.
	_, err = svc.CreateCategory(context.Background(), uuid.New(), &usecase.CreateUserCategoryInput{
		Name:     "Dining",
		HexColor: "#fff",
	})
	assert.NoError(t, err)
}

func TestUserCategoryServiceUpdateOwnership(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserCategoryService(repos)
	userID := uuid.New()

	category, err := svc.CreateCategory(context.Background(), userID, &usecase.CreateUserCategoryInput{
		Name: "Groceries",
	})
	require.NoError(t, err)

	newName := "Food"
	_, err = svc.UpdateCategory(context.Background(), uuid.New(), category.ID, &usecase.UpdateUserCategoryInput{Name: &newName})
	assert.ErrorIs(t, err, ErrCategoryNotOwned)

	updated, err := svc.UpdateCategory(context.Background(), userID, category.ID, &usecase.UpdateUserCategoryInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)
}

func TestUserCategoryServiceDelete(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserCategoryService(repos)
	userID := uuid.New()

	category, err := svc.CreateCategory(context.Background(), userID, &usecase.CreateUserCategoryInput{
		Name: "Groceries",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), userID, category.ID))

	categories, err := svc.GetCategories(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, categories)
}
