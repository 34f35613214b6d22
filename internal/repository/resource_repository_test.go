package repository

import (
	"context"
	"testing"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestResourceRepository(t *testing.T) {
	pool := setupTestWithTruncate(t)
	repo := NewResourceRepository(pool)
	ctx := context.Background()
	author := createTestUser(t, "author@example.com", model.RoleOrganizer)

	article, err := repo.Create(ctx, &model.Resource{
		Title:        "Intro to Go",
		Description:  strPtr("<p>basics</p>"),
		ResourceType: model.ResourceTypeArticle,
		CreatedBy:    author,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Resource{
		Title:        "Slides",
		ResourceType: model.ResourceTypeDocument,
		CreatedBy:    author,
	})
	require.NoError(t, err)

	t.Run("CountPerType", func(t *testing.T) {
		for _, rt := range model.ResourceTypes {
			rt := rt
			n, err := repo.Count(ctx, model.ResourceFilter{Type: &rt})
			require.NoError(t, err)
			switch rt {
			case model.ResourceTypeArticle, model.ResourceTypeDocument:
				assert.Equal(t, 1, n, rt)
			default:
				assert.Equal(t, 0, n, rt)
			}
		}
		all, err := repo.Count(ctx, model.ResourceFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, all)
	})

	t.Run("SearchDescription", func(t *testing.T) {
		items, total, err := repo.Search(ctx, model.ResourceFilter{Term: "BASICS", Limit: 9})

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, article.ID, items[0].ID)
	})

	t.Run("NewestFirst", func(t *testing.T) {
		items, _, err := repo.Search(ctx, model.ResourceFilter{})

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Slides", items[0].Title)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		article.Title = "Intro to Go (2nd)"
		_, err := repo.Update(ctx, article)
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, "Intro to Go (2nd)", got.Title)

		require.NoError(t, repo.Delete(ctx, article.ID))
		_, err = repo.FindByID(ctx, article.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}
