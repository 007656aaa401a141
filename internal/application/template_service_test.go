package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
	repo "github.com/snapsite/snapsite-backend/internal/domain/repository"
)

func newTemplateService() *TemplateService {
	clock := newFakeClock()
	users := newMemUsers(clock)
	return NewTemplateService(
		newMemWishlist(clock),
		newMemTemplates(clock, users),
		newMemExports(clock),
		logrus.New(),
	)
}

func TestAddToWishlist_Duplicate(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()
	in := WishlistInput{TemplateSlug: "portfolio", TemplateName: "Portfolio"}

	_, err := svc.AddToWishlist(ctx, "u1", in)
	require.NoError(t, err)

	_, err = svc.AddToWishlist(ctx, "u1", in)
	assert.ErrorIs(t, err, ErrAlreadyInWishlist)

	entries, err := svc.ListWishlist(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "second add must not create a second entry")

	// a different user may wishlist the same slug
	_, err = svc.AddToWishlist(ctx, "u2", in)
	assert.NoError(t, err)
}

func TestInWishlist(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()

	in, err := svc.InWishlist(ctx, "u1", "portfolio")
	require.NoError(t, err)
	assert.False(t, in)

	_, err = svc.AddToWishlist(ctx, "u1", WishlistInput{TemplateSlug: "portfolio", TemplateName: "Portfolio"})
	require.NoError(t, err)

	in, err = svc.InWishlist(ctx, "u1", "portfolio")
	require.NoError(t, err)
	assert.True(t, in)
}

func TestRemoveFromWishlist_Absent(t *testing.T) {
	svc := newTemplateService()

	err := svc.RemoveFromWishlist(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestListWishlist_NewestFirst(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()

	for _, slug := range []string{"one", "two", "three"} {
		_, err := svc.AddToWishlist(ctx, "u1", WishlistInput{TemplateSlug: slug, TemplateName: slug})
		require.NoError(t, err)
	}

	entries, err := svc.ListWishlist(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "three", entries[0].TemplateSlug)
	assert.Equal(t, "one", entries[2].TemplateSlug)
}

func saveOne(t *testing.T, svc *TemplateService, userID string, isPublic bool) *entity.SavedTemplate {
	t.Helper()
	tpl, err := svc.SaveTemplate(context.Background(), userID, SaveTemplateInput{
		Name:     "landing",
		Layout:   []any{map[string]any{"section": "hero", "props": map[string]any{"title": "hi"}}},
		IsPublic: isPublic,
	})
	require.NoError(t, err)
	return tpl
}

func TestGetTemplate_Visibility(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()
	private := saveOne(t, svc, "owner", false)

	// owner sees it
	got, err := svc.GetTemplate(ctx, private.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	// anonymous and other users do not
	_, err = svc.GetTemplate(ctx, private.ID, "")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = svc.GetTemplate(ctx, private.ID, "someone-else")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	// once public, everyone sees it
	_, err = svc.UpdateVisibility(ctx, private.ID, "owner", true)
	require.NoError(t, err)
	got, err = svc.GetTemplate(ctx, private.ID, "")
	require.NoError(t, err)
	assert.Equal(t, private.Layout, got.Layout)
}

func TestPublicTemplates_Cap(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()

	for i := 0; i < publicListLimit+5; i++ {
		_, err := svc.SaveTemplate(ctx, "u1", SaveTemplateInput{
			Name:     fmt.Sprintf("tpl-%d", i),
			Layout:   []any{map[string]any{"section": "hero"}},
			IsPublic: true,
		})
		require.NoError(t, err)
	}

	ts, err := svc.PublicTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, ts, publicListLimit)
	// most recently updated first
	assert.Equal(t, fmt.Sprintf("tpl-%d", publicListLimit+4), ts[0].Name)
}

func TestUpdateTemplate_PartialPatch(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()
	tpl := saveOne(t, svc, "owner", false)

	name := "renamed"
	got, err := svc.UpdateTemplate(ctx, tpl.ID, "owner", repo.TemplatePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, tpl.Layout, got.Layout, "unpatched fields are untouched")
	assert.False(t, got.IsPublic)
	assert.True(t, got.UpdatedAt.After(tpl.UpdatedAt), "update refreshes the modification timestamp")
}

func TestUpdateTemplate_NotOwner(t *testing.T) {
	svc := newTemplateService()
	tpl := saveOne(t, svc, "owner", true)

	name := "hijack"
	_, err := svc.UpdateTemplate(context.Background(), tpl.ID, "intruder", repo.TemplatePatch{Name: &name})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeleteTemplate_NotOwner(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()
	tpl := saveOne(t, svc, "owner", false)

	err := svc.DeleteTemplate(ctx, tpl.ID, "intruder")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	// still there for the owner
	_, err = svc.GetTemplate(ctx, tpl.ID, "owner")
	assert.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate(ctx, tpl.ID, "owner"))
	_, err = svc.GetTemplate(ctx, tpl.ID, "owner")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRecordExport_DefaultStatus(t *testing.T) {
	svc := newTemplateService()

	e, err := svc.RecordExport(context.Background(), "u1", RecordExportInput{
		Name:       "landing",
		ExportType: entity.ExportTypeHTML,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExportStatusCompleted, e.Status)
}

func TestListExports_NewestFirst(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()

	for _, typ := range []string{entity.ExportTypeHTML, entity.ExportTypeReact, entity.ExportTypeNextJS} {
		_, err := svc.RecordExport(ctx, "u1", RecordExportInput{Name: "t", ExportType: typ})
		require.NoError(t, err)
	}

	es, err := svc.ListExports(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, es, 3)
	assert.Equal(t, entity.ExportTypeNextJS, es[0].ExportType)
}

func TestDeleteExport_NotOwner(t *testing.T) {
	svc := newTemplateService()
	ctx := context.Background()

	e, err := svc.RecordExport(ctx, "u1", RecordExportInput{Name: "t", ExportType: entity.ExportTypeHTML})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteExport(ctx, e.ID, "u2"), ErrExportNotFound)
	assert.NoError(t, svc.DeleteExport(ctx, e.ID, "u1"))
}
