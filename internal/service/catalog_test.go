package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	apperrors "github.com/ahmedwebmail/online-shop/pkg/errors"
)

// memRepo is an in-memory ResourceRepository that mirrors the store's
// behavior, including the unique name constraint.
type memRepo[T any, P domain.DocumentPtr[T]] struct {
	kind string
	docs []P
}

func (m *memRepo[T, P]) findIndex(slug string) int {
	for i, d := range m.docs {
		if d.ResourceSlug() == slug {
			return i
		}
	}
	return -1
}

func (m *memRepo[T, P]) Insert(_ context.Context, doc P) error {
	for _, d := range m.docs {
		if d.ResourceName() == doc.ResourceName() {
			return apperrors.AlreadyExists(m.kind, "name", doc.ResourceName())
		}
	}
	doc.Touch(time.Now().UTC())
	doc.SetID(primitive.NewObjectID())
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memRepo[T, P]) FindBySlug(_ context.Context, slug string) (P, error) {
	var zero P
	i := m.findIndex(slug)
	if i < 0 {
		return zero, apperrors.NotFound(m.kind, slug)
	}
	return m.docs[i], nil
}

func (m *memRepo[T, P]) FindAll(_ context.Context) ([]T, error) {
	out := make([]T, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (m *memRepo[T, P]) Rename(_ context.Context, slug, newName, newSlug string) (bool, error) {
	i := m.findIndex(slug)
	if i < 0 {
		return false, nil
	}
	for j, d := range m.docs {
		if j != i && d.ResourceName() == newName {
			return false, apperrors.AlreadyExists(m.kind, "name", newName)
		}
	}
	m.docs[i].SetNameSlug(newName, newSlug)
	m.docs[i].Touch(time.Now().UTC())
	return true, nil
}

func (m *memRepo[T, P]) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	i := m.findIndex(slug)
	if i < 0 {
		return false, nil
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return true, nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	created []string
	renamed [][2]string // old slug, new slug
	deleted []string
}

func (r *recordingPublisher) PublishCreated(_ context.Context, _ string, doc domain.Document) error {
	r.created = append(r.created, doc.ResourceSlug())
	return nil
}

func (r *recordingPublisher) PublishRenamed(_ context.Context, _ string, oldSlug string, doc domain.Document) error {
	r.renamed = append(r.renamed, [2]string{oldSlug, doc.ResourceSlug()})
	return nil
}

func (r *recordingPublisher) PublishDeleted(_ context.Context, _ string, slug string) error {
	r.deleted = append(r.deleted, slug)
	return nil
}

func newBrandService(t *testing.T) (*CatalogService[domain.Brand, *domain.Brand], *recordingPublisher) {
	t.Helper()
	repo := &memRepo[domain.Brand, *domain.Brand]{kind: domain.KindBrand}
	pub := &recordingPublisher{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewBrandService(repo, pub, logger), pub
}

func newCategoryService(t *testing.T) *CatalogService[domain.Category, *domain.Category] {
	t.Helper()
	repo := &memRepo[domain.Category, *domain.Category]{kind: domain.KindCategory}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewCategoryService(repo, &recordingPublisher{}, logger)
}

func TestCreate_DerivesSlugAndAssignsIdentity(t *testing.T) {
	svc, pub := newBrandService(t)
	ctx := context.Background()

	brand, err := svc.Create(ctx, CreateInput{Name: "Crease Apparels"})
	require.NoError(t, err)

	assert.Equal(t, "Crease Apparels", brand.Name)
	assert.Equal(t, "crease-apparels", brand.Slug)
	assert.False(t, brand.ID.IsZero())
	assert.False(t, brand.CreatedAt.IsZero())
	assert.False(t, brand.UpdatedAt.IsZero())
	assert.Equal(t, []string{"crease-apparels"}, pub.created)
}

func TestCreate_ThenGetRoundTrip(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, "sony")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Sony", got.Name)
}

func TestCreate_DuplicateName(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Sony"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCreate_EmptyName(t *testing.T) {
	svc, pub := newBrandService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Empty(t, pub.created)
}

func TestCreate_NameWithoutAlphanumerics(t *testing.T) {
	svc, _ := newBrandService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "!!! ***"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreate_BrandKeepsLogo(t *testing.T) {
	svc, _ := newBrandService(t)
	logo := "https://example.com/sony.png"

	brand, err := svc.Create(context.Background(), CreateInput{Name: "Sony", Logo: &logo})
	require.NoError(t, err)
	require.NotNil(t, brand.Logo)
	assert.Equal(t, logo, *brand.Logo)
}

func TestList_ReturnsAllCreated(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	names := []string{"Sony", "Samsung", "LG Electronics"}
	for _, n := range names {
		_, err := svc.Create(ctx, CreateInput{Name: n})
		require.NoError(t, err)
	}

	brands, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 3)

	slugs := make([]string, len(brands))
	for i, b := range brands {
		slugs[i] = b.Slug
	}
	assert.ElementsMatch(t, []string{"sony", "samsung", "lg-electronics"}, slugs)
}

func TestList_EmptyStore(t *testing.T) {
	svc, _ := newBrandService(t)

	brands, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, brands)
}

func TestGetBySlug_Missing(t *testing.T) {
	svc, _ := newBrandService(t)

	_, err := svc.GetBySlug(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRename_MovesSlug(t *testing.T) {
	svc, pub := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, "sony", "Sony Corp")
	require.NoError(t, err)
	assert.Equal(t, "Sony Corp", renamed.Name)
	assert.Equal(t, "sony-corp", renamed.Slug)

	// Old slug no longer resolves.
	_, err = svc.GetBySlug(ctx, "sony")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// New slug resolves to the same document.
	got, err := svc.GetBySlug(ctx, "sony-corp")
	require.NoError(t, err)
	assert.Equal(t, renamed.ID, got.ID)

	require.Len(t, pub.renamed, 1)
	assert.Equal(t, [2]string{"sony", "sony-corp"}, pub.renamed[0])
}

func TestRename_MissingSlug(t *testing.T) {
	svc, pub := newBrandService(t)

	_, err := svc.Rename(context.Background(), "ghost", "Phantom")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, pub.renamed)
}

func TestRename_InvalidNewName(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "sony", "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// Document untouched.
	got, err := svc.GetBySlug(ctx, "sony")
	require.NoError(t, err)
	assert.Equal(t, "Sony", got.Name)
}

func TestRename_ToTakenName(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Samsung"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "samsung", "Sony")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestDelete_RemovesDocument(t *testing.T) {
	svc, pub := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "sony")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"sony"}, pub.deleted)

	_, err = svc.GetBySlug(ctx, "sony")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete_MissingSlug(t *testing.T) {
	svc, pub := newBrandService(t)

	deleted, err := svc.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, pub.deleted)
}

func TestDelete_SecondDeleteReportsMissing(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	first, err := svc.Delete(ctx, "sony")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := svc.Delete(ctx, "sony")
	require.NoError(t, err)
	assert.False(t, second)
}

func TestNameReuseAfterRename(t *testing.T) {
	svc, _ := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "sony", "Sony Corp")
	require.NoError(t, err)

	// The original name is free again.
	brand, err := svc.Create(ctx, CreateInput{Name: "Sony"})
	require.NoError(t, err)
	assert.Equal(t, "sony", brand.Slug)
}

func TestCategoryService_FullWalk(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "Home Appliances"})
	require.NoError(t, err)
	assert.Equal(t, "home-appliances", created.Slug)

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	renamed, err := svc.Rename(ctx, "home-appliances", "Kitchen Appliances")
	require.NoError(t, err)
	assert.Equal(t, "kitchen-appliances", renamed.Slug)

	deleted, err := svc.Delete(ctx, "kitchen-appliances")
	require.NoError(t, err)
	assert.True(t, deleted)

	cats, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}
