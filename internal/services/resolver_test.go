package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func online(v bool) func() bool { return func() bool { return v } }

func payloadAccessor(p *models.Payload) func(ctx context.Context) (*models.Payload, error) {
	return func(ctx context.Context) (*models.Payload, error) { return p, nil }
}

func TestResolve_DraftShadowsEverything(t *testing.T) {
	stores := setupStores(t)
	ctx := context.Background()
	r := NewResolver(stores.drafts, stores.offline)

	d := models.NewDraft("org1", "app1", strPtr("item-1"),
		models.Payload{Kind: models.KindArticle, Data: []byte(`{"v":"draft"}`)}, nil, nil, time.Now())
	require.NoError(t, stores.drafts.Put(ctx, *d))

	saved := models.NewOfflineContent("org1", "app1", "item-1",
		models.Payload{Kind: models.KindArticle, Data: []byte(`{"v":"offline"}`)}, time.Now())
	require.NoError(t, stores.offline.Put(ctx, *saved))

	cached := &models.Payload{Kind: models.KindArticle, Data: []byte(`{"v":"cache"}`)}
	server := &models.Payload{Kind: models.KindArticle, Data: []byte(`{"v":"server"}`)}

	res := r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{
		GetCached:     payloadAccessor(cached),
		GetFromServer: payloadAccessor(server),
		IsOnline:      online(true),
	})

	assert.Equal(t, SourceDraft, res.Source)
	assert.JSONEq(t, `{"v":"draft"}`, string(res.Payload.Data))
	assert.Nil(t, res.Fallback)
}

func TestResolve_OfflineCopyWhenNoActiveDraft(t *testing.T) {
	stores := setupStores(t)
	ctx := context.Background()
	r := NewResolver(stores.drafts, stores.offline)

	// a conflicted draft does not shadow the offline copy
	d := models.NewDraft("org1", "app1", strPtr("item-1"),
		models.Payload{Kind: models.KindArticle, Data: []byte(`{"v":"draft"}`)}, nil, nil, time.Now())
	d.Status = models.DraftConflicted
	require.NoError(t, stores.drafts.Put(ctx, *d))

	saved := models.NewOfflineContent("org1", "app1", "item-1",
		models.Payload{Kind: models.KindArticle, Data: []byte(`{"v":"offline"}`)}, time.Now())
	require.NoError(t, stores.offline.Put(ctx, *saved))

	res := r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{})
	assert.Equal(t, SourceOffline, res.Source)
	assert.JSONEq(t, `{"v":"offline"}`, string(res.Payload.Data))
}

func TestResolve_CacheThenServerPriority(t *testing.T) {
	stores := setupStores(t)
	ctx := context.Background()
	r := NewResolver(stores.drafts, stores.offline)

	cached := &models.Payload{Kind: models.KindPage, Data: []byte(`{"v":"cache"}`)}
	server := &models.Payload{Kind: models.KindPage, Data: []byte(`{"v":"server"}`)}

	res := r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{
		GetCached:     payloadAccessor(cached),
		GetFromServer: payloadAccessor(server),
		IsOnline:      online(true),
	})
	assert.Equal(t, SourceCache, res.Source)

	res = r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{
		GetCached:     payloadAccessor(nil), // cache miss
		GetFromServer: payloadAccessor(server),
		IsOnline:      online(true),
	})
	assert.Equal(t, SourceServer, res.Source)
}

func TestResolve_ServerSkippedWhenOffline(t *testing.T) {
	stores := setupStores(t)
	r := NewResolver(stores.drafts, stores.offline)

	server := &models.Payload{Kind: models.KindPage, Data: []byte(`{"v":"server"}`)}

	res := r.ResolveContentForRead(context.Background(), "org1", "app1", "item-1", Accessors{
		GetFromServer: payloadAccessor(server),
		IsOnline:      online(false),
	})

	assert.Equal(t, SourceUnavailable, res.Source)
	require.NotNil(t, res.Fallback)
	assert.Equal(t, FallbackOfflineNoContent, res.Fallback.Type)
	assert.Nil(t, res.Payload)
}

func TestResolve_NeverRaises(t *testing.T) {
	stores := setupStores(t)
	r := NewResolver(stores.drafts, stores.offline)
	ctx := context.Background()

	t.Run("failing accessors", func(t *testing.T) {
		res := r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{
			GetCached: func(ctx context.Context) (*models.Payload, error) {
				return nil, errors.New("cache exploded")
			},
			GetFromServer: func(ctx context.Context) (*models.Payload, error) {
				return nil, errors.New("server exploded")
			},
			IsOnline: online(true),
		})
		assert.Equal(t, SourceUnavailable, res.Source)
		assert.Equal(t, FallbackOfflineNoContent, res.Fallback.Type)
	})

	t.Run("panicking accessor", func(t *testing.T) {
		res := r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{
			GetCached: func(ctx context.Context) (*models.Payload, error) {
				panic("boom")
			},
		})
		assert.Equal(t, SourceUnavailable, res.Source)
		require.NotNil(t, res.Fallback)
		assert.Equal(t, FallbackUnavailable, res.Fallback.Type)
		assert.Contains(t, res.Fallback.Reason, "boom")
	})

	t.Run("no accessors at all", func(t *testing.T) {
		res := r.ResolveContentForRead(ctx, "org1", "app1", "item-1", Accessors{})
		assert.Equal(t, SourceUnavailable, res.Source)
		assert.Equal(t, FallbackOfflineNoContent, res.Fallback.Type)
	})
}

func TestResolve_StorageFailureBecomesFallback(t *testing.T) {
	// nil db handle: every store call fails with StorageUnavailable
	r := NewResolver(draftsUnavailable(), offlineUnavailable())

	res := r.ResolveContentForRead(context.Background(), "org1", "app1", "item-1", Accessors{})
	assert.Equal(t, SourceUnavailable, res.Source)
	require.NotNil(t, res.Fallback)
	assert.Equal(t, FallbackUnavailable, res.Fallback.Type)
	assert.NotEmpty(t, res.Fallback.Reason)
}

func TestGetOfflineContentForItem_LatestWins(t *testing.T) {
	stores := setupStores(t)
	ctx := context.Background()
	r := NewResolver(stores.drafts, stores.offline)

	older := models.NewOfflineContent("org1", "app1", "item-1",
		models.Payload{Kind: models.KindPage, Data: []byte(`{"v":1}`)}, time.UnixMilli(100))
	newer := models.NewOfflineContent("org1", "app1", "item-1",
		models.Payload{Kind: models.KindPage, Data: []byte(`{"v":2}`)}, time.UnixMilli(200))
	require.NoError(t, stores.offline.Put(ctx, *older))
	require.NoError(t, stores.offline.Put(ctx, *newer))

	got, err := r.GetOfflineContentForItem(ctx, "org1", "app1", "item-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newer.OfflineItemID, got.OfflineItemID)
}
