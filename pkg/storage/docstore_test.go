package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/events"
	"github.com/triggr-io/triggr/pkg/types"
)

func newTestDocumentStore(t *testing.T) (*DocumentStore, *events.Broker) {
	t.Helper()
	tree, err := OpenTree("app", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tree.Close() })

	broker := events.NewBroker()
	return NewDocumentStore(tree, broker), broker
}

func TestDocumentStoreInsertAssignsIDAndVersion(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	doc, err := store.Insert("proj-1", "users", types.Document{Data: map[string]any{"name": "ada"}})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, 1, doc.Metadata.Version)
	assert.False(t, doc.Metadata.CreatedAt.IsZero())
}

func TestDocumentStoreGetRoundTrips(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	inserted, err := store.Insert("proj-1", "users", types.Document{ID: "u1", Data: map[string]any{"name": "ada"}})
	require.NoError(t, err)

	got, err := store.Get("proj-1", "users", inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Data["name"])
}

func TestDocumentStoreGetMissingReturnsNotFound(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	_, err := store.Get("proj-1", "users", "nope")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestDocumentStoreUpdateBumpsVersion(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	doc, err := store.Insert("proj-1", "users", types.Document{ID: "u1", Data: map[string]any{"age": 1}})
	require.NoError(t, err)

	updated, err := store.Update("proj-1", "users", doc.ID, map[string]any{"age": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Metadata.Version)
	assert.EqualValues(t, 2, updated.Data["age"])
}

func TestDocumentStoreUpdateCreatesWhenMissing(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	doc, err := store.Update("proj-1", "users", "nope", map[string]any{"age": 1})
	require.NoError(t, err)
	assert.Equal(t, "nope", doc.ID)
	assert.Equal(t, 1, doc.Metadata.Version)
	assert.EqualValues(t, 1, doc.Data["age"])

	got, err := store.Get("proj-1", "users", "nope")
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Data["age"])
}

func TestDocumentStoreDeleteRemovesDocument(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	doc, err := store.Insert("proj-1", "users", types.Document{ID: "u1"})
	require.NoError(t, err)

	require.NoError(t, store.Delete("proj-1", "users", doc.ID))

	_, err = store.Get("proj-1", "users", doc.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestDocumentStoreDeleteMissingFails(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	err := store.Delete("proj-1", "users", "nope")
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestDocumentStoreDeletePublishesOldDocument(t *testing.T) {
	store, broker := newTestDocumentStore(t)

	doc, err := store.Insert("proj-1", "users", types.Document{ID: "u1", Data: map[string]any{"name": "ada"}})
	require.NoError(t, err)

	docSub := broker.Subscribe("document:users:" + doc.ID + ":change")
	defer broker.Unsubscribe("document:users:"+doc.ID+":change", docSub)

	require.NoError(t, store.Delete("proj-1", "users", doc.ID))

	select {
	case change := <-docSub:
		assert.Equal(t, events.ChangeDelete, change.Kind)
		assert.Equal(t, "ada", change.Data["name"])
	default:
		t.Fatal("expected a document-topic delete notification carrying the old document")
	}
}

func TestDocumentStoreListScopesByCollection(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	_, err := store.Insert("proj-1", "users", types.Document{ID: "u1"})
	require.NoError(t, err)
	_, err = store.Insert("proj-1", "orders", types.Document{ID: "o1"})
	require.NoError(t, err)

	users, err := store.List("proj-1", "users")
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestDocumentStoreListCollectionsIsDistinct(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	_, err := store.Insert("proj-1", "users", types.Document{ID: "u1"})
	require.NoError(t, err)
	_, err = store.Insert("proj-1", "users", types.Document{ID: "u2"})
	require.NoError(t, err)
	_, err = store.Insert("proj-1", "orders", types.Document{ID: "o1"})
	require.NoError(t, err)

	cols, err := store.ListCollections("proj-1")
	require.NoError(t, err)
	require.Len(t, cols, 2)

	byName := make(map[string]types.CollectionSummary, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	assert.Equal(t, 2, byName["users"].Count)
	assert.Equal(t, 1, byName["orders"].Count)
	assert.False(t, byName["users"].LastUpdated.IsZero())
}

func TestDocumentStoreCollectionExists(t *testing.T) {
	store, _ := newTestDocumentStore(t)

	exists, err := store.CollectionExists("proj-1", "users")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Insert("proj-1", "users", types.Document{ID: "u1"})
	require.NoError(t, err)

	exists, err = store.CollectionExists("proj-1", "users")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDocumentStorePublishesCollectionAndDocumentChanges(t *testing.T) {
	store, broker := newTestDocumentStore(t)

	colSub := broker.Subscribe("collection:users:change")
	defer broker.Unsubscribe("collection:users:change", colSub)

	doc, err := store.Insert("proj-1", "users", types.Document{ID: "u1", Data: map[string]any{"name": "ada"}})
	require.NoError(t, err)

	docSub := broker.Subscribe("document:users:" + doc.ID + ":change")
	defer broker.Unsubscribe("document:users:"+doc.ID+":change", docSub)

	_, err = store.Update("proj-1", "users", doc.ID, map[string]any{"name": "grace"})
	require.NoError(t, err)

	select {
	case change := <-colSub:
		assert.Equal(t, events.ChangeInsert, change.Kind)
	default:
		t.Fatal("expected a collection-topic insert notification")
	}

	select {
	case change := <-docSub:
		assert.Equal(t, events.ChangeUpdate, change.Kind)
		assert.Equal(t, doc.ID, change.DocumentID)
	default:
		t.Fatal("expected a document-topic update notification")
	}
}
