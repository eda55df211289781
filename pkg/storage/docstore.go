package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/events"
	"github.com/triggr-io/triggr/pkg/types"
)

// DocumentStore implements the collection-scoped document CRUD of
// spec §4.2 over a project's slice of the App tree, publishing every
// mutation through a Broker.
type DocumentStore struct {
	tree   *Tree
	broker *events.Broker
}

// NewDocumentStore wraps tree (normally Store.App) with broker-backed
// change notifications.
func NewDocumentStore(tree *Tree, broker *events.Broker) *DocumentStore {
	return &DocumentStore{tree: tree, broker: broker}
}

func documentKey(projectID, collection, id string) []byte {
	return []byte(fmt.Sprintf("document::%s::%s::%s", projectID, collection, id))
}

func collectionPrefix(projectID, collection string) []byte {
	return []byte(fmt.Sprintf("document::%s::%s::", projectID, collection))
}

func projectPrefix(projectID string) []byte {
	return []byte(fmt.Sprintf("document::%s::", projectID))
}

// Insert creates a new document under collection, assigning it a
// fresh id when doc.ID is empty, and returns the stored document.
func (s *DocumentStore) Insert(projectID, collection string, doc types.Document) (*types.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	doc.Metadata.CreatedAt = now
	doc.Metadata.UpdatedAt = now
	doc.Metadata.Version = 1

	if err := s.put(projectID, collection, doc); err != nil {
		return nil, err
	}

	s.publish(projectID, collection, doc.ID, events.ChangeInsert, doc.Data)
	return &doc, nil
}

// Get returns the document stored under (collection, id), or
// apperr.NotFound if absent.
func (s *DocumentStore) Get(projectID, collection, id string) (*types.Document, error) {
	raw, err := s.tree.Get(documentKey(projectID, collection, id))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, apperr.NotFoundf("document %q not found in collection %q", id, collection)
	}

	var doc types.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode stored document", err)
	}
	return &doc, nil
}

// Update is an alias for Insert with overwrite semantics: it
// unconditionally replaces the document under (collection, id),
// creating it if absent. Any prior created_at is preserved;
// updated_at is stamped fresh and version bumped from whatever
// existed (or starts at 1 for a newly created document).
func (s *DocumentStore) Update(projectID, collection, id string, data map[string]any) (*types.Document, error) {
	now := time.Now().UTC()
	doc := types.Document{ID: id, Data: data}
	doc.Metadata.CreatedAt = now
	doc.Metadata.UpdatedAt = now
	doc.Metadata.Version = 1

	if existing, err := s.Get(projectID, collection, id); err == nil {
		doc.Metadata.CreatedAt = existing.Metadata.CreatedAt
		doc.Metadata.Version = existing.Metadata.Version + 1
	}

	if err := s.put(projectID, collection, doc); err != nil {
		return nil, err
	}

	s.publish(projectID, collection, id, events.ChangeUpdate, data)
	return &doc, nil
}

// Delete removes a document, returning apperr.NotFound if it did not
// exist.
func (s *DocumentStore) Delete(projectID, collection, id string) error {
	prior, err := s.tree.Remove(documentKey(projectID, collection, id))
	if err != nil {
		return err
	}
	if prior == nil {
		return apperr.NotFoundf("document %q not found in collection %q", id, collection)
	}

	var doc types.Document
	if err := json.Unmarshal(prior, &doc); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to decode stored document", err)
	}

	s.publish(projectID, collection, id, events.ChangeDelete, doc.Data)
	return nil
}

// List returns every document in collection, in ascending id order.
func (s *DocumentStore) List(projectID, collection string) ([]types.Document, error) {
	kvs, err := s.tree.ScanPrefix(collectionPrefix(projectID, collection))
	if err != nil {
		return nil, err
	}

	docs := make([]types.Document, 0, len(kvs))
	for _, kv := range kvs {
		var doc types.Document
		if err := json.Unmarshal(kv.Value, &doc); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to decode stored document", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListCollections returns one summary per distinct collection that has
// at least one document under projectID, with its document count and
// most recent update time.
func (s *DocumentStore) ListCollections(projectID string) ([]types.CollectionSummary, error) {
	kvs, err := s.tree.ScanPrefix(projectPrefix(projectID))
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	summaries := make(map[string]*types.CollectionSummary)
	prefix := projectPrefix(projectID)

	for _, kv := range kvs {
		rest := strings.TrimPrefix(string(kv.Key), string(prefix))
		parts := strings.SplitN(rest, "::", 2)
		if len(parts) == 0 {
			continue
		}
		col := parts[0]

		var doc types.Document
		if err := json.Unmarshal(kv.Value, &doc); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to decode stored document", err)
		}

		summary, ok := summaries[col]
		if !ok {
			summary = &types.CollectionSummary{Name: col}
			summaries[col] = summary
			order = append(order, col)
		}
		summary.Count++
		if doc.Metadata.UpdatedAt.After(summary.LastUpdated) {
			summary.LastUpdated = doc.Metadata.UpdatedAt
		}
	}

	out := make([]types.CollectionSummary, 0, len(order))
	for _, col := range order {
		out = append(out, *summaries[col])
	}
	return out, nil
}

// CollectionExists reports whether collection has at least one
// document under projectID.
func (s *DocumentStore) CollectionExists(projectID, collection string) (bool, error) {
	kvs, err := s.tree.ScanPrefix(collectionPrefix(projectID, collection))
	if err != nil {
		return false, err
	}
	return len(kvs) > 0, nil
}

func (s *DocumentStore) put(projectID, collection string, doc types.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to encode document", err)
	}
	return s.tree.Insert(documentKey(projectID, collection, doc.ID), raw)
}

func (s *DocumentStore) publish(projectID, collection, id string, kind events.ChangeKind, data map[string]any) {
	if s.broker == nil {
		return
	}
	base := events.Change{
		Kind:       kind,
		ProjectID:  projectID,
		Collection: collection,
		DocumentID: id,
		Data:       data,
	}

	collectionChange := base
	collectionChange.Topic = fmt.Sprintf("collection:%s:change", collection)
	s.broker.Publish(&collectionChange)

	documentChange := base
	documentChange.Topic = fmt.Sprintf("document:%s:%s:change", collection, id)
	s.broker.Publish(&documentChange)
}
