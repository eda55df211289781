package metadata

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/storage"
	"github.com/triggr-io/triggr/pkg/types"
)

// indexKey is the fixed key under which the metadata tree stores its
// address -> on-disk-path index (spec §6: "metadata tree: fixed key
// HANNAH -> [{addr, path} ...]").
const indexKey = "HANNAH"

// Loader populates a Cache from the metadata tree's on-disk index and
// keeps that index in sync when new contracts are registered.
type Loader struct {
	tree  *storage.Tree
	cache *Cache
}

// NewLoader pairs tree (normally Store.Metadata) with the cache it
// feeds.
func NewLoader(tree *storage.Tree, cache *Cache) *Loader {
	return &Loader{tree: tree, cache: cache}
}

// LoadAll reads every indexed entry, opens its metadata file, and
// populates the cache. Called once at process start; an empty index
// is not an error.
func (l *Loader) LoadAll() error {
	entries, err := l.readIndex()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		meta, err := readMetadataFile(entry.Path)
		if err != nil {
			return err
		}
		l.cache.Put(entry.Addr, *meta)
	}
	return nil
}

// Register writes meta to path on disk, appends (addr, path) to the
// index (replacing any prior entry for addr), flushes the tree, and
// updates the cache synchronously — all before returning, so a
// project-creation response never races the decode hot path.
func (l *Loader) Register(addr, path string, meta types.ContractMetadata) error {
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to encode contract metadata", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to write contract metadata file", err)
	}

	entries, err := l.readIndex()
	if err != nil {
		return err
	}

	lowered := strings.ToLower(addr)
	replaced := false
	for i, e := range entries {
		if strings.ToLower(e.Addr) == lowered {
			entries[i] = types.MetadataIndexEntry{Addr: lowered, Path: path}
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, types.MetadataIndexEntry{Addr: lowered, Path: path})
	}

	if err := l.writeIndex(entries); err != nil {
		return err
	}

	l.cache.Put(lowered, meta)
	return nil
}

func (l *Loader) readIndex() ([]types.MetadataIndexEntry, error) {
	raw, err := l.tree.Get([]byte(indexKey))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var entries []types.MetadataIndexEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode metadata index", err)
	}
	return entries, nil
}

func (l *Loader) writeIndex(entries []types.MetadataIndexEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to encode metadata index", err)
	}
	if err := l.tree.Insert([]byte(indexKey), raw); err != nil {
		return err
	}
	return l.tree.Flush()
}

// ReadFile reads and parses a contract metadata JSON file from disk
// (spec §6, "Metadata file"), without touching the cache or index —
// callers that also want it registered should follow up with
// Loader.Register.
func ReadFile(path string) (*types.ContractMetadata, error) {
	return readMetadataFile(path)
}

func readMetadataFile(path string) (*types.ContractMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to read contract metadata file", err)
	}

	var meta types.ContractMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode contract metadata file", err)
	}
	return &meta, nil
}
