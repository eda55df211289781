package metrics

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggr-io/triggr/pkg/security"
	"github.com/triggr-io/triggr/pkg/storage"
	"github.com/triggr-io/triggr/pkg/types"
)

func newTestCollectorStore(t *testing.T) *storage.Store {
	t.Helper()
	dir := t.TempDir()

	open := func(name string) *storage.Tree {
		tree, err := storage.OpenTree(name, filepath.Join(dir, name+".db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = tree.Close() })
		return tree
	}

	return &storage.Store{
		Projects: open("projects"),
		Users:    open("users"),
		App:      open("app"),
		Metadata: open("metadata"),
		Triggers: open("triggers"),
	}
}

func TestCollectorCollectsProjectAndTriggerCounts(t *testing.T) {
	store := newTestCollectorStore(t)

	keys, err := security.NewKeyManager([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	projects := storage.NewProjectStore(store.Projects, store.Users, keys)
	_, _, err = projects.Create(types.Project{ID: "proj-1", Owner: "alice"})
	require.NoError(t, err)
	_, _, err = projects.Create(types.Project{ID: "proj-2", Owner: "alice"})
	require.NoError(t, err)

	triggers := storage.NewTriggerStore(store.Triggers)
	require.NoError(t, triggers.StoreTrigger("0xabc", types.Trigger{ID: "t1", Active: true}))
	require.NoError(t, triggers.StoreTrigger("0xabc", types.Trigger{ID: "t2", Active: false}))
	require.NoError(t, triggers.StoreTrigger("0xdef", types.Trigger{ID: "t3", Active: true}))

	c := NewCollector(store)
	c.collect()

	assert.Equal(t, float64(2), testutil.ToFloat64(ProjectsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(TriggersTotal.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(TriggersTotal.WithLabelValues("false")))
}

func TestCollectorStartStopDoesNotPanic(t *testing.T) {
	store := newTestCollectorStore(t)
	c := NewCollector(store)
	c.Start()
	c.Stop()
}
