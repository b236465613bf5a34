package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/generic"
	"github.com/proago/crm-engine/generic/store"
)

type doc struct {
	Names []string `json:"names"`
}

func TestMemory_LoadMissingKey(t *testing.T) {
	s := store.NewMemory()
	var d doc
	found, err := s.Load(context.Background(), generic.KeySettings, &d)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_SaveIsolatesCaller(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	// GIVEN: a document saved then mutated by the caller
	in := doc{Names: []string{"a"}}
	require.NoError(t, s.Save(ctx, generic.KeyRecruiters, in))
	in.Names[0] = "mutated"

	// THEN: the stored copy is unaffected
	var out doc
	found, err := s.Load(ctx, generic.KeyRecruiters, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a"}, out.Names)
}

func TestTxMemory_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := store.NewTxMemory()
	require.NoError(t, s.Save(ctx, generic.KeyPipeline, doc{Names: []string{"before"}}))

	// WHEN: a transaction writes two documents then fails
	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx generic.Store) error {
		require.NoError(t, tx.Save(ctx, generic.KeyPipeline, doc{Names: []string{"after"}}))
		require.NoError(t, tx.Save(ctx, generic.KeyRecruiters, doc{Names: []string{"x"}}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// THEN: neither write is visible
	var out doc
	_, err = s.Load(ctx, generic.KeyPipeline, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"before"}, out.Names)

	found, err := s.Load(ctx, generic.KeyRecruiters, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadOr_DefaultWhenMissing(t *testing.T) {
	s := store.NewMemory()
	got, err := generic.LoadOr(context.Background(), s, generic.KeySettings, doc{Names: []string{"default"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, got.Names)
}
