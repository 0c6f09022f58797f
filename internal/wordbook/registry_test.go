package wordbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/models"
)

func TestRegistryKeepsLoaderPerUser(t *testing.T) {
	store := &fakeStore{words: map[string][]models.SavedWord{
		"u1": words("cat"),
		"u2": words("dog"),
	}}
	pool := &queuePool{}
	clock := &fakeClock{}
	r := NewRegistry(Options{
		Store: store,
		Fetch: func(_ context.Context, w string) ([]models.DictionaryEntry, error) {
			return entriesFor(w), nil
		},
		Pool:      pool,
		AfterFunc: clock.AfterFunc,
	})
	defer r.Close()
	ctx := context.Background()

	st, err := r.Refresh(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, st.Loading["cat"])

	st, err = r.Refresh(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, st.Loading["dog"])
	assert.Equal(t, 2, pool.run())

	st, err = r.Refresh(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, st.Details, "cat")
	assert.Empty(t, st.Loading)
	assert.Zero(t, pool.run(), "loaded words are not fetched again")

	r.Forget("u1")
	st, err = r.Refresh(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, st.Details)
	assert.True(t, st.Loading["cat"])
}
