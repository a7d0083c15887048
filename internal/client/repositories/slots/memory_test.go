package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Repository = (*MemoryRepository)(nil)
var _ Repository = (*SQLiteRepository)(nil)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, r.Set(ctx, "k", []byte(`2`)))
	v, err = r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), v)

	require.NoError(t, r.Delete(ctx, "k"))
	v, err = r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryRepository_CopiesBytes(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte(`"abc"`)
	require.NoError(t, r.Set(ctx, "k", in))
	in[1] = 'z'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(out))

	out[1] = 'q'
	again, _ := r.Get(ctx, "k")
	assert.Equal(t, `"abc"`, string(again))
}

func TestMemoryRepository_List(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte(`1`)))
	require.NoError(t, r.Set(ctx, "b", []byte(`2`)))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "missing"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"b": []byte(`2`)}, m)

	m["b"][0] = '9'
	v, _ := r.Get(ctx, "b")
	assert.Equal(t, `2`, string(v))
}
