package procmemo

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataforge/strata/vfs"
)

func TestGetOrCompute_ComputesOnceThenMemoizes(t *testing.T) {
	table := New()
	key := Key{URL: "https://example.com/repo.git", Ref: "v1.0.0"}

	calls := 0
	first, err := table.GetOrCompute(key, func() (*vfs.VFS, error) {
		calls++
		v := vfs.New()
		v.Add("test.txt", vfs.File{Content: []byte("content")})
		return v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, first.Exists("test.txt"))

	second, err := table.GetOrCompute(key, func() (*vfs.VFS, error) {
		calls++
		v := vfs.New()
		v.Add("test2.txt", vfs.File{Content: []byte("content2")})
		return v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second call must use the memoized result")
	assert.True(t, second.Exists("test.txt"))
	assert.False(t, second.Exists("test2.txt"))
}

func TestGetOrCompute_ErrorIsNotMemoized(t *testing.T) {
	table := New()
	key := Key{URL: "https://example.com/repo.git", Ref: "main"}

	_, err := table.GetOrCompute(key, func() (*vfs.VFS, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.False(t, table.Contains(key))

	v, err := table.GetOrCompute(key, func() (*vfs.VFS, error) {
		return vfs.New(), nil
	})
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestKeyEquality(t *testing.T) {
	a := Key{URL: "https://github.com/user/repo.git", Ref: "main"}
	b := Key{URL: "https://github.com/user/repo.git", Ref: "main"}
	c := Key{URL: "https://github.com/user/repo.git", Ref: "develop"}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "https://github.com/user/repo.git@main", a.String())
}

func TestTableOperations(t *testing.T) {
	table := New()
	key := Key{URL: "https://example.com/repo.git", Ref: "main"}

	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Contains(key))

	v := vfs.New()
	v.Add("file.txt", vfs.File{Content: []byte("content")})
	table.Insert(key, v)

	assert.Equal(t, 1, table.Len())
	assert.True(t, table.Contains(key))

	got, ok := table.Get(key)
	require.True(t, ok)
	assert.True(t, got.Exists("file.txt"))

	table.Clear()
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Contains(key))
}

func TestGetOrCompute_ConcurrentSameKeyAgreeOnWinner(t *testing.T) {
	table := New()
	key := Key{URL: "https://example.com/repo.git", Ref: "main"}

	const workers = 8
	results := make([]*vfs.VFS, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := table.GetOrCompute(key, func() (*vfs.VFS, error) {
				fs := vfs.New()
				fs.Add("a.txt", vfs.File{Content: []byte("x")})
				return fs, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i], "all callers must observe the winning value")
	}
	assert.Equal(t, 1, table.Len())
}

func TestShardDistribution(t *testing.T) {
	// Many distinct keys must all be retrievable regardless of shard.
	table := New()
	for i := 0; i < 100; i++ {
		key := Key{URL: "https://example.com/repo.git", Ref: string(rune('a' + i%26)) + string(rune('0'+i/26))}
		table.Insert(key, vfs.New())
	}
	assert.Equal(t, 100, table.Len())
}
