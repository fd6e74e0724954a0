package sidecar

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PreservesKeyOrder(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "sub-01_T1w.json", []byte(
		`{"zebra": 1, "alpha": "two", "Mango": true}`), 0o644))

	md, err := Load(fsys, "sub-01_T1w.json")
	require.NoError(t, err)

	var keys []string
	for p := md.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"zebra", "alpha", "Mango"}, keys)

	v, ok := md.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestLoad_NestedObjects(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "meta.json", []byte(
		`{"outer": {"b": 1, "a": 2}}`), 0o644))

	md, err := Load(fsys, "meta.json")
	require.NoError(t, err)

	outer, ok := md.Get("outer")
	require.True(t, ok)
	nested, ok := outer.(*Metadata)
	require.True(t, ok, "nested objects keep their order too")

	var keys []string
	for p := nested.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestLoad_DeepNestingKeepsOrder(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "meta.json", []byte(
		`{"a": {"b": {"z": 1, "y": 2}}, "list": [{"q": 1, "p": 2}, 3]}`), 0o644))

	md, err := Load(fsys, "meta.json")
	require.NoError(t, err)

	a, ok := md.Get("a")
	require.True(t, ok)
	b, ok := a.(*Metadata).Get("b")
	require.True(t, ok)
	inner, ok := b.(*Metadata)
	require.True(t, ok)

	var keys []string
	for p := inner.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"z", "y"}, keys)

	// Objects inside arrays stay ordered too.
	list, ok := md.Get("list")
	require.True(t, ok)
	arr, ok := list.([]any)
	require.True(t, ok)
	require.Len(t, arr, 2)
	first, ok := arr[0].(*Metadata)
	require.True(t, ok)
	keys = nil
	for p := first.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"q", "p"}, keys)
}

func TestLoad_NonObjectDocument(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "arr.json", []byte(`[1, 2]`), 0o644))
	_, err := Load(fsys, "arr.json")
	assert.Error(t, err)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(memfs.New(), "nope.json")
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "bad.json", []byte(`{"a":`), 0o644))
	_, err := Load(fsys, "bad.json")
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, 0, Empty().Len())
}
