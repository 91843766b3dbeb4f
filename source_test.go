package godbc

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestDirNonExistentPath(t *testing.T) {
	_, err := Dir("/this/path/does/not/exist/at/all")
	require.Error(t, err, "Dir with non-existent path should fail")
}

func TestDirNotADirectory(t *testing.T) {
	_, err := Dir("testdata/networks/powertrain.dbc")
	require.Error(t, err, "Dir with a file path should fail")
}

func TestDirTreeNotADirectory(t *testing.T) {
	_, err := DirTree("testdata/networks/powertrain.dbc")
	require.Error(t, err, "DirTree with a file path should fail")
}

func TestDirSource(t *testing.T) {
	src, err := Dir("testdata/networks")
	require.NoError(t, err)

	names, err := src.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"body", "powertrain"}, names)

	rc, path, err := src.Find("body")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, filepath.Join("testdata", "networks", "body.dbc"), path)

	_, _, err = src.Find("readme")
	require.ErrorIs(t, err, fs.ErrNotExist)
	_, _, err = src.Find("brakes")
	require.ErrorIs(t, err, fs.ErrNotExist, "Dir does not recurse")
}

func TestDirSourceExtensions(t *testing.T) {
	src, err := Dir("testdata/networks", WithExtensions(".txt"))
	require.NoError(t, err)
	names, err := src.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"readme"}, names)
}

func TestDirTreeSource(t *testing.T) {
	src, err := DirTree("testdata/networks")
	require.NoError(t, err)

	names, err := src.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"body", "brakes", "powertrain"}, names)

	rc, path, err := src.Find("brakes")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, filepath.Join("testdata", "networks", "chassis", "brakes.dbc"), path)

	_, _, err = src.Find("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"a/one.dbc":   {Data: []byte("VERSION \"\"\nNS_ :\n")},
		"b/two.DBC":   {Data: []byte("VERSION \"\"\nNS_ :\n")},
		"c/three.txt": {Data: []byte("x")},
	}
	src := FS("mem", fsys)

	names, err := src.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, names)

	rc, path, err := src.Find("two")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "mem:b/two.DBC", path)
	require.Contains(t, string(data), "NS_")

	_, _, err = src.Find("three")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMultiSource(t *testing.T) {
	first := FS("first", fstest.MapFS{"net.dbc": {Data: []byte("first")}})
	second := FS("second", fstest.MapFS{
		"net.dbc":   {Data: []byte("second")},
		"other.dbc": {Data: []byte("other")},
	})
	src := Multi(first, second)

	names, err := src.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"net", "other"}, names)

	rc, path, err := src.Find("net")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "first:net.dbc", path)

	_, path, err = src.Find("other")
	require.NoError(t, err)
	require.Equal(t, "second:other.dbc", path)

	_, _, err = src.Find("none")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
