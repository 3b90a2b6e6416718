package natearth

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDataset = Dataset{
	ID:      "states",
	Name:    "Estados",
	Archive: "ne_10m_admin_1_states_provinces.zip",
	Kind:    KindPolygon,
}

// zipArchive builds an in-memory archive with the layer files a Natural Earth
// download carries.
func zipArchive(t *testing.T, base string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		f, err := zw.Create(base + ext)
		require.NoError(t, err)
		_, err = f.Write([]byte("stub"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestEnsureDownloadsOnce(t *testing.T) {
	base := "ne_10m_admin_1_states_provinces"
	archive := zipArchive(t, base)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/"+testDataset.Archive, r.URL.Path)
		w.Write(archive)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir, srv.URL+"/", nil)

	shpPath, err := f.Ensure(context.Background(), testDataset)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, base, base+".shp"), shpPath)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))

	// second run hits the archive cache, never the server
	shpPath2, err := f.Ensure(context.Background(), testDataset)
	require.NoError(t, err)
	assert.Equal(t, shpPath, shpPath2)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestEnsureCachedArchiveNeedsNoServer(t *testing.T) {
	base := "ne_10m_admin_1_states_provinces"
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, testDataset.Archive), zipArchive(t, base), 0o644))

	f := NewFetcher(dir, "http://127.0.0.1:1/", nil)
	shpPath, err := f.Ensure(context.Background(), testDataset)
	require.NoError(t, err)
	assert.FileExists(t, shpPath)
	assert.FileExists(t, filepath.Join(dir, base, base+".dbf"))
}

func TestEnsureServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), srv.URL+"/", nil)
	_, err := f.Ensure(context.Background(), testDataset)
	require.Error(t, err)

	// a failed download must not leave anything a later run mistakes for a cache hit
	_, statErr := os.Stat(filepath.Join(f.DataDir, testDataset.Archive))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsureArchiveWithoutShp(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("readme.txt")
	require.NoError(t, err)
	f.Write([]byte("no layers here"))
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, testDataset.Archive), buf.Bytes(), 0o644))

	fetcher := NewFetcher(dir, "http://127.0.0.1:1/", nil)
	_, err = fetcher.Ensure(context.Background(), testDataset)
	assert.ErrorContains(t, err, ".shp")
}

func TestLookup(t *testing.T) {
	ds, ok := Lookup(States)
	require.True(t, ok)
	assert.Equal(t, "ne_10m_admin_1_states_provinces.zip", ds.Archive)

	_, ok = Lookup("rivers")
	assert.False(t, ok)
}
