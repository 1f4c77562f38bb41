package instructions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDoc creates a document (and any parent directories) inside a test
// store rooted at root.
func writeDoc(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// mkDir creates an empty directory inside a test store.
func mkDir(t *testing.T, root, relPath string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(relPath)), 0o750))
}

// countingStore wraps a Store and counts its lookups, proving cache hits
// perform no I/O.
type countingStore struct {
	inner Store
	reads int
	stats int
}

func (c *countingStore) ReadDocument(relPath string) (string, bool) {
	c.reads++
	return c.inner.ReadDocument(relPath)
}

func (c *countingStore) DirExists(relPath string) bool {
	c.stats++
	return c.inner.DirExists(relPath)
}

func (c *countingStore) TopLevelDirs() []string {
	c.stats++
	return c.inner.TopLevelDirs()
}

func newSingleTenant(t *testing.T) (string, *Resolver) {
	t.Helper()
	root := t.TempDir()
	return root, NewResolver(NewDirStore(root, nil), Options{})
}

func TestResolveAncestorBases(t *testing.T) {
	// Segment "dashboard" has no folder, so "123" is never reached and no
	// leaf file applies: only the two base documents make it in.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "_base.md", "site-wide instructions")
	writeDoc(t, root, "seo/_base.md", "seo instructions")

	text, found := r.Resolve("https://app.example.com/seo/dashboard/123")
	require.True(t, found)
	assert.Equal(t, "site-wide instructions\n\n---\n\nseo instructions", text)
}

func TestResolveDynamicFolder(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "seo/_dynamic/_base.md", "any report")

	text, found := r.Resolve("https://app.example.com/seo/123")
	require.True(t, found)
	assert.Equal(t, "any report", text)
}

func TestResolveDynamicStarFolder(t *testing.T) {
	// "_dynamic" is preferred; "*" is the fallback folder name.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "orders/*/_base.md", "any order")

	text, found := r.Resolve("https://shop.example.com/orders/deadbeef01")
	require.True(t, found)
	assert.Equal(t, "any order", text)
}

func TestResolveLiteralBeatsDynamicFolders(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "v2/_base.md", "v2 docs")
	writeDoc(t, root, "_dynamic/_base.md", "dynamic docs")

	text, found := r.Resolve("https://app.example.com/v2")
	require.True(t, found)
	assert.Equal(t, "v2 docs", text)
}

func TestResolveExactSiblingFile(t *testing.T) {
	// No folder matches anywhere, but a page-specific leaf file exists.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "projects/overview.md", "overview page")

	text, found := r.Resolve("https://app.example.com/projects/overview")
	require.True(t, found)
	assert.Equal(t, "overview page", text)
}

func TestResolveSiblingFileAlongsideFolder(t *testing.T) {
	// A leaf file coexists with a folder of the same name; both documents
	// are included, folder descent first.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "reports/_base.md", "reports folder")
	writeDoc(t, root, "reports.md", "reports page")

	text, found := r.Resolve("https://app.example.com/reports")
	require.True(t, found)
	assert.Equal(t, "reports folder\n\n---\n\nreports page", text)
}

func TestResolveSiblingFileDeduplicated(t *testing.T) {
	// When the descent already loaded the leaf file (unmatched last
	// segment), the sibling-file pass must not append it again.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "_base.md", "root")
	writeDoc(t, root, "settings.md", "settings page")

	text, found := r.Resolve("https://app.example.com/settings")
	require.True(t, found)
	assert.Equal(t, 1, strings.Count(text, "settings page"))
}

func TestResolveIndexDocument(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "billing/_base.md", "billing base")
	writeDoc(t, root, "billing/index.md", "billing index")

	text, found := r.Resolve("https://app.example.com/billing")
	require.True(t, found)
	assert.Equal(t, "billing base\n\n---\n\nbilling index", text)
}

func TestResolveRootPath(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "_base.md", "root instructions")

	for _, url := range []string{
		"https://app.example.com/",
		"https://app.example.com",
	} {
		text, found := r.Resolve(url)
		require.True(t, found, "url %s", url)
		assert.Equal(t, "root instructions", text)
	}
}

func TestResolveTrailingSlash(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "seo/_base.md", "seo")

	text, found := r.Resolve("https://app.example.com/seo/")
	require.True(t, found)
	assert.Equal(t, "seo", text)
}

func TestResolveEmptyStoreAbsent(t *testing.T) {
	_, r := newSingleTenant(t)

	text, found := r.Resolve("https://app.example.com/anything")
	assert.False(t, found)
	assert.Empty(t, text)
}

func TestResolveLiteralPathFallback(t *testing.T) {
	// Single-tenant resolvers treat an unparseable URL as a literal path.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "seo/_base.md", "seo")

	text, found := r.Resolve("seo/dashboard")
	require.True(t, found)
	assert.Equal(t, "seo", text)
}

func TestResolveDocumentsTrimmed(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "_base.md", "\n\n  padded instructions \n\n")

	text, found := r.Resolve("https://app.example.com/")
	require.True(t, found)
	assert.Equal(t, "padded instructions", text)
}

func TestResolveCacheHitPerformsNoIO(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "_base.md", "root")
	counting := &countingStore{inner: NewDirStore(root, nil)}
	r := NewResolver(counting, Options{})

	first, foundFirst := r.Resolve("https://app.example.com/seo")
	reads, stats := counting.reads, counting.stats
	second, foundSecond := r.Resolve("https://app.example.com/seo")

	assert.Equal(t, first, second)
	assert.Equal(t, foundFirst, foundSecond)
	assert.Equal(t, reads, counting.reads, "cache hit must not read documents")
	assert.Equal(t, stats, counting.stats, "cache hit must not probe directories")
}

func TestResolveAbsenceCached(t *testing.T) {
	root := t.TempDir()
	counting := &countingStore{inner: NewDirStore(root, nil)}
	r := NewResolver(counting, Options{})

	_, found := r.Resolve("https://app.example.com/none")
	require.False(t, found)
	reads := counting.reads

	_, found = r.Resolve("https://app.example.com/none")
	assert.False(t, found)
	assert.Equal(t, reads, counting.reads)
}

func TestClearCachePicksUpStoreEdits(t *testing.T) {
	root, r := newSingleTenant(t)
	writeDoc(t, root, "_base.md", "old instructions")

	text, _ := r.Resolve("https://app.example.com/")
	require.Equal(t, "old instructions", text)

	writeDoc(t, root, "_base.md", "new instructions")

	// Still cached until cleared.
	text, _ = r.Resolve("https://app.example.com/")
	assert.Equal(t, "old instructions", text)

	r.ClearCache()
	text, _ = r.Resolve("https://app.example.com/")
	assert.Equal(t, "new instructions", text)
}

func TestResolveCacheKeyIsRawURL(t *testing.T) {
	// The cache is keyed by the exact string, not the normalized URL, so
	// equivalent spellings are separate entries that resolve identically.
	root, r := newSingleTenant(t)
	writeDoc(t, root, "seo/_base.md", "seo")

	a, foundA := r.Resolve("https://app.example.com/seo")
	b, foundB := r.Resolve("https://app.example.com/seo/")
	require.True(t, foundA)
	require.True(t, foundB)
	assert.Equal(t, a, b)
}

func TestFormatForPrompt(t *testing.T) {
	out := FormatForPrompt("Click carefully.", "https://app.example.com/seo")

	assert.Contains(t, out, "## Page Instructions")
	assert.Contains(t, out, "https://app.example.com/seo")
	assert.Contains(t, out, "Click carefully.")
}
