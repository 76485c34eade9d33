package services

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiskStore(t *testing.T) *DiskStore {
	t.Helper()
	return &DiskStore{
		root:    t.TempDir(),
		baseURL: "http://localhost:3000/api/files",
		secret:  []byte("test-secret-at-least-32-characters!!"),
	}
}

func TestDiskStoreRoundTrip(t *testing.T) {
	store := testDiskStore(t)

	require.False(t, store.Exists(BucketResumes, "r.pdf"))
	require.NoError(t, store.Upload(BucketResumes, "r.pdf", []byte("resume")))
	assert.True(t, store.Exists(BucketResumes, "r.pdf"))

	data, err := store.Open(BucketResumes, "r.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("resume"), data)
}

func TestSignedURLVerifies(t *testing.T) {
	store := testDiskStore(t)
	require.NoError(t, store.Upload(BucketResumes, "r.pdf", []byte("resume")))

	url, err := store.SignedURL(BucketResumes, "r.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:3000/api/files/resumes/r.pdf?"))

	expires, sig := parseSignedQuery(t, url)
	assert.True(t, store.VerifySignature(BucketResumes, "r.pdf", expires, sig))

	// Any change to the signed parts breaks verification.
	assert.False(t, store.VerifySignature(BucketResumes, "other.pdf", expires, sig))
	assert.False(t, store.VerifySignature(BucketProfilePictures, "r.pdf", expires, sig))
	assert.False(t, store.VerifySignature(BucketResumes, "r.pdf", expires, sig+"00"))
}

func TestSignedURLExpires(t *testing.T) {
	store := testDiskStore(t)
	expired := time.Now().Add(-time.Minute).Unix()
	sig := store.sign(BucketResumes, "r.pdf", expired)
	assert.False(t, store.VerifySignature(BucketResumes, "r.pdf", strconv.FormatInt(expired, 10), sig))
}

func TestSignedURLMissingObject(t *testing.T) {
	store := testDiskStore(t)
	_, err := store.SignedURL(BucketResumes, "missing.pdf", time.Minute)
	assert.Error(t, err)
}

func TestRandomObjectKey(t *testing.T) {
	a := RandomObjectKey("user-1", "resume.pdf")
	b := RandomObjectKey("user-1", "resume.pdf")
	assert.NotEqual(t, a, b, "keys must be unguessable, not derived from inputs alone")
	assert.Equal(t, ".pdf", filepath.Ext(a))
	assert.NotContains(t, a, "/")

	bare := RandomObjectKey("user-1", "noextension")
	assert.Equal(t, "", filepath.Ext(bare))
}

func parseSignedQuery(t *testing.T, url string) (expires, sig string) {
	t.Helper()
	q := url[strings.Index(url, "?")+1:]
	for _, pair := range strings.Split(q, "&") {
		kv := strings.SplitN(pair, "=", 2)
		require.Len(t, kv, 2)
		switch kv[0] {
		case "expires":
			expires = kv[1]
		case "sig":
			sig = kv[1]
		}
	}
	require.NotEmpty(t, expires)
	require.NotEmpty(t, sig)
	return expires, sig
}
