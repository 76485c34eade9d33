// services/storage_service.go - Resume and profile picture storage
package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Buckets for uploaded artifacts. The NODE-style env suffixing of the
// original is replaced by a single STORAGE_ROOT namespace.
const (
	BucketResumes         = "resumes"
	BucketProfilePictures = "profile-pictures"
)

// ObjectStore is the blob-storage boundary: upload, signed download URLs and
// existence checks.
type ObjectStore interface {
	Upload(bucket, key string, data []byte) error
	SignedURL(bucket, key string, ttl time.Duration) (string, error)
	Exists(bucket, key string) bool
}

// DiskStore keeps objects on the local filesystem and signs download URLs
// with an HMAC over (bucket, key, expiry) so the download handler can verify
// them without any state.
type DiskStore struct {
	root    string
	baseURL string
	secret  []byte
}

func NewDiskStore() *DiskStore {
	root := os.Getenv("STORAGE_ROOT")
	if root == "" {
		root = "./storage"
	}
	baseURL := os.Getenv("STORAGE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api/files"
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(os.Getenv("JWT_SECRET")),
	}
}

func (s *DiskStore) Upload(bucket, key string, data []byte) error {
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, key), data, 0o644)
}

func (s *DiskStore) SignedURL(bucket, key string, ttl time.Duration) (string, error) {
	if !s.Exists(bucket, key) {
		return "", fmt.Errorf("object %s/%s does not exist", bucket, key)
	}
	expiry := time.Now().Add(ttl).Unix()
	sig := s.sign(bucket, key, expiry)
	return fmt.Sprintf("%s/%s/%s?expires=%d&sig=%s", s.baseURL, bucket, key, expiry, sig), nil
}

func (s *DiskStore) Exists(bucket, key string) bool {
	info, err := os.Stat(filepath.Join(s.root, bucket, key))
	return err == nil && !info.IsDir()
}

// Open returns the object's bytes after the handler has verified the URL.
func (s *DiskStore) Open(bucket, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, bucket, key))
}

// VerifySignature checks a signed URL's signature and expiry.
func (s *DiskStore) VerifySignature(bucket, key, expires, sig string) bool {
	expiry, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		return false
	}
	expected := s.sign(bucket, key, expiry)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *DiskStore) sign(bucket, key string, expiry int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(bucket + "/" + key + "/" + strconv.FormatInt(expiry, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// RandomObjectKey builds an unguessable storage key preserving the upload's
// extension.
func RandomObjectKey(seed, filename string) string {
	sum := sha256.Sum256([]byte(seed + filename + strconv.FormatInt(time.Now().UnixNano(), 10)))
	key := base64.RawURLEncoding.EncodeToString(sum[:16])
	if ext := filepath.Ext(filename); ext != "" {
		key += ext
	}
	return key
}
