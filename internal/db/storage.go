package db

import (
	"strings"

	supa "github.com/supabase-community/supabase-go"
)

// StorageResolver resolves audio object paths against a public bucket.
type StorageResolver struct {
	client *supa.Client
	bucket string
}

func NewStorageResolver(client *supa.Client, bucket string) *StorageResolver {
	return &StorageResolver{client: client, bucket: bucket}
}

// PublicURL accepts either "<bucket>/<object>" or a bare object path.
func (r *StorageResolver) PublicURL(path string) string {
	if r == nil || r.client == nil || r.client.Storage == nil {
		return path
	}
	object := strings.TrimPrefix(strings.TrimPrefix(path, "/"), r.bucket+"/")
	return r.client.Storage.GetPublicUrl(r.bucket, object).SignedURL
}
