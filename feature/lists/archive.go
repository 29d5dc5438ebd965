package lists

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"list-reconciler/core/storage"
	"list-reconciler/feature/lists/models"

	"github.com/minio/minio-go/v7"
)

// Archive writes list snapshots to object storage as JSON documents under
// <prefix>/<list>/<revision>.json.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchive creates an archive in bucket under prefix.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	return &Archive{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key of a revision.
func (a *Archive) Key(list string, revision int) string {
	return path.Join(a.prefix, list, strconv.Itoa(revision)+".json")
}

// Store uploads snap and returns its object key.
func (a *Archive) Store(ctx context.Context, snap *models.Snapshot) (string, error) {
	key := a.Key(snap.List, snap.Revision)
	if _, err := storage.PutJSON(ctx, a.client, a.bucket, key, snap); err != nil {
		return "", err
	}
	return key, nil
}

// Load downloads one archived revision.
func (a *Archive) Load(ctx context.Context, list string, revision int) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := storage.GetJSON(ctx, a.client, a.bucket, a.Key(list, revision), &snap); err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrRevisionNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// Revisions lists the archived revision numbers of a list in ascending order.
func (a *Archive) Revisions(ctx context.Context, list string) ([]int, error) {
	prefix := path.Join(a.prefix, list) + "/"
	var out []int
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: false}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive of %s: %w", list, obj.Err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), ".json")
		n, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}
