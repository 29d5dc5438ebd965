// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so list revisions
// can be archived to AWS S3 or a self-hosted MinIO instance, and so storage
// interactions can be mocked in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the archive bucket.
//   - PutObject / GetObject: raw object access; PutJSON and GetJSON encode and
//     decode JSON documents on top of them.
//   - ListObjects / RemoveObject: enumerate and delete archived revisions.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	_, err = storage.PutJSON(ctx, client, cfg.Storage.Bucket, "lists/holidays/3.json", snapshot)
package storage
