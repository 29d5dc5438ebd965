package checks

import (
	"context"
	"fmt"

	"list-reconciler/core/storage"
	"list-reconciler/feature/lists"

	"github.com/minio/minio-go/v7"
)

// ArchiveReport lists revisions whose archive copy is absent.
type ArchiveReport struct {
	Checked int `json:"checked"`
	// Missing holds archive keys recorded in the database with no object behind them.
	Missing []string `json:"missing"`
	// Unarchived holds "<list>@<revision>" for rows that were never archived.
	Unarchived []string `json:"unarchived"`
	Matched    bool     `json:"matched"`
}

// RevisionRef names one revision of a list.
type RevisionRef struct {
	List     string
	Revision int
}

func (r RevisionRef) String() string {
	return fmt.Sprintf("%s@%d", r.List, r.Revision)
}

// CheckArchive verifies that every stored revision has an archived snapshot.
// It returns the report and the revisions that need to be archived again.
func CheckArchive(ctx context.Context, client storage.Client, bucket string, repo *lists.Repository) (*ArchiveReport, []RevisionRef, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	archived, err := repo.Archived(ctx)
	if err != nil {
		return nil, nil, err
	}
	unarchived, err := repo.Unarchived(ctx)
	if err != nil {
		return nil, nil, err
	}

	report := &ArchiveReport{
		Checked:    len(archived) + len(unarchived),
		Missing:    []string{},
		Unarchived: []string{},
		Matched:    true,
	}
	var broken []RevisionRef

	for _, rev := range archived {
		opts := minio.ListObjectsOptions{
			Prefix:    rev.ArchiveKey,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == rev.ArchiveKey {
				found = true
			}
			break
		}

		if !found {
			report.Missing = append(report.Missing, rev.ArchiveKey)
			broken = append(broken, RevisionRef{List: rev.ListName, Revision: rev.Number})
		}
	}

	for _, rev := range unarchived {
		ref := RevisionRef{List: rev.ListName, Revision: rev.Number}
		report.Unarchived = append(report.Unarchived, ref.String())
		broken = append(broken, ref)
	}

	report.Matched = len(broken) == 0
	return report, broken, nil
}

// FixArchive uploads the snapshot of each revision and records its key.
func FixArchive(ctx context.Context, repo *lists.Repository, archive *lists.Archive, refs []RevisionRef) error {
	for _, ref := range refs {
		rev, err := repo.Get(ctx, ref.List, ref.Revision)
		if err != nil {
			return err
		}
		snap, err := rev.Snapshot()
		if err != nil {
			return err
		}
		key, err := archive.Store(ctx, snap)
		if err != nil {
			return err
		}
		if err := repo.SetArchiveKey(ctx, ref.List, ref.Revision, key); err != nil {
			return err
		}
	}
	return nil
}
