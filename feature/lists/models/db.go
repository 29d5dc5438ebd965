package models

import (
	"encoding/json"
	"fmt"
	"time"

	"list-reconciler/core/reconcile"
)

// Revision is one persisted snapshot of a list and the script that produced it.
type Revision struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ListName   string    `gorm:"column:list_name;type:varchar(191);not null;uniqueIndex:idx_list_revision" json:"list"`
	Number     int       `gorm:"column:revision;type:int;not null;uniqueIndex:idx_list_revision" json:"revision"`
	Items      string    `gorm:"column:items;type:longtext;not null" json:"-"`
	Size       int       `gorm:"column:size;type:int;not null;default:0" json:"size"`
	Inserts    int       `gorm:"column:inserts;type:int;not null;default:0" json:"inserts"`
	Removes    int       `gorm:"column:removes;type:int;not null;default:0" json:"removes"`
	Moves      int       `gorm:"column:moves;type:int;not null;default:0" json:"moves"`
	Changes    int       `gorm:"column:changes;type:int;not null;default:0" json:"changes"`
	ArchiveKey string    `gorm:"column:archive_key;type:varchar(255)" json:"archive_key,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime" json:"created_at"`
}

// TableName returns the table name for gorm.
func (Revision) TableName() string {
	return "list_revisions"
}

// NewRevision encodes items into a revision row.
func NewRevision(list string, number int, items []Item, summary reconcile.Summary) (*Revision, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items of %s@%d: %w", list, number, err)
	}
	return &Revision{
		ListName:  list,
		Number:    number,
		Items:     string(data),
		Size:      len(items),
		Inserts:   summary.Inserts,
		Removes:   summary.Removes,
		Moves:     summary.Moves,
		Changes:   summary.Changes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decode returns the items stored in the revision.
func (r *Revision) Decode() ([]Item, error) {
	var items []Item
	if r.Items == "" {
		return []Item{}, nil
	}
	if err := json.Unmarshal([]byte(r.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items of %s@%d: %w", r.ListName, r.Number, err)
	}
	return items, nil
}

// Snapshot is a decoded list revision as served by the API and archived in storage.
type Snapshot struct {
	List      string            `json:"list"`
	Revision  int               `json:"revision"`
	Items     []Item            `json:"items"`
	Summary   reconcile.Summary `json:"summary"`
	CreatedAt time.Time         `json:"created_at"`
}

// Snapshot decodes the revision into a Snapshot.
func (r *Revision) Snapshot() (*Snapshot, error) {
	items, err := r.Decode()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		List:     r.ListName,
		Revision: r.Number,
		Items:    items,
		Summary: reconcile.Summary{
			Inserts: r.Inserts,
			Removes: r.Removes,
			Moves:   r.Moves,
			Changes: r.Changes,
		},
		CreatedAt: r.CreatedAt,
	}, nil
}
