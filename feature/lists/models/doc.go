// Package models defines the list item type, its identity and content
// comparators, and the GORM model persisted for each list revision.
package models
