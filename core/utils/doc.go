// Package utils provides loose type conversion helpers for values decoded
// from JSON documents, query strings and database rows.
package utils
