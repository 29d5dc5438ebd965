// Package lists stores named item lists as numbered revisions.
//
// Every update is diffed against the latest revision with the reconcile
// engine; the revision row keeps the items and the edit summary, and a JSON
// snapshot is archived in object storage under <prefix>/<list>/<revision>.json.
// The package also serves stateless diffs over HTTP.
package lists
