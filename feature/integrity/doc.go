// Package integrity provides health checks for the list store.
//
// Unlike the 'lists' package which serves list content, this package
// validates the infrastructure the lists feature relies on.
//
// # Checks Provided
//
//   - Structure: Checks that the bucket exists and holds the archive folder (e.g., /lists).
//   - Archive: Verifies that every stored revision has an archived JSON snapshot.
//   - Server: Validates that the list_revisions table matches the revision model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/archive : Runs archive check (supports ?fix=true).
//   - GET /integrity/server : Runs server schema check.
package integrity
