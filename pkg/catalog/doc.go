// Package catalog implements the asset catalog's ingestion pipeline and
// listing logic with pluggable repository and blob storage backends.
//
// It exposes a single Service interface that orchestrates multipart upload
// reception, MIME validation, storage routing, name-uniqueness enforcement,
// and paginated listing. Implementations of repositories (memory, Postgres)
// and blob stores (memory, filesystem) are provided under subpackages.
//
// Uniqueness Strategy
//
// Item names are unique across the catalog. The service performs a FindByName
// fast path before inserting, but the repository's Insert is the sole
// correctness guarantee: a unique constraint (or the equivalent index under a
// write lock) rejects the duplicate that a concurrent request slipped past
// the check, and the service treats that rejection as authoritative.
package catalog
