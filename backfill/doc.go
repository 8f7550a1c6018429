// Package backfill copies announcements from a remote source into a local
// store.
//
// The Backfiller fetches every announcement from a source repository and
// writes them to a local store in batches, with exponential-backoff retries
// around the remote fetch and each batch write, and progress reporting for
// long imports.
package backfill
