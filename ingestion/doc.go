// Package ingestion loads announcements into a local store.
//
// The Pipeline type validates incoming announcements and writes them in
// batches through a worker pool, so large imports do not serialize on the
// store. Batch failures are collected and reported together; one bad batch
// does not stop the rest of the import.
package ingestion
