// Package reembed regenerates embedding vectors for stored detections.
//
// It is used when the embedding model changes, or to backfill detections
// that were persisted without a vector during an embedding outage. The
// package supports batch processing, progress tracking, retry logic with
// exponential backoff, and vector normalization for cosine similarity.
package reembed
