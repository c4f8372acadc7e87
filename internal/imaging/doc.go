// Package imaging loads and caches the frames the detector consumes.
//
// It wraps the standard image decoders (PNG, JPEG, GIF) behind a thread-safe
// cache keyed by file path, so the pipeline and the tool server can hit the
// same file repeatedly (detect, then overlay, then plot) with a single decode.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Decoded images are shared, never copied;
// callers must treat them as immutable.
package imaging
