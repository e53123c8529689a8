// Package storage implements the client's persistent key-value store on top
// of a raw kv.Repository backend.
//
// Reads never fail: backend errors are logged and reported as "absent".
// Writes and removals surface a *StorageWriteError.
package storage
