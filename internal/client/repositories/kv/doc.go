// Package kv contains the raw key-value backends behind the client's
// persistent store. Every backend implements Repository; backends that can
// apply several writes atomically also implement BatchRepository.
package kv
