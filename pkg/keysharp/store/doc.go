// Package store defines the cache of raw n-gram tables.
//
// Implementations live in subpackages: memstore keeps everything in
// memory, sqlite and bolt persist entries to a single file. Tables are
// serialized with msgpack (EncodeCounts/DecodeCounts) by the on-disk
// implementations.
package store
