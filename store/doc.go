// Package store defines the [Store] interface for vote counter backends and
// provides three implementations:
//
//   - [FileStore]: a fixed-size memory-mapped file shared by every process
//     that opens the same path. This is the production backend.
//   - [MemoryStore]: fast, in-memory counters that are lost on restart.
//   - [SQLiteStore]: persistent counters backed by a SQLite database.
//
// The redis subpackage adds a store shared through a Redis hash.
//
// The file layout is a run of big-endian uint32 slots with no header, see
// [Layout]. Increments are serialised region-wide; reads are lock free and
// consistent per slot only.
package store
