// Package catalog holds the weekly mess menu: four meals per weekday, each
// with a dish and its macro-nutrients. Implementations:
//
//   - [MemoryCatalog]: a concurrent in-memory map, seeded at start-up.
//   - [SQLCatalog]: a mess_menu table in SQLite or MySQL.
//
// A Redis-backed catalog lives in the catalog/redis package.
package catalog
