// Package sqlite provides a SQLite-backed implementation of the article,
// snapshot, and embedding store ports. A single database file holds all
// three tables; wrapper types expose each port interface over the shared
// connection.
package sqlite
