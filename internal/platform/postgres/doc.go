// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a DBTX so it can run against either a
// connection pool or a transaction; image payloads live in a bytea column so
// a profile and its image are written in one atomic insert.
package postgres
