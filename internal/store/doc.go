// Package store defines the persistence boundary of the application.
//
// A Store is a small key-value abstraction: named collections, each mapping a
// user id to one JSON document. Services never talk to a Store directly; they
// run their reads and writes inside a Transactor, which serializes operations
// and applies all writes of an operation in one batch, or none of them.
package store
