// Package store defines interfaces for data persistence operations and the
// scoped acquisition helpers every store implementation goes through.
//
// A Pool hands out Conns; WithConnection brackets a checkout with a
// guaranteed release, and WithCursor layers a Cursor on top that commits on
// request and is always closed before the connection goes back to the pool.
// These abstractions keep business rules independent of the database driver
// and let the lifecycle be exercised without a database.
package store
