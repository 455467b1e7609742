// Package service contains the guestbook use cases. Services receive their
// stores through constructor injection and never reach for the database
// directly; transaction scoping lives in the store implementations.
package service
