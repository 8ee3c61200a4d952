// Package store persists named, fully materialized collections of entities.
// A Backend moves opaque JSON documents in and out of a medium (files, memory,
// SQLite, PostgreSQL); a Collection layers typed, lock-serialized
// load/mutate/save cycles on top of it.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotExist is returned by Backend.Load when nothing was saved under a name.
var ErrNotExist = errors.New("collection does not exist")

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Backend saves and loads whole collection documents by name. Save must
// replace the previous document atomically: a concurrent or later Load sees
// either the old or the new payload, never a partial one.
type Backend interface {
	Driver() string
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
	Ping(ctx context.Context) error
	Close() error
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty collection name")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid collection name %q", name)
	}
	return nil
}
