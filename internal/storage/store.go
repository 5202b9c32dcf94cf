// Package storage provides the durable key-value port behind every persisted
// hiretrack collection, with in-memory, SQLite, PostgreSQL and Redis adapters.
//
// Values are opaque strings. Callers persist JSON documents through ReadList
// and WriteJSON, which treat missing or corrupt values as empty.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Closer is implemented by adapters holding connections.
type Closer interface {
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Drivers lists the supported driver names.
var Drivers = []string{DriverMemory, DriverSQLite, DriverPostgres, DriverRedis}

// UnknownDriverError is returned by Open for an unsupported driver name.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown storage driver %q (want one of %s)", e.Driver, strings.Join(Drivers, ", "))
}

// Open returns the adapter for driver. dsn is a file path for sqlite and a
// connection URL for postgres and redis; it is ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverSQLite:
		s, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres, "postgresql":
		s, err := ConnectPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverRedis:
		s, err := ConnectRedis(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &UnknownDriverError{Driver: driver}
	}
}

// Close closes s when it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
