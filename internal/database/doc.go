// Package database manages the registry database connection: opening the
// SQLite file through GORM, pool sizing and lifecycle.
package database
