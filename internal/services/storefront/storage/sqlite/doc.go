// Package sqlite provides the visitor slot persistence adapter backed by SQLite.
package sqlite
