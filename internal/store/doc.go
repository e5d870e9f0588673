// Package store persists collections as whole JSON documents. A Backend
// loads and saves named documents; FileBackend keeps one file per document
// and SQLiteBackend keeps one row per document. LoadList and SaveList encode
// typed collections on top of either backend.
package store
