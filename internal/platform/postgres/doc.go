// Package postgres provides the relational implementation of store.RecordStore.
// A RecordStore works against one table with columns id, username and,
// optionally, name. It only issues DELETE, INSERT, UPDATE and SELECT; the table
// itself is provisioned by the migrations subpackage.
package postgres
