// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// It also provides the predicate builder used by filtered listings: each
// optional filter contributes one condition and the result renders as a
// SQL fragment that store implementations compose with paging and sorting.
package store
