// Package domain contains the core data types of the URL reputation checker:
// statuses, verification signals, persisted scan records and check results.
// It has no dependencies on storage, transport or any external service.
package domain
