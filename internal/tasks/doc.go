// Package tasks runs long playlist operations with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] fetches many playlists through a rate limiter and writes them with a pool of workers:
//
//  1. A producer fetches each playlist in order, waiting on the limiter before every request
//  2. Workers write the fetched playlists in the chosen format (see [WriteExport])
//  3. Results are collected into a [BulkExportResult] and summarized in export_manifest.json
//
// A playlist that fails to fetch or write is recorded as a failed result; the rest of the export continues.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends never block: an update is dropped when
// the receiver is not ready.
package tasks
