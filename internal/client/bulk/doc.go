// Package bulk runs an operation over many items and reconciles the
// outcome into a models.BulkResult whose counts always add up.
//
// Each mode calls a single-item operation per entry, concurrently, and never
// aborts early. Batch mode hands the whole list to one backend bulk call and
// repairs whatever counts the backend reports.
package bulk
