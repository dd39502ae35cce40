// Package jobs keeps the history of processing jobs submitted from this
// client, including the latest status snapshot seen for each.
package jobs
