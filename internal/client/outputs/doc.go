// Package outputs downloads rendered videos, previews and archives produced
// by the backend, either over plain HTTP from signed URLs or directly from
// the output bucket.
package outputs
