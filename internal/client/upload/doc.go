// Package upload sends local files to the backend and reports a single
// 0-100 progress value per file.
//
// Progress has two phases. While the request body is being transferred the
// byte fraction is scaled into [0, pin), where pin = TransferWeight*100
// (80 by default). When the transport has consumed the last body byte the
// value is pinned at exactly pin, once. Only a 2xx response moves it to 100.
// Reported values are integers, strictly increasing and within [0,100].
//
// UploadAll is sequential and stops at the first failed file. The bulk
// package is the primitive for fan-out operations that must not stop early.
package upload
