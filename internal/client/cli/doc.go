// Package cli provides the vidbatch command-line client.
//
// It wires configuration, the local cache, the backend client and the
// services into a cobra command tree. Commands run one-shot
// (`vidbatch files list video`) or inside the interactive shell started with
// `vidbatch shell`, which keeps a file selection between commands and routes
// every other line through the same command tree.
//
// Failures are reported as a single line chosen by describe; see notify.go.
package cli
