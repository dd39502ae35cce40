// Package services contains the application services behind the CLI. Each
// service combines the backend client with the local cache and the core
// polling, upload and bulk components, and is consumed through an interface
// so commands can be tested against fakes.
package services
