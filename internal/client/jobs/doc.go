// Package jobs watches backend processing jobs until they reach a terminal
// state.
//
// A Poller fetches the status immediately and then once per interval. Every
// successful fetch is handed to the caller's callback; the loop ends right
// after a completed or failed snapshot. Transient fetch errors are logged and
// the next tick proceeds. Authentication errors end the loop.
//
// Start returns an explicit *Handle. At most one loop runs per job id:
// starting a job that is already watched stops the previous loop, and the
// new one makes its first fetch only after the previous loop has exited.
// Stop is idempotent and returns once the loop, including a running
// callback, has exited. A callback ends its own loop with Cancel.
package jobs
