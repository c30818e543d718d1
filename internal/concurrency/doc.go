// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives for parsort: non-blocking work containers
// (lock-free Treiber stack, mutex stack, FIFO ring), one-shot completion
// signals, bounded spin backoff, CPU pinning and the fixed worker pool that
// drains a shared container until shutdown.
//
// Pinning is cross-platform (Linux/Windows) with a no-op fallback elsewhere.
package concurrency
