// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime statistics, and metrics export for parsort.
//
// Provides:
//   - yaml-backed Config with defaults and validation
//   - lock-free per-call counters with immutable snapshots
//   - Observer hooks fed once per sort call, including a Prometheus exporter
package control
