// Package partition
// Author: momentics <momentics@gmail.com>
//
// Single-pivot Lomuto partitioning over api.Sequence, pluggable pivot
// selection, and the sequential quicksort used for ranges that are too small
// to be worth handing to another worker.
//
// Partitioning has no concurrency awareness: callers guarantee that nobody
// else touches the range while it runs.
package partition
