// Package pool
// Author: momentics <momentics@gmail.com>
//
// Object recycling for short-lived scheduler records. The sort engine
// allocates one work item per split; recycling them keeps allocation out of
// the hot recursion.
package pool
