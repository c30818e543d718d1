// control/observer.go
// Author: momentics <momentics@gmail.com>
//
// Hooks invoked once per sort call with the final snapshot.

package control

// Observer receives the outcome of every sort call.
type Observer interface {
	ObserveSort(snap StatsSnapshot, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(snap StatsSnapshot, err error)

func (f ObserverFunc) ObserveSort(snap StatsSnapshot, err error) { f(snap, err) }

// MultiObserver fans out to every non-nil observer in order.
type MultiObserver []Observer

func (m MultiObserver) ObserveSort(snap StatsSnapshot, err error) {
	for _, o := range m {
		if o != nil {
			o.ObserveSort(snap, err)
		}
	}
}
