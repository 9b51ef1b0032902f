package states

import "strings"

// MaxOrder is the longest supported history window.
const MaxOrder = 3

// Key identifies a state node by its history window: the k most recent
// physical nodes, oldest first. Keys of any order share one comparable
// representation so they can be used directly as map keys.
type Key struct {
	n      uint8
	window [MaxOrder]string
}

// NewKey builds a key from a history window of 1..MaxOrder nodes.
// It panics on an out-of-range window; callers validate the order first.
func NewKey(window ...string) Key {
	if len(window) == 0 || len(window) > MaxOrder {
		panic("states: history window must hold 1 to 3 nodes")
	}
	var k Key
	k.n = uint8(len(window))
	copy(k.window[:], window)
	return k
}

// Order returns the window length.
func (k Key) Order() int { return int(k.n) }

// Window returns the nodes of the history window, oldest first.
func (k Key) Window() []string { return k.window[:k.n] }

// PhysID returns the physical node the state sits on: the newest node of the window.
func (k Key) PhysID() string {
	if k.n == 0 {
		return ""
	}
	return k.window[k.n-1]
}

// Name returns the human-readable state label, e.g. "A B" for a second order state.
func (k Key) Name() string { return strings.Join(k.Window(), " ") }
