package mask

import "mask-painter/internal/segment"

// history is a stack of full label-grid snapshots, oldest first. Once an
// image is loaded the stack always holds at least the initial snapshot, and
// the top mirrors the working mask after every tracked mutation. Snapshots
// are independent deep copies; memory is bounded by clicks since load.
type history struct {
	snapshots [][]segment.Label
}

// reset discards all snapshots and installs initial as the only entry.
func (h *history) reset(initial []segment.Label) {
	h.snapshots = [][]segment.Label{cloneLabels(initial)}
}

// push records a new snapshot on top of the stack.
func (h *history) push(labels []segment.Label) {
	h.snapshots = append(h.snapshots, cloneLabels(labels))
}

// pop discards the newest snapshot and returns a copy of the new top. It
// refuses to drop the initial snapshot and reports false in that case.
func (h *history) pop() ([]segment.Label, bool) {
	if len(h.snapshots) <= 1 {
		return nil, false
	}
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return cloneLabels(h.snapshots[len(h.snapshots)-1]), true
}

// depth returns the number of stored snapshots.
func (h *history) depth() int {
	return len(h.snapshots)
}

func cloneLabels(labels []segment.Label) []segment.Label {
	out := make([]segment.Label, len(labels))
	copy(out, labels)
	return out
}
