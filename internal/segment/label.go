// Package segment provides point-to-region color classification for mask carving.
package segment

// Label is the per-pixel segmentation state. Labels are kept separate from
// display colors; rendering maps them to colors as its own concern.
type Label uint8

const (
	// LabelUnmarked pixels show the source image unchanged.
	LabelUnmarked Label = iota

	// LabelMarked pixels have been classified as foreground by a click.
	LabelMarked

	// LabelCleared pixels were confirmed as background within a classified
	// window. The state is transient: a commit folds it back to Unmarked.
	LabelCleared
)

func (l Label) String() string {
	switch l {
	case LabelMarked:
		return "marked"
	case LabelCleared:
		return "cleared"
	default:
		return "unmarked"
	}
}
