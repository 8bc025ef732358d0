package segment

import "image"

// Window returns a size x size rectangle centered on (cx, cy), clipped to
// bounds. Clipping at image edges yields a smaller window; a center outside
// bounds yields an empty rectangle. The returned rectangle is what both the
// classifier and the mask blit must agree on.
func Window(cx, cy, size int, bounds image.Rectangle) image.Rectangle {
	if size < 1 {
		size = 1
	}
	half := size / 2
	r := image.Rect(cx-half, cy-half, cx-half+size, cy-half+size)
	return r.Intersect(bounds)
}
