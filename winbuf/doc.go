// Package winbuf manages the off-screen pixel buffer behind each window.
//
// A [Manager] keeps one [Buffer] per window. Drawing code renders into the
// buffer's [pixfmt.View] and records the touched area with
// [Buffer.MarkDirty]; [Buffer.Flush] presents the accumulated rectangle.
//
// When the display supports shared memory the buffer lives in a segment
// the display server can read directly and presents are asynchronous: at
// most one put is in flight per buffer, further drawing accumulates into a
// single dirty rectangle, and the completion (a [Token]) triggers the next
// put. Every reallocation bumps the buffer's generation, so a completion
// that arrives after a resize or close is recognised as stale and ignored.
// Without shared memory presents are synchronous and the buffer never
// waits for a completion.
package winbuf
