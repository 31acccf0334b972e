package back

import (
	"log/slog"
	"os"

	"github.com/gnustep/libs-back/pixfmt"
	"github.com/gnustep/libs-back/winbuf"
)

// NoShmEnv names the environment variable that, when set to anything
// but the empty string, disables shared memory buffers.
const NoShmEnv = "ARTBACK_NO_SHM"

// Option configures a Backend during creation.
//
// Example:
//
//	b := back.New(display, back.WithSharedMemory(false))
type Option func(*options)

type options struct {
	sharedMemory bool
	logger       *slog.Logger
	allocator    winbuf.SegmentAllocator
	visual       *pixfmt.Visual
}

func defaultOptions() options {
	return options{
		sharedMemory: os.Getenv(NoShmEnv) == "",
	}
}

// WithSharedMemory enables or disables shared memory buffers. They are on
// unless $ARTBACK_NO_SHM is set, and only used when the display supports
// them.
func WithSharedMemory(on bool) Option {
	return func(o *options) {
		o.sharedMemory = on
	}
}

// WithLogger installs l with SetLogger before the backend is set up, so
// layout selection is logged too.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSegmentAllocator replaces the platform shared memory allocator.
func WithSegmentAllocator(a winbuf.SegmentAllocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithVisual picks the pixel layout from v instead of the display's
// visual. Only displays that accept any layout, such as headless, can
// present such buffers.
func WithVisual(v pixfmt.Visual) Option {
	return func(o *options) {
		o.visual = &v
	}
}
