package winbuf

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	sharedMemory bool
	allocator    SegmentAllocator
}

func defaultManagerOptions() managerOptions {
	return managerOptions{
		sharedMemory: true,
		allocator:    DefaultSegmentAllocator(),
	}
}

// WithSharedMemory enables or disables shared memory buffers. It is on by
// default and only takes effect when the display supports it.
func WithSharedMemory(on bool) Option {
	return func(o *managerOptions) {
		o.sharedMemory = on
	}
}

// WithSegmentAllocator replaces the platform segment allocator.
func WithSegmentAllocator(a SegmentAllocator) Option {
	return func(o *managerOptions) {
		o.allocator = a
	}
}
