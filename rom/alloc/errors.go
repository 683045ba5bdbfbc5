package alloc

import "errors"

var (
	// ErrBadPlacement indicates an allocator accepted a region but described a
	// placement outside it.
	ErrBadPlacement = errors.New("alloc: placement outside offered region")

	// ErrRejectedFit indicates an allocator rejected a region large enough for
	// any chunk, which would otherwise grow the image forever.
	ErrRejectedFit = errors.New("alloc: allocator rejected a region that fits any chunk")
)
