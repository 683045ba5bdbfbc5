package dirty

// DirtyTracker is the minimal interface for recording modified byte ranges.
//
// Components that only mutate bytes, such as the allocation driver, take
// this interface; the image owner holds the concrete Tracker and flushes it.
type DirtyTracker interface {
	// Add marks a byte range as dirty.
	// off is the offset from the start of the image, length is the number of bytes.
	Add(off, length int)
}
