package format

// Align4 returns n aligned up to the next 4-byte boundary.
//
// Example:
//
//	Align4(0) = 0
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + ChunkAlignmentMask) &^ ChunkAlignmentMask
}

// Padding4 returns the number of bytes needed to move n to a 4-byte boundary.
func Padding4(n int) int {
	return Align4(n) - n
}
