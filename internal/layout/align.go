package layout

// Align8 returns n aligned up to the next 8-byte boundary.
// Used for payload sizes, which must always be 8-byte aligned.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// Aligned reports whether n falls on an 8-byte boundary.
func Aligned(n int) bool {
	return n&AlignmentMask == 0
}
