package arena

// ChunkInfo is a read-only snapshot of one chunk, produced by Chunks and
// Walk for dump tooling and tests.
type ChunkInfo struct {
	Offset        int  `json:"offset"`        // header offset from arena start
	PayloadSize   int  `json:"payloadSize"`   // client-usable bytes
	TotalSize     int  `json:"totalSize"`     // header + payload
	Allocated     bool `json:"allocated"`     // true when marked in use
	PayloadOffset int  `json:"payloadOffset"` // first payload byte
}

// Stats are cumulative operation counters for one Arena instance.
type Stats struct {
	Allocs            uint64 `json:"allocs"`            // successful allocations
	Frees             uint64 `json:"frees"`             // successful frees
	FailedAllocs      uint64 `json:"failedAllocs"`      // zero-size and no-space failures
	Splits            uint64 `json:"splits"`            // free chunks split during allocation
	ForwardCoalesces  uint64 `json:"forwardCoalesces"`  // merges with the following chunk
	BackwardCoalesces uint64 `json:"backwardCoalesces"` // merges into the preceding chunk
	BytesInUse        int    `json:"bytesInUse"`        // payload bytes currently allocated
	PeakInUse         int    `json:"peakInUse"`         // high-water mark of BytesInUse
}

// LeakReport summarizes chunks still allocated at scan time. Bytes counts
// payload only; reclaimed header overhead is not the client's leak.
type LeakReport struct {
	Objects int `json:"objects"`
	Bytes   int `json:"bytes"`
}
