// Package mmap provides read-only memory-mapped file access.
//
// The local blob store maps snapshot files instead of copying them through
// read(2), so large bitsets are decoded straight from the page cache.
//
// # Usage
//
//	m, err := mmap.Open("bitset.snap")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	buf := make([]byte, m.Size())
//	_, err = m.ReadAt(buf, 0)
//
// # Platform Support
//
//   - Unix: mmap(2) with madvise(2) hints (golang.org/x/sys/unix)
//   - Windows: CreateFileMapping/MapViewOfFile (golang.org/x/sys/windows), no hints
//   - Others: the file is read into memory
//
// Close is idempotent. ReadAt and Advise return ErrClosed afterwards.
package mmap
