//go:build unix

package modelfile

import (
	"os"
	"syscall"
)

// mmapFile maps size bytes of f read-only.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	return syscall.Mmap(
		int(f.Fd()), //nolint:gosec // G115: file descriptor fits in int
		0,
		int(size), //nolint:gosec // G115: size checked against the read limit
		syscall.PROT_READ,
		syscall.MAP_SHARED,
	)
}

func munmapFile(data []byte) error {
	return syscall.Munmap(data)
}
