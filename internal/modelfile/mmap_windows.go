//go:build windows

package modelfile

import (
	"os"
	"syscall"
	"unsafe"
)

// mmapFile maps size bytes of f read-only.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	handle, err := syscall.CreateFileMapping(
		syscall.Handle(f.Fd()),
		nil,
		syscall.PAGE_READONLY,
		uint32(size>>32), //nolint:gosec // G115: high half of the size
		uint32(size),     //nolint:gosec // G115: low half of the size
		nil,
	)
	if err != nil {
		return nil, err
	}
	defer syscall.CloseHandle(handle) //nolint:errcheck // the view keeps the mapping alive

	addr, err := syscall.MapViewOfFile(handle, syscall.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G103: addr is a live view of exactly size bytes
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)), nil
}

func munmapFile(data []byte) error {
	//nolint:gosec // G103: data starts at the address returned by MapViewOfFile
	return syscall.UnmapViewOfFile(uintptr(unsafe.Pointer(unsafe.SliceData(data))))
}
