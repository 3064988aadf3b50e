//go:build !unix && !windows

package modelfile

import (
	"os"

	"github.com/pkg/errors"
)

var errNoMmap = errors.New("memory mapping is not available on this platform")

func mmapFile(*os.File, int64) ([]byte, error) {
	return nil, errNoMmap
}

func munmapFile([]byte) error {
	return nil
}
