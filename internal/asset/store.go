package asset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

var locks sync.Map

// link puts a finished file in place and fails if the target exists.
var link = os.Link

func lock(path string) func() {
	v, _ := locks.LoadOrStore(path, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// WriteIfAbsent creates path from the output of encode unless a file is
// already there, in which case encode is never called. The file appears
// complete or not at all, and concurrent writers of one path produce a
// single file.
func WriteIfAbsent(path string, encode func(io.Writer) error) (bool, error) {
	path = filepath.Clean(path)
	defer lock(path)()

	if _, err := os.Stat(path); nil == err {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("unable to probe %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if nil != err {
		return false, fmt.Errorf("unable to create %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	if err := encode(w); nil != err {
		tmp.Close()
		return false, fmt.Errorf("unable to encode %s: %w", path, err)
	}
	if err := w.Flush(); nil != err {
		tmp.Close()
		return false, fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); nil != err {
		tmp.Close()
		return false, fmt.Errorf("unable to chmod %s: %w", path, err)
	}
	if err := tmp.Close(); nil != err {
		return false, fmt.Errorf("unable to write %s: %w", path, err)
	}

	// Link fails if another process created path in the meantime.
	if err := link(tmpPath, path); nil != err {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("unable to move %s into place: %w", path, err)
	}
	return true, nil
}
