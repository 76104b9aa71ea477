package pipeline

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temp file beside dest and renames it into
// place, so dest is either absent, the previous content, or complete.
func writeFileAtomic(dest string, data []byte, perm os.FileMode) error {
	return replaceFile(dest, bytes.NewReader(data), perm)
}

// copyFileAtomic copies src to dest byte for byte through a temp file,
// keeping the source permission bits.
func copyFileAtomic(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if err := replaceFile(dest, in, st.Mode().Perm()); err != nil {
		return 0, err
	}
	return st.Size(), nil
}

func replaceFile(dest string, r io.Reader, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return err
	}
	committed = true
	return nil
}
