// Package delivery ships the validated output to the partner drop: a
// brotli-compressed tar of the validated store, pushed over SFTP.
package delivery

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
)

// BuildBundle tars srcDir into destDir/name with brotli compression and
// returns the bundle path. Paths inside the archive are relative to srcDir.
func BuildBundle(srcDir, destDir, name string) (string, error) {
	out := filepath.Join(destDir, name)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("bundle: create %s: %w", out, err)
	}
	defer f.Close()

	if err := WriteBundle(f, srcDir); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

// WriteBundle streams srcDir as a brotli-compressed tar into w.
func WriteBundle(w io.Writer, srcDir string) error {
	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	tw := tar.NewWriter(bw)

	err := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		return fmt.Errorf("bundle: walk %s: %w", srcDir, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("bundle: close tar: %w", err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("bundle: close brotli: %w", err)
	}
	return nil
}
