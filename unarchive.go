// unarchive.go
package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a supported archive next to itself and removes the
// original. For files that are not archives it returns "" and the caller
// keeps using the original path.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackCompressed(filePath, ".gz", func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackCompressed(filePath, ".lz4", func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return "", nil
}

// unpackZipArchive extracts the largest member, on the assumption that a
// data upload archive contains one real payload plus noise.
func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var largest *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		return "", nil
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largest.Name))
	rc, err := largest.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	if err := writeExtracted(destPath, rc); err != nil {
		return "", err
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackCompressed(filePath, ext string, wrap func(io.Reader) (io.Reader, error)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	decompressed, err := wrap(file)
	if err != nil {
		return "", err
	}
	destPath := strings.TrimSuffix(filePath, ext)
	if err := writeExtracted(destPath, decompressed); err != nil {
		return "", err
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func writeExtracted(destPath string, src io.Reader) error {
	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	_, err = io.Copy(outFile, src)
	return err
}
