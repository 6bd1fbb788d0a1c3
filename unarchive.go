package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackUpload turns an uploaded file into plain CSV bytes. Search
// Console bulk exports download as a zip holding Queries.csv or
// Pages.csv, and large exports get re-compressed by hand, so zip,
// gzip and lz4 are accepted next to plain CSV. Unknown extensions
// pass through untouched.
func unpackUpload(filename string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return unpackZip(data)
	case ".gz":
		return unpackGzip(data)
	case ".lz4":
		return unpackLZ4(data)
	}
	return data, nil
}

func unpackZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	// Prefer the largest .csv member; the GSC export zip also carries
	// metadata files we do not want.
	var best *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		isCSV := strings.EqualFold(filepath.Ext(f.Name), ".csv")
		if best == nil {
			best = f
			continue
		}
		bestCSV := strings.EqualFold(filepath.Ext(best.Name), ".csv")
		if isCSV && !bestCSV {
			best = f
			continue
		}
		if isCSV == bestCSV && f.UncompressedSize64 > best.UncompressedSize64 {
			best = f
		}
	}
	if best == nil {
		return nil, fmt.Errorf("zip archive has no files")
	}

	rc, err := best.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip member %s: %w", best.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func unpackGzip(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

func unpackLZ4(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("open lz4: %w", err)
	}
	return out, nil
}
