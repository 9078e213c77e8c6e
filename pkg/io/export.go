package io

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/paragon/pkg/stitch"
)

// layoutGap is the number of empty lines written after each layout.
const layoutGap = 2

// WriteLayouts writes each layout line by line, followed by two empty lines.
func WriteLayouts(w io.Writer, layouts []stitch.Layout) error {
	bw := bufio.NewWriter(w)
	for _, l := range layouts {
		for _, line := range l {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("write layout: %w", err)
			}
		}
		for range layoutGap {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("write layout: %w", err)
			}
		}
	}
	return bw.Flush()
}

// AppendLayouts writes layouts to the end of the file at path, creating it
// if needed. Existing content is never truncated.
func AppendLayouts(layouts []stitch.Layout, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := WriteLayouts(f, layouts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadLayouts decodes layouts written by [WriteLayouts]. Any run of empty
// lines ends a layout.
func ReadLayouts(r io.Reader) ([]stitch.Layout, error) {
	var (
		out     []stitch.Layout
		current stitch.Layout
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out, nil
}

// ImportLayouts reads layouts from a file at path.
func ImportLayouts(path string) ([]stitch.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayouts(f)
}
