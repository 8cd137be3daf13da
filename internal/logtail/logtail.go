// Package logtail returns the last lines of roster's log file.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadFile returns at most n trailing lines of the file at path. A missing
// file yields no lines; n <= 0 returns every line.
func ReadFile(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	lines, err := Tail(file, n)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Tail keeps the last n lines read from r in a ring.
func Tail(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if n <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		return all, scanner.Err()
	}

	ring := make([]string, 0, n)
	next := 0
	for scanner.Scan() {
		if len(ring) < n {
			ring = append(ring, scanner.Text())
			continue
		}
		ring[next] = scanner.Text()
		next = (next + 1) % n
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return append(ring[next:], ring[:next]...), nil
}
