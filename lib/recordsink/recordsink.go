package recordsink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Sink appends rows to a csv file, it is safe for concurrent use. The header
// is only written when the file is empty so a resumed run keeps appending to
// the same file.
type Sink struct {
	mutex  sync.Mutex
	file   *os.File
	writer *csv.Writer
	rows   int
}

func Open(path string, header []string) (*Sink, error) {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	sink := &Sink{file: file, writer: csv.NewWriter(file)}
	if info.Size() == 0 {
		err = sink.writeRows([][]string{header})
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return sink, nil
}

// New writes to an arbitrary writer, the header is always written.
func New(w io.Writer, header []string) (*Sink, error) {
	sink := &Sink{writer: csv.NewWriter(w)}
	err := sink.writeRows([][]string{header})
	if err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *Sink) writeRows(rows [][]string) error {
	err := s.writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteRows appends rows and flushes them, rows of one call are never
// interleaved with rows of another.
func (s *Sink) WriteRows(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	err := s.writeRows(rows)
	if err != nil {
		return err
	}
	s.rows += len(rows)
	return nil
}

// Rows is the number of rows written through this sink, excluding the header.
func (s *Sink) Rows() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.rows
}

func (s *Sink) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.writer.Flush()
	err := s.writer.Error()
	if s.file == nil {
		return err
	}
	closeErr := s.file.Close()
	if err != nil {
		return err
	}
	return closeErr
}
