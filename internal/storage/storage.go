// Package storage reads task batches from CSV and writes result reports back
// to CSV.
package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/kelsos/task-orchestrator/internal/models"
)

var (
	// ErrInput marks failures to read or parse the task source.
	ErrInput = errors.New("input error")
	// ErrOutput marks failures to serialize or write the report.
	ErrOutput = errors.New("output error")
)

var taskColumns = []string{"task_id", "task_type"}

// ReadTasks loads every row of a task CSV file. Any unreadable or malformed
// row fails the whole read.
func ReadTasks(path string) ([]models.TaskInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open task file: %w", ErrInput, err)
	}
	defer file.Close()

	return DecodeTasks(file)
}

// DecodeTasks parses tasks from CSV with a task_id,task_type header. Every
// row must have as many fields as the header.
func DecodeTasks(r io.Reader) ([]models.TaskInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read tasks: %w", ErrInput, err)
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if errors.Is(err, io.EOF) {
		return []models.TaskInput{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrInput, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = 0

	tasks := []models.TaskInput{}
	if err := gocsv.UnmarshalCSV(reader, &tasks); err != nil {
		return nil, fmt.Errorf("%w: failed to parse tasks: %w", ErrInput, err)
	}
	return tasks, nil
}

// checkHeader requires every task column; a header without them is
// malformed, not empty.
func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, column := range taskColumns {
		if !present[column] {
			return fmt.Errorf("%w: missing column %q in header %v", ErrInput, column, header)
		}
	}
	return nil
}

// WriteResults serializes report rows as CSV with a
// task_id,final_status,error_info header. The header is written even when
// there are no rows.
func WriteResults(w io.Writer, outputs []models.TaskOutput) error {
	if outputs == nil {
		outputs = []models.TaskOutput{}
	}
	if err := gocsv.Marshal(&outputs, w); err != nil {
		return fmt.Errorf("%w: failed to write results: %w", ErrOutput, err)
	}
	return nil
}

// WriteResultsFile writes the report to path, replacing any existing file.
func WriteResultsFile(path string, outputs []models.TaskOutput) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create report file: %w", ErrOutput, err)
	}

	if err := WriteResults(file, outputs); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: failed to close report file: %w", ErrOutput, err)
	}
	return nil
}
