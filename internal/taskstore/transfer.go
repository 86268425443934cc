package taskstore

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/taskmgr/internal/errors"
	"github.com/Iron-Ham/taskmgr/internal/task"
)

// Format is an export/import encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.NewValidationError("must be json or yaml").WithField("format").WithValue(s)
}

// Export writes the whole collection to w.
func (s *Store) Export(w io.Writer, f Format) error {
	tasks := s.GetAll()
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// Import decodes a list of tasks from r and adds them one at a time,
// returning how many were added. Imported tasks keep their ids unless the
// id is empty or already taken, in which case a new one is generated.
// Every task is validated before the first write.
func (s *Store) Import(r io.Reader, f Format) (int, error) {
	var incoming []task.Task
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&incoming); err != nil && err != io.EOF {
			return 0, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&incoming); err != nil && err != io.EOF {
			return 0, fmt.Errorf("decode json: %w", err)
		}
	default:
		return 0, fmt.Errorf("unsupported format %q", f)
	}

	for i := range incoming {
		t := &incoming[i]
		if t.ID == "" {
			t.ID = task.NewID()
		}
		if t.Priority == "" {
			t.Priority = task.DefaultPriority
		}
		if err := t.Validate(); err != nil {
			return 0, errors.Wrapf(err, "task %d", i+1)
		}
	}

	taken := make(map[string]bool)
	for _, t := range s.GetAll() {
		taken[t.ID] = true
	}

	added := 0
	for i := range incoming {
		t := incoming[i]
		if taken[t.ID] {
			t.ID = task.NewID()
		}
		if err := s.Add(&t); err != nil {
			return added, err
		}
		taken[t.ID] = true
		added++
	}
	s.logger.WithOperation("import").Info("tasks imported", "count", added)
	return added, nil
}
