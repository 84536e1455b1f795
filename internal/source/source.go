// Package source reads task lists from YAML, JSON and CSV files.
package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
)

// Format is a task file format.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	CSV  Format = "csv"
)

// ErrUnknownFormat is returned for a file extension Load cannot read.
var ErrUnknownFormat = errors.New("unknown task file format")

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".csv":
		return CSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads the tasks in path.
func Load(path string) ([]gantt.Task, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	tasks, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return tasks, nil
}

// File is a read-only task source backed by a file on disk. Every call to
// ListTasks reads the file again.
type File struct {
	Path string
}

// ListTasks loads the tasks in the file.
func (f File) ListTasks() ([]gantt.Task, error) {
	return Load(f.Path)
}

// Parse decodes tasks in the given format. Every task must carry a start
// and an end date.
func Parse(data []byte, format Format) ([]gantt.Task, error) {
	var (
		tasks []gantt.Task
		err   error
	)
	switch format {
	case YAML:
		tasks, err = parseYAML(data)
	case JSON:
		tasks, err = parseJSON(data)
	case CSV:
		tasks, err = parseCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := gantt.CheckDates(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// taskFile is the wrapped form of a task file: {tasks: [...]}.
type taskFile struct {
	Tasks []gantt.Task `yaml:"tasks" json:"tasks"`
}

// parseYAML accepts either a bare list of tasks or a mapping with a tasks key.
func parseYAML(data []byte) ([]gantt.Task, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var tasks []gantt.Task
		if err := root.Decode(&tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	case yaml.MappingNode:
		var f taskFile
		if err := root.Decode(&f); err != nil {
			return nil, err
		}
		return f.Tasks, nil
	}
	return nil, fmt.Errorf("expected a list of tasks or a mapping with a tasks key")
}

func parseJSON(data []byte) ([]gantt.Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var tasks []gantt.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	}
	var f taskFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Tasks, nil
}

// columnAliases maps accepted header names to task fields.
var columnAliases = map[string]string{
	"id":         "id",
	"name":       "name",
	"title":      "name",
	"start":      "start",
	"start_date": "start",
	"startdate":  "start",
	"end":        "end",
	"end_date":   "end",
	"enddate":    "end",
	"progress":   "progress",
	"category":   "category",
	"icon":       "icon",
}

var required = []string{"name", "start", "end"}

// dateFormats are tried in order for CSV date cells.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func parseCSV(r io.Reader) ([]gantt.Task, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	// Case-insensitive column mapping
	columns := make(map[string]int)
	for i, col := range header {
		if field, ok := columnAliases[strings.ToLower(strings.TrimSpace(col))]; ok {
			columns[field] = i
		}
	}
	for _, field := range required {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("column %q not found in CSV. Available columns: %v", field, header)
		}
	}

	var tasks []gantt.Task
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		task, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func parseRow(record []string, columns map[string]int) (gantt.Task, error) {
	cell := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	start, err := parseDate(cell("start"))
	if err != nil {
		return gantt.Task{}, err
	}
	end, err := parseDate(cell("end"))
	if err != nil {
		return gantt.Task{}, err
	}

	var progress int
	if s := strings.TrimSuffix(cell("progress"), "%"); s != "" {
		progress, err = strconv.Atoi(s)
		if err != nil {
			return gantt.Task{}, fmt.Errorf("invalid progress %q", s)
		}
	}

	return gantt.Task{
		ID:       cell("id"),
		Name:     cell("name"),
		Start:    start,
		End:      end,
		Progress: progress,
		Category: cell("category"),
		Icon:     cell("icon"),
	}, nil
}

func parseDate(s string) (date.Date, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return date.Of(t), nil
		}
	}
	return date.Date{}, fmt.Errorf("unable to parse date %q", s)
}
