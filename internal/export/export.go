// Package export renders task lists for copying out of the board.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskboard/internal/model"
)

// Format selects the output of Render.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Render writes tasks in the given format. An empty format means text.
func Render(tasks []model.Task, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return text(tasks), nil
	case FormatYAML:
		return yamlDoc(tasks)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}

// text renders one bullet per task, the description indented below it and the
// completion note as a result line.
func text(tasks []model.Task) []byte {
	if len(tasks) == 0 {
		return []byte("No tasks.\n")
	}
	var b bytes.Buffer
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s\n", t.Title)
		if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
			for _, line := range strings.Split(strings.TrimSpace(*t.Description), "\n") {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
		if t.CompletionNote != nil && strings.TrimSpace(*t.CompletionNote) != "" {
			fmt.Fprintf(&b, "  [Result]: %s\n", strings.TrimSpace(*t.CompletionNote))
		}
	}
	return b.Bytes()
}

type yamlTask struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Priority    int      `yaml:"priority"`
	Tags        []string `yaml:"tags,omitempty"`
	Project     string   `yaml:"project,omitempty"`
	Column      string   `yaml:"column,omitempty"`
	Due         string   `yaml:"due,omitempty"`
	Completed   string   `yaml:"completed,omitempty"`
	Result      string   `yaml:"result,omitempty"`
}

func yamlDoc(tasks []model.Task) ([]byte, error) {
	doc := struct {
		Tasks []yamlTask `yaml:"tasks"`
	}{Tasks: make([]yamlTask, 0, len(tasks))}

	for _, t := range tasks {
		yt := yamlTask{
			Title:       t.Title,
			Description: deref(t.Description),
			Priority:    t.Priority,
			Tags:        t.Tags,
			Due:         date(t.DueDate),
			Completed:   date(t.CompletedAt),
			Result:      deref(t.CompletionNote),
		}
		if t.Project != nil {
			yt.Project = t.Project.Name
		}
		if t.BoardColumn != nil {
			yt.Column = t.BoardColumn.Name
		}
		doc.Tasks = append(doc.Tasks, yt)
	}

	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
