package diag

import (
	"fmt"

	"nikand.dev/go/heap"
)

type (
	Severity int

	Diagnostic struct {
		File     string
		Line     int
		Col      int // 0 if unknown
		Severity Severity
		Msg      string
	}

	// Queue hands diagnostics out in source order
	// regardless of the order they were added in.
	Queue struct {
		heap.Heap[Diagnostic]
	}
)

const (
	Error Severity = iota
	Warning
)

func NewQueue() *Queue {
	return &Queue{
		Heap: heap.Heap[Diagnostic]{Less: less},
	}
}

func (q *Queue) Add(d Diagnostic) {
	q.Heap.Push(d)
}

// Drain removes and returns all queued diagnostics ordered by position.
func (q *Queue) Drain() (r []Diagnostic) {
	for q.Len() != 0 {
		r = append(r, q.Pop())
	}

	return r
}

func less(d []Diagnostic, i, j int) bool {
	a, b := d[i], d[j]

	if a.File != b.File {
		return a.File < b.File
	}

	if a.Line != b.Line {
		return a.Line < b.Line
	}

	if a.Col != b.Col {
		return a.Col < b.Col
	}

	return a.Severity < b.Severity
}

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}

	return fmt.Sprintf("Severity(%d)", int(s))
}

func (d Diagnostic) String() string {
	file := d.File
	if file == "" {
		file = "<input>"
	}

	if d.Col == 0 {
		return fmt.Sprintf("%s:%d: %v: %s", file, d.Line, d.Severity, d.Msg)
	}

	return fmt.Sprintf("%s:%d:%d: %v: %s", file, d.Line, d.Col, d.Severity, d.Msg)
}
