package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/taskmgr/internal/app"
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

var _ app.Renderer = (*Text)(nil)

var today = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newText(opts ...Option) (*Text, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	opts = append([]Option{WithClock(func() time.Time { return today })}, opts...)
	return NewText(&out, &errOut, opts...), &out, &errOut
}

func TestRenderTasks(t *testing.T) {
	r, out, _ := newText(WithTitleWidth(12))

	tasks := []task.Task{
		{ID: "aaaaaaaa-1", Title: "Buy milk", DueDate: "2025-06-20", Priority: task.PriorityLow},
		{ID: "bbbbbbbb-2", Title: "A rather long title here", DueDate: "2025-06-01", Priority: task.PriorityHigh, Completed: true},
	}
	r.RenderTasks(tasks, task.FilterAll)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "PRIORITY") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "aaaaaaaa [ ] Buy milk") || !strings.Contains(lines[1], "Jun 20, 2025") || !strings.HasSuffix(lines[1], "Low") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "[x]") || !strings.Contains(lines[2], "A rather lo…") {
		t.Errorf("completed row should be checked and truncated: %q", lines[2])
	}
}

func TestRenderTasks_Empty(t *testing.T) {
	tests := []struct {
		filter task.Filter
		want   string
	}{
		{task.FilterAll, "No tasks yet."},
		{task.FilterPending, "No pending tasks."},
		{task.FilterCompleted, "No completed tasks."},
	}
	for _, tt := range tests {
		r, out, _ := newText()
		r.RenderTasks(nil, tt.filter)
		if got := strings.TrimSpace(out.String()); got != tt.want {
			t.Errorf("filter %s: got %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestUpdateStats(t *testing.T) {
	r, out, _ := newText()
	r.UpdateStats(task.Counts{Total: 3, Pending: 2, Completed: 1})
	if got := strings.TrimSpace(out.String()); got != "3 total · 2 pending · 1 completed" {
		t.Errorf("UpdateStats wrote %q", got)
	}
}

func TestShowError_GoesToErrorWriter(t *testing.T) {
	r, out, errOut := newText()
	r.ShowError("Failed to delete task.")
	if out.Len() != 0 {
		t.Errorf("error leaked to stdout: %q", out.String())
	}
	if strings.TrimSpace(errOut.String()) != "Failed to delete task." {
		t.Errorf("error output = %q", errOut.String())
	}
}

func TestQuiet(t *testing.T) {
	r, out, errOut := newText()
	r.Quiet = true
	r.RenderTasks([]task.Task{{ID: "x", Title: "x"}}, task.FilterAll)
	r.UpdateStats(task.Counts{})
	r.Success("done")
	r.ShowError("boom")
	if out.Len() != 0 {
		t.Errorf("quiet renderer wrote %q", out.String())
	}
	if errOut.Len() == 0 {
		t.Error("errors should still be written when quiet")
	}
}

func TestDateLayout(t *testing.T) {
	r, out, _ := newText(WithDateLayout("02/01/2006"))
	r.RenderTasks([]task.Task{{ID: "x", Title: "t", DueDate: "2025-06-20"}}, task.FilterAll)
	if !strings.Contains(out.String(), "20/06/2025") {
		t.Errorf("custom date layout not used:\n%s", out.String())
	}
}

func TestTaskDetail(t *testing.T) {
	r, out, _ := newText()
	r.ApplyTheme(taskstore.ThemeDark)
	r.Task(task.Task{ID: "abc", Title: "Pay rent", DueDate: "2025-07-01", Priority: task.PriorityMedium, Completed: true})

	for _, want := range []string{"ID:", "abc", "Pay rent", "Jul 1, 2025", "Medium", "completed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("detail output missing %q:\n%s", want, out.String())
		}
	}
}
