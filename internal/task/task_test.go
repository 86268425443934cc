package task

import (
	"testing"
	"time"

	"github.com/Iron-Ham/taskmgr/internal/errors"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC()
	tk := New("  Buy milk  ", "2025-01-01", PriorityLow)

	if tk.ID == "" {
		t.Error("New() should generate an id")
	}
	if tk.Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", tk.Title, "Buy milk")
	}
	if tk.Completed {
		t.Error("new task should not be completed")
	}
	if tk.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want >= %v", tk.CreatedAt, before)
	}
	if tk.Priority != PriorityLow {
		t.Errorf("Priority = %q, want low", tk.Priority)
	}
}

func TestNew_DefaultPriority(t *testing.T) {
	tk := New("x", "2025-01-01", "")
	if tk.Priority != DefaultPriority {
		t.Errorf("Priority = %q, want %q", tk.Priority, DefaultPriority)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d ids", id, i)
		}
		seen[id] = true
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{" HIGH ", PriorityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("error should match ErrInvalidInput, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPriority_LabelAndRank(t *testing.T) {
	if got := PriorityHigh.Label(); got != "High" {
		t.Errorf("Label() = %q, want High", got)
	}
	if Priority("").Label() != "" {
		t.Error("empty priority should have empty label")
	}
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Error("ranks should order high > medium > low")
	}
	if Priority("bogus").Rank() != 0 {
		t.Error("unknown priority should rank 0")
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"valid", Task{ID: "a", Title: "t", Priority: PriorityLow}, false},
		{"empty id", Task{Title: "t", Priority: PriorityLow}, true},
		{"blank title", Task{ID: "a", Title: "   ", Priority: PriorityLow}, true},
		{"unknown priority", Task{ID: "a", Title: "t", Priority: "urgent"}, true},
		{"missing priority", Task{ID: "a", Title: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		due     string
		field   string
		wantErr bool
	}{
		{"valid", "Buy milk", "2025-01-01", "", false},
		{"empty title", "", "2025-01-01", "title", true},
		{"whitespace title", "   ", "2025-01-01", "title", true},
		{"missing date", "Buy milk", "", "dueDate", true},
		{"bad date", "Buy milk", "01/01/2025", "dueDate", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.title, tt.due)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"yesterday", Task{DueDate: "2025-03-09"}, true},
		{"today", Task{DueDate: "2025-03-10"}, false},
		{"tomorrow", Task{DueDate: "2025-03-11"}, false},
		{"completed past", Task{DueDate: "2025-03-01", Completed: true}, false},
		{"unparseable", Task{DueDate: "soon"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountOf(t *testing.T) {
	tasks := []Task{
		{ID: "1"},
		{ID: "2", Completed: true},
		{ID: "3"},
	}
	got := CountOf(tasks)
	want := Counts{Total: 3, Pending: 2, Completed: 1}
	if got != want {
		t.Errorf("CountOf() = %+v, want %+v", got, want)
	}

	if empty := CountOf(nil); empty != (Counts{}) {
		t.Errorf("CountOf(nil) = %+v, want zero", empty)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-01-01", ""); got != "Jan 1, 2025" {
		t.Errorf("FormatDate() = %q, want %q", got, "Jan 1, 2025")
	}
	if got := FormatDate("2025-01-01", "02/01/2006"); got != "01/01/2025" {
		t.Errorf("FormatDate() custom layout = %q", got)
	}
	if got := FormatDate("not a date", ""); got != "not a date" {
		t.Errorf("FormatDate() should return unparseable input unchanged, got %q", got)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 7, 4, 23, 59, 0, 0, time.UTC)
	if got := Today(now); got != "2025-07-04" {
		t.Errorf("Today() = %q, want 2025-07-04", got)
	}
}
