package app

import (
	"testing"

	"github.com/Iron-Ham/taskmgr/internal/errors"
	"github.com/Iron-Ham/taskmgr/internal/kv"
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// fakeRenderer records every call for assertions.
type fakeRenderer struct {
	tasks      []task.Task
	filter     task.Filter
	counts     task.Counts
	errors     []string
	theme      taskstore.Theme
	renders    int
	formClears int
}

func (r *fakeRenderer) RenderTasks(tasks []task.Task, f task.Filter) {
	r.tasks, r.filter = tasks, f
	r.renders++
}
func (r *fakeRenderer) UpdateStats(c task.Counts)        { r.counts = c }
func (r *fakeRenderer) ShowError(msg string)             { r.errors = append(r.errors, msg) }
func (r *fakeRenderer) ApplyTheme(theme taskstore.Theme) { r.theme = theme }
func (r *fakeRenderer) ClearForm()                       { r.formClears++ }

func (r *fakeRenderer) lastError() string {
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

// brokenKV fails every write.
type brokenKV struct {
	kv.Store
	err error
}

func (b *brokenKV) Set(string, string) error { return b.err }

func newCoordinator(t *testing.T, opts ...Option) (*Coordinator, *fakeRenderer, *taskstore.Store) {
	t.Helper()
	store := taskstore.New(kv.NewMemoryStore())
	r := &fakeRenderer{}
	return New(store, r, opts...), r, store
}

func submit(t *testing.T, c *Coordinator, title string) task.Task {
	t.Helper()
	tk, err := c.Submit(Form{Title: title, DueDate: "2025-01-01", Priority: "low"})
	if err != nil {
		t.Fatalf("Submit(%q): %v", title, err)
	}
	return tk
}

func TestInit(t *testing.T) {
	c, r, store := newCoordinator(t)
	_ = store.SaveTheme(taskstore.ThemeDark)

	c.Init()

	if r.theme != taskstore.ThemeDark || c.Theme() != taskstore.ThemeDark {
		t.Errorf("theme = %q, want dark", r.theme)
	}
	if r.renders != 1 || r.filter != task.FilterAll {
		t.Errorf("Init should render the current filter once, renders=%d filter=%q", r.renders, r.filter)
	}
}

func TestSubmit_Add(t *testing.T) {
	c, r, _ := newCoordinator(t)

	tk := submit(t, c, "Buy milk")

	if tk.ID == "" || tk.Priority != task.PriorityLow {
		t.Errorf("unexpected task: %+v", tk)
	}
	if r.formClears != 1 {
		t.Error("successful submit should clear the form")
	}
	if len(r.tasks) != 1 || r.counts.Total != 1 || r.counts.Pending != 1 {
		t.Errorf("render after add: tasks=%d counts=%+v", len(r.tasks), r.counts)
	}
}

func TestSubmit_DefaultPriority(t *testing.T) {
	c, _, _ := newCoordinator(t, WithDefaultPriority(task.PriorityHigh))
	tk, err := c.Submit(Form{Title: "x", DueDate: "2025-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	if tk.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want high", tk.Priority)
	}
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want string
	}{
		{"empty title", Form{Title: "", DueDate: "2025-01-01"}, MsgInvalidInput},
		{"blank title", Form{Title: "   ", DueDate: "2025-01-01"}, MsgInvalidInput},
		{"missing due date", Form{Title: "x"}, MsgInvalidInput},
		{"bad due date", Form{Title: "x", DueDate: "tomorrow"}, MsgInvalidInput},
		{"bad priority", Form{Title: "x", DueDate: "2025-01-01", Priority: "urgent"}, "Invalid priority: must be one of low, medium, high."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r, store := newCoordinator(t)
			_, err := c.Submit(tt.form)
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Fatalf("Submit() error = %v, want ErrInvalidInput", err)
			}
			if r.lastError() != tt.want {
				t.Errorf("ShowError(%q), want %q", r.lastError(), tt.want)
			}
			if r.formClears != 0 || r.renders != 0 {
				t.Error("failed submit should neither clear the form nor render")
			}
			if len(store.GetAll()) != 0 {
				t.Error("nothing should be stored")
			}
		})
	}
}

func TestSubmit_Edit(t *testing.T) {
	c, r, store := newCoordinator(t)
	tk := submit(t, c, "draft")
	_ = c.Toggle(tk.ID)

	form, ok := c.Edit(tk.ID)
	if !ok {
		t.Fatal("Edit should find the task")
	}
	if form.Title != "draft" || form.Priority != "low" || !form.Editing() {
		t.Errorf("unexpected form: %+v", form)
	}

	form.Title = "final"
	form.Priority = "high"
	got, err := c.Submit(form)
	if err != nil {
		t.Fatalf("Submit(edit): %v", err)
	}
	if got.ID != tk.ID || got.Title != "final" || got.Priority != task.PriorityHigh {
		t.Errorf("edited task = %+v", got)
	}
	if !got.Completed {
		t.Error("editing should keep the completion flag")
	}
	if n := len(store.GetAll()); n != 1 {
		t.Errorf("edit should not add a task, have %d", n)
	}
	if r.formClears != 2 {
		t.Errorf("formClears = %d, want 2", r.formClears)
	}
}

func TestSubmit_EditMissing(t *testing.T) {
	c, r, _ := newCoordinator(t)
	_, err := c.Submit(Form{EditID: "gone", Title: "x", DueDate: "2025-01-01"})
	if !errors.Is(err, errors.ErrTaskNotFound) {
		t.Fatalf("Submit() error = %v, want ErrTaskNotFound", err)
	}
	if r.lastError() != MsgTaskNotFound {
		t.Errorf("ShowError(%q)", r.lastError())
	}
}

// vanishingStore loses a task right after updating it, as when another
// process deletes it in between.
type vanishingStore struct {
	*taskstore.Store
}

func (s vanishingStore) GetByID(string) (task.Task, bool) { return task.Task{}, false }

func TestSubmit_EditVanishesAfterUpdate(t *testing.T) {
	store := taskstore.New(kv.NewMemoryStore())
	existing := task.Task{Title: "draft", DueDate: "2025-01-01", Priority: task.PriorityLow}
	if err := store.Add(&existing); err != nil {
		t.Fatal(err)
	}
	r := &fakeRenderer{}
	c := New(vanishingStore{store}, r)

	got, err := c.Submit(Form{EditID: existing.ID, Title: "final", DueDate: "2025-01-02", Priority: "high"})
	if !errors.Is(err, errors.ErrTaskNotFound) {
		t.Fatalf("Submit() error = %v, want ErrTaskNotFound", err)
	}
	if got.ID != "" {
		t.Errorf("Submit() returned %+v, want the zero task", got)
	}
	if r.lastError() != MsgUpdateFailed {
		t.Errorf("ShowError(%q), want %q", r.lastError(), MsgUpdateFailed)
	}
	if r.formClears != 0 {
		t.Error("the form should stay open")
	}
}

func TestEdit_Missing(t *testing.T) {
	c, r, _ := newCoordinator(t)
	if _, ok := c.Edit("nope"); ok {
		t.Error("Edit should report missing tasks")
	}
	if r.lastError() != MsgTaskNotFound {
		t.Errorf("ShowError(%q)", r.lastError())
	}
}

func TestStoreFailures(t *testing.T) {
	mem := kv.NewMemoryStore()
	seed := taskstore.New(mem)
	existing := task.New("existing", "2025-01-01", task.PriorityLow)
	if err := seed.Add(&existing); err != nil {
		t.Fatal(err)
	}

	store := taskstore.New(&brokenKV{Store: mem, err: kv.ErrUnavailable})
	r := &fakeRenderer{}
	c := New(store, r)

	tests := []struct {
		name string
		run  func() error
		want string
	}{
		{"add", func() error {
			_, err := c.Submit(Form{Title: "x", DueDate: "2025-01-01"})
			return err
		}, MsgAddFailed},
		{"update", func() error {
			_, err := c.Submit(Form{EditID: existing.ID, Title: "x", DueDate: "2025-01-01"})
			return err
		}, MsgUpdateFailed},
		{"toggle", func() error { return c.Toggle(existing.ID) }, MsgToggleFailed},
		{"delete", func() error { return c.Delete(existing.ID) }, MsgDeleteFailed},
		{"clear", c.ClearAll, MsgClearFailed},
		{"theme", c.ToggleTheme, MsgThemeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renders := r.renders
			if err := tt.run(); !errors.Is(err, errors.ErrStorageUnavailable) {
				t.Fatalf("error = %v, want ErrStorageUnavailable", err)
			}
			if r.lastError() != tt.want {
				t.Errorf("ShowError(%q), want %q", r.lastError(), tt.want)
			}
			if r.renders != renders {
				t.Error("failed mutation should not re-render")
			}
		})
	}
}

func TestStorageFullMessage(t *testing.T) {
	store := taskstore.New(kv.NewMemoryStore(kv.WithQuota(10)))
	r := &fakeRenderer{}
	c := New(store, r)

	if _, err := c.Submit(Form{Title: "too big", DueDate: "2025-01-01"}); err == nil {
		t.Fatal("expected quota failure")
	}
	if want := MsgAddFailed + " Storage is full."; r.lastError() != want {
		t.Errorf("ShowError(%q), want %q", r.lastError(), want)
	}
}

func TestToggleAndDelete(t *testing.T) {
	c, r, _ := newCoordinator(t)
	a := submit(t, c, "a")
	b := submit(t, c, "b")

	if err := c.Toggle(a.ID); err != nil {
		t.Fatal(err)
	}
	if r.counts != (task.Counts{Total: 2, Pending: 1, Completed: 1}) {
		t.Errorf("counts after toggle = %+v", r.counts)
	}

	if err := c.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	if len(r.tasks) != 1 || r.tasks[0].ID != a.ID {
		t.Errorf("render after delete = %+v", r.tasks)
	}

	if err := c.Toggle("missing"); !errors.Is(err, errors.ErrTaskNotFound) {
		t.Errorf("Toggle(missing) error = %v", err)
	}
	if r.lastError() != MsgTaskNotFound {
		t.Errorf("ShowError(%q)", r.lastError())
	}
}

func TestSetFilter(t *testing.T) {
	c, r, _ := newCoordinator(t)
	a := submit(t, c, "a")
	submit(t, c, "b")
	_ = c.Toggle(a.ID)

	c.SetFilter(task.FilterCompleted)
	if c.Filter() != task.FilterCompleted || len(r.tasks) != 1 || r.tasks[0].ID != a.ID {
		t.Errorf("completed filter rendered %+v", r.tasks)
	}

	// Mutations keep the current filter.
	_ = c.Toggle(a.ID)
	if r.filter != task.FilterCompleted || len(r.tasks) != 0 {
		t.Errorf("after toggle: filter=%q tasks=%d", r.filter, len(r.tasks))
	}

	c.SetFilter("bogus")
	if c.Filter() != task.FilterAll {
		t.Errorf("unknown filter should become all, got %q", c.Filter())
	}
}

func TestWithFilter(t *testing.T) {
	c, r, _ := newCoordinator(t, WithFilter(task.FilterPending))
	c.Init()
	if r.filter != task.FilterPending {
		t.Errorf("initial filter = %q, want pending", r.filter)
	}
}

func TestToggleTheme(t *testing.T) {
	c, r, store := newCoordinator(t)
	c.Init()

	if err := c.ToggleTheme(); err != nil {
		t.Fatal(err)
	}
	if r.theme != taskstore.ThemeDark || store.Theme() != taskstore.ThemeDark {
		t.Errorf("theme = %q / stored %q, want dark", r.theme, store.Theme())
	}
	_ = c.ToggleTheme()
	if c.Theme() != taskstore.ThemeLight {
		t.Errorf("second toggle should return to light, got %q", c.Theme())
	}
}

func TestClearAllAndRefresh(t *testing.T) {
	c, r, store := newCoordinator(t)
	submit(t, c, "a")
	submit(t, c, "b")

	if err := c.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if len(r.tasks) != 0 || r.counts.Total != 0 {
		t.Errorf("after clear: tasks=%d counts=%+v", len(r.tasks), r.counts)
	}

	// A change made behind the coordinator's back shows up on Refresh.
	other := task.New("external", "2025-01-01", task.PriorityLow)
	_ = store.Add(&other)
	c.Refresh()
	if len(r.tasks) != 1 {
		t.Errorf("Refresh rendered %d tasks, want 1", len(r.tasks))
	}
}
