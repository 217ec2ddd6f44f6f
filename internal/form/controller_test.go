package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/reference"
)

// ---------------------------------------------------------------------------
// Test doubles
// ---------------------------------------------------------------------------

type recordingStore struct {
	mu      sync.Mutex
	records []domain.EmployeeDraft
}

func (s *recordingStore) CreateEmployee(_ context.Context, r domain.EmployeeDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *recordingStore) calls() []domain.EmployeeDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EmployeeDraft(nil), s.records...)
}

type storeFunc func(domain.EmployeeDraft)

func (f storeFunc) CreateEmployee(_ context.Context, r domain.EmployeeDraft) { f(r) }

type countingRecorder struct {
	failures  [][]domain.Field
	committed int
}

func (r *countingRecorder) ValidationFailed(f []domain.Field) { r.failures = append(r.failures, f) }
func (r *countingRecorder) Committed()                        { r.committed++ }

// fill types every field of d into c, in record order.
func fill(t *testing.T, c *form.Controller, d domain.EmployeeDraft) {
	t.Helper()
	for _, f := range domain.Fields {
		if _, err := c.SetField(f, d.Get(f)); err != nil {
			t.Fatal(err)
		}
	}
}

// ---------------------------------------------------------------------------
// Field updates
// ---------------------------------------------------------------------------

func TestNewController_StartsEmptyAndEditing(t *testing.T) {
	c := form.NewController(&recordingStore{}, reference.States())
	if !c.Draft().IsEmpty() {
		t.Fatalf("draft = %+v", c.Draft())
	}
	if c.State() != form.Editing || c.Validated() {
		t.Fatalf("state=%s validated=%v", c.State(), c.Validated())
	}
	if len(c.Annotations().Failures) != 0 {
		t.Fatal("annotations shown before any submit")
	}
}

func TestSetField_ReturnsUpdatedDraft(t *testing.T) {
	c := form.NewController(&recordingStore{}, reference.States())
	before := c.Draft()
	got, err := c.SetField(domain.FieldCity, "Springfield")
	if err != nil {
		t.Fatal(err)
	}
	if got.City != "Springfield" || c.Draft().City != "Springfield" {
		t.Fatalf("draft = %+v", c.Draft())
	}
	if before.City != "" {
		t.Fatal("earlier draft copy was mutated")
	}
	if _, err := c.SetField("salary", "1"); !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("err = %v", err)
	}
}

func TestSetDate_StoresCanonical(t *testing.T) {
	c := form.NewController(&recordingStore{}, reference.States())
	d := dates.Date{Year: 2020, Month: time.March, Day: 4}
	if _, err := c.SetDate(domain.FieldStartDate, d); err != nil {
		t.Fatal(err)
	}
	if got := c.Draft().StartDate; got != "03-04-2020" {
		t.Fatalf("StartDate = %q", got)
	}
	if _, err := c.SetDate(domain.FieldCity, d); !errors.Is(err, form.ErrNotDateField) {
		t.Fatalf("err = %v, want ErrNotDateField", err)
	}
	if c.Draft().City != "" {
		t.Fatal("city changed by a rejected SetDate")
	}
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSubmit_ValidDraftCommitsOnceAndResets(t *testing.T) {
	store := &recordingStore{}
	sig := &form.ConfirmationSignal{}
	rec := &countingRecorder{}
	c := form.NewController(store, reference.States(), form.WithNotifier(sig), form.WithRecorder(rec))
	fill(t, c, validDraft())

	out := c.Submit(context.Background())

	if !out.Committed || !out.Result.Valid() {
		t.Fatalf("outcome = %+v", out)
	}
	if diff := cmp.Diff([]domain.EmployeeDraft{validDraft()}, store.calls()); diff != "" {
		t.Fatalf("store calls (-want +got):\n%s", diff)
	}
	if !c.Draft().IsEmpty() {
		t.Fatalf("draft not reset: %+v", c.Draft())
	}
	if c.Validated() || c.State() != form.Editing {
		t.Fatalf("validated=%v state=%s", c.Validated(), c.State())
	}
	if !sig.Take() {
		t.Fatal("confirmation not signaled")
	}
	if sig.Take() {
		t.Fatal("confirmation signaled twice")
	}
	if rec.committed != 1 || len(rec.failures) != 0 {
		t.Fatalf("recorder = %+v", rec)
	}
}

func TestSubmit_MissingDepartmentKeepsDraft(t *testing.T) {
	store := &recordingStore{}
	sig := &form.ConfirmationSignal{}
	rec := &countingRecorder{}
	c := form.NewController(store, reference.States(), form.WithNotifier(sig), form.WithRecorder(rec))
	want := validDraft()
	want.Department = ""
	fill(t, c, want)

	out := c.Submit(context.Background())

	if out.Committed {
		t.Fatal("invalid draft committed")
	}
	if diff := cmp.Diff([]domain.Field{domain.FieldDepartment}, out.Result.Failures.Sorted()); diff != "" {
		t.Fatalf("failures (-want +got):\n%s", diff)
	}
	if n := len(store.calls()); n != 0 {
		t.Fatalf("store called %d times", n)
	}
	if diff := cmp.Diff(want, c.Draft()); diff != "" {
		t.Fatalf("draft changed (-want +got):\n%s", diff)
	}
	if !c.Validated() || c.State() != form.Editing {
		t.Fatalf("validated=%v state=%s", c.Validated(), c.State())
	}
	if sig.Take() {
		t.Fatal("confirmation signaled on failure")
	}
	if diff := cmp.Diff([][]domain.Field{{domain.FieldDepartment}}, rec.failures); diff != "" {
		t.Fatalf("recorded failures (-want +got):\n%s", diff)
	}
}

func TestSubmit_BadZipOnlyFailsZip(t *testing.T) {
	store := &recordingStore{}
	c := form.NewController(store, reference.States())
	d := validDraft()
	d.ZipCode = "1a234"
	fill(t, c, d)

	out := c.Submit(context.Background())

	if diff := cmp.Diff([]domain.Field{domain.FieldZipCode}, out.Result.Failures.Sorted()); diff != "" {
		t.Fatalf("failures (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d, c.Draft()); diff != "" {
		t.Fatalf("draft changed (-want +got):\n%s", diff)
	}
}

func TestSubmit_CorrectionAfterFailure(t *testing.T) {
	store := &recordingStore{}
	c := form.NewController(store, reference.States())
	d := validDraft()
	d.ZipCode = "1a234"
	fill(t, c, d)
	c.Submit(context.Background())

	if !c.Annotations().Failed(domain.FieldZipCode) {
		t.Fatal("zip not annotated after failed submit")
	}
	if _, err := c.SetField(domain.FieldZipCode, "62701"); err != nil {
		t.Fatal(err)
	}
	if len(c.Annotations().Failures) != 0 {
		t.Fatalf("annotations stale after correction: %v", c.Annotations().Failures.Sorted())
	}
	if out := c.Submit(context.Background()); !out.Committed {
		t.Fatalf("corrected draft rejected: %v", out.Result.Err())
	}
	if diff := cmp.Diff([]domain.EmployeeDraft{validDraft()}, store.calls()); diff != "" {
		t.Fatalf("store calls (-want +got):\n%s", diff)
	}
	if c.Validated() {
		t.Fatal("validated flag survived a commit")
	}
}

func TestSubmit_StateSequence(t *testing.T) {
	var (
		seen        []form.State
		storeSaw    form.State
		notifierSaw form.State
	)
	current := func() form.State { return seen[len(seen)-1] }
	store := storeFunc(func(domain.EmployeeDraft) { storeSaw = current() })
	notifier := form.NotifierFunc(func(context.Context, form.Confirmation) { notifierSaw = current() })
	c := form.NewController(store, reference.States(),
		form.WithNotifier(notifier),
		form.WithTransitions(func(s form.State) { seen = append(seen, s) }),
	)

	c.Submit(context.Background())
	if diff := cmp.Diff([]form.State{form.Validating, form.Editing}, seen); diff != "" {
		t.Fatalf("rejected submit states (-want +got):\n%s", diff)
	}

	seen = nil
	fill(t, c, validDraft())
	c.Submit(context.Background())
	want := []form.State{form.Validating, form.Committing, form.Confirmed, form.Editing}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("committed submit states (-want +got):\n%s", diff)
	}
	if storeSaw != form.Committing || notifierSaw != form.Confirmed {
		t.Fatalf("store ran in %s, notifier in %s", storeSaw, notifierSaw)
	}
}

func TestSubmit_TwiceProducesTwoIndependentRecords(t *testing.T) {
	store := &recordingStore{}
	c := form.NewController(store, reference.States())

	first := validDraft()
	fill(t, c, first)
	if !c.Submit(context.Background()).Committed {
		t.Fatal("first submit rejected")
	}

	second := validDraft()
	second.FirstName = "John"
	second.Department = "Legal"
	second.ZipCode = "10001"
	second.State = "NY"
	fill(t, c, second)
	if !c.Submit(context.Background()).Committed {
		t.Fatal("second submit rejected")
	}

	if diff := cmp.Diff([]domain.EmployeeDraft{first, second}, store.calls()); diff != "" {
		t.Fatalf("store calls (-want +got):\n%s", diff)
	}
}

func TestSubmit_EmptyAfterCommitIsRejected(t *testing.T) {
	store := &recordingStore{}
	c := form.NewController(store, reference.States())
	fill(t, c, validDraft())
	c.Submit(context.Background())

	out := c.Submit(context.Background())
	if out.Committed {
		t.Fatal("empty draft committed")
	}
	if n := len(store.calls()); n != 1 {
		t.Fatalf("store called %d times, want 1", n)
	}
}

func TestSubmit_ConcurrentCallsCommitOnce(t *testing.T) {
	store := &recordingStore{}
	c := form.NewController(store, reference.States())
	fill(t, c, validDraft())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Submit(context.Background())
		}()
	}
	wg.Wait()

	if diff := cmp.Diff([]domain.EmployeeDraft{validDraft()}, store.calls()); diff != "" {
		t.Fatalf("store calls (-want +got):\n%s", diff)
	}
}

func TestSnapshotRestore(t *testing.T) {
	c := form.NewController(&recordingStore{}, reference.States())
	d := validDraft()
	d.City = ""
	fill(t, c, d)
	c.Submit(context.Background())
	snap := c.Snapshot()

	restored := form.NewController(&recordingStore{}, reference.States())
	restored.Restore(snap)
	if diff := cmp.Diff(snap, restored.Snapshot()); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
	if !restored.Annotations().Failed(domain.FieldCity) {
		t.Fatal("restored controller lost its annotations")
	}
}

func TestNotifiers_FanOut(t *testing.T) {
	var got []string
	a := form.NotifierFunc(func(_ context.Context, c form.Confirmation) { got = append(got, "a:"+c.Title) })
	b := form.NotifierFunc(func(_ context.Context, c form.Confirmation) { got = append(got, "b:"+c.Message) })
	form.Notifiers(a, nil, b).Notify(context.Background(), form.EmployeeCreated)

	want := []string{"a:Employee creation", "b:Employee created with success!"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
}
