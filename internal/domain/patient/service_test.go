package patient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/auth"
)

// -- Mock Repository --

type mockRecordRepo struct {
	records map[uuid.UUID]*Record
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[uuid.UUID]*Record)}
}

func (m *mockRecordRepo) Create(_ context.Context, r *Record) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.records[r.ID] = r
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

func (m *mockRecordRepo) Search(_ context.Context, f Filter, limit, offset int) ([]*Record, int, error) {
	var result []*Record
	for _, r := range m.records {
		if f.ID != uuid.Nil && r.ID != f.ID {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.CreatedBy != uuid.Nil && r.CreatedBy != f.CreatedBy {
			continue
		}
		result = append(result, r)
	}
	return result, len(result), nil
}

func (m *mockRecordRepo) Update(_ context.Context, id uuid.UUID, upd Update) error {
	r, ok := m.records[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.Age != nil {
		r.Age = *upd.Age
	}
	if upd.Condition != nil {
		r.Condition = *upd.Condition
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMockRecordRepo())
}

func adminIdent() auth.Identity {
	return auth.Identity{ID: uuid.New(), Username: "root", Role: auth.RoleAdmin}
}

func doctorIdent(name string) auth.Identity {
	return auth.Identity{ID: uuid.New(), Username: name, Role: auth.RoleDoctor}
}

// -- Tests --

func TestCreate(t *testing.T) {
	svc := newTestService()
	dr := doctorIdent("drA")

	rec, err := svc.Create(context.Background(), dr, CreateParams{Name: "Alice", Age: 30, Condition: "flu"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.CreatedBy != dr.ID {
		t.Errorf("created_by %v, want creator %v", rec.CreatedBy, dr.ID)
	}
}

func TestCreate_NameAndAgeRequired(t *testing.T) {
	svc := newTestService()
	dr := doctorIdent("drA")

	cases := []CreateParams{
		{Age: 30},
		{Name: "Alice"},
		{Name: "Alice", Age: 0},
	}
	for _, p := range cases {
		if _, err := svc.Create(context.Background(), dr, p); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("params %+v: expected ErrValidation, got %v", p, err)
		}
	}
}

func TestCreate_ReservedExtensionKeysDropped(t *testing.T) {
	svc := newTestService()
	dr := doctorIdent("drA")

	rec, err := svc.Create(context.Background(), dr, CreateParams{
		Name: "Alice", Age: 30,
		Extensions: map[string]interface{}{
			"created_by": "attacker",
			"address":    "12 Elm St",
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.CreatedBy != dr.ID {
		t.Errorf("created_by must stay server-assigned, got %v", rec.CreatedBy)
	}
	if _, ok := rec.Extensions["created_by"]; ok {
		t.Error("reserved key should have been stripped from extensions")
	}
	if rec.Extensions["address"] != "12 Elm St" {
		t.Error("plain extension key should be kept")
	}
}

func TestList_DoctorSeesOnlyOwnRecords(t *testing.T) {
	svc := newTestService()
	drA := doctorIdent("drA")
	drB := doctorIdent("drB")

	if _, err := svc.Create(context.Background(), drA, CreateParams{Name: "Alice", Age: 30}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// drA sees the record it created.
	items, total, err := svc.List(context.Background(), drA, Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("list as drA: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "Alice" {
		t.Errorf("drA should see Alice, got %d items", len(items))
	}

	// drB sees nothing, even with a name filter aimed at Alice.
	items, total, err = svc.List(context.Background(), drB, Filter{Name: "alice"}, 20, 0)
	if err != nil {
		t.Fatalf("list as drB: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("drB should see no foreign records, got %d", len(items))
	}
}

func TestList_PatientForcedToOwnRecord(t *testing.T) {
	svc := newTestService()
	admin := adminIdent()

	rec, err := svc.Create(context.Background(), admin, CreateParams{Name: "Alice", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	self := auth.Identity{ID: rec.ID, Username: "alice", Role: auth.RolePatient}

	// Empty filter is pinned to the patient's own id, never "all records".
	items, _, err := svc.List(context.Background(), self, Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("list as patient: %v", err)
	}
	if len(items) != 1 || items[0].ID != rec.ID {
		t.Errorf("patient should see exactly their own record, got %d items", len(items))
	}
}

func TestList_PatientForeignIDForbidden(t *testing.T) {
	svc := newTestService()
	pat := auth.Identity{ID: uuid.New(), Username: "alice", Role: auth.RolePatient}

	_, _, err := svc.List(context.Background(), pat, Filter{ID: uuid.New()}, 20, 0)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign id, got %v", err)
	}
}

func TestList_PatientNameFilterForbidden(t *testing.T) {
	svc := newTestService()
	pat := auth.Identity{ID: uuid.New(), Username: "alice", Role: auth.RolePatient}

	_, _, err := svc.List(context.Background(), pat, Filter{Name: "bob"}, 20, 0)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected ErrForbidden for name search, got %v", err)
	}
}

func TestGet_DoctorForeignRecordReadsAsAbsent(t *testing.T) {
	svc := newTestService()
	drA := doctorIdent("drA")
	drB := doctorIdent("drB")

	rec, err := svc.Create(context.Background(), drA, CreateParams{Name: "Alice", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), drA, rec.ID); err != nil {
		t.Errorf("creator should read own record: %v", err)
	}
	if _, err := svc.Get(context.Background(), drB, rec.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign record should read as not found, got %v", err)
	}
}

func TestUpdate_DoctorOwnRecord(t *testing.T) {
	svc := newTestService()
	drA := doctorIdent("drA")

	rec, err := svc.Create(context.Background(), drA, CreateParams{Name: "Alice", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cond := "recovered"
	updated, err := svc.Update(context.Background(), drA, rec.ID, Update{Condition: &cond})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Condition != "recovered" {
		t.Errorf("condition %q, want recovered", updated.Condition)
	}
	if updated.Name != "Alice" || updated.Age != 30 {
		t.Error("unsupplied fields must be left untouched")
	}
}

func TestUpdate_DoctorForeignRecordForbidden(t *testing.T) {
	svc := newTestService()
	drA := doctorIdent("drA")
	drB := doctorIdent("drB")

	rec, err := svc.Create(context.Background(), drA, CreateParams{Name: "Alice", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Mallory"
	_, err = svc.Update(context.Background(), drB, rec.ID, Update{Name: &name})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update(context.Background(), adminIdent(), uuid.New(), Update{})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_AdminOnly(t *testing.T) {
	svc := newTestService()
	drA := doctorIdent("drA")

	rec, err := svc.Create(context.Background(), drA, CreateParams{Name: "Alice", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The creating doctor still cannot delete.
	if err := svc.Delete(context.Background(), drA, rec.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected ErrForbidden for doctor delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminIdent(), rec.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}
