package seed

import (
	"context"
	"testing"

	"github.com/bruce184/OCMS/internal/app/repositories/memstore"
	"github.com/bruce184/OCMS/internal/pkg/auth"
)

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memstore.NewRepositories(memstore.NewStore())

	if err := Apply(ctx, repos); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if err := Apply(ctx, repos); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	users, err := repos.Users.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 9 {
		t.Errorf("seeded %d users, want 9", len(users))
	}

	admin, err := repos.Users.GetByID(ctx, "ADMIN001")
	if err != nil || admin == nil {
		t.Fatalf("GetByID(ADMIN001) = (%v, %v)", admin, err)
	}
	if !auth.CheckPassword(admin.PasswordHash, DemoPassword) {
		t.Error("seeded admin password hash does not match DemoPassword")
	}
}

func TestApplyDerivesEnrollmentCounts(t *testing.T) {
	ctx := context.Background()
	repos := memstore.NewRepositories(memstore.NewStore())
	if err := Apply(ctx, repos); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	class, err := repos.Classes.Get(ctx, "CS101-F24-01")
	if err != nil || class == nil {
		t.Fatalf("Get(CS101-F24-01) = (%v, %v)", class, err)
	}
	if class.CurrentEnrollment != 3 {
		t.Errorf("CS101-F24-01 CurrentEnrollment = %d, want 3", class.CurrentEnrollment)
	}

	enrollments, err := repos.Enrollments.ListByStudent(ctx, "STU001")
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(enrollments) != 3 {
		t.Errorf("STU001 has %d enrollments, want 3", len(enrollments))
	}
}
