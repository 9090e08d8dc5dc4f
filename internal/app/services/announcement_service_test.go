package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
)

func newAnnouncementService(f *fixture) *AnnouncementService {
	return NewAnnouncementService(f.repos.Announcements, f.repos.Enrollments, f.repos.Classes)
}

func TestAnnouncementCreateAuthorization(t *testing.T) {
	f := newFixture(t)
	svc := newAnnouncementService(f)
	ctx := context.Background()

	systemWide := &dto.CreateAnnouncementRequest{
		Title:          "Maintenance window",
		Content:        "The portal goes down on Sunday.",
		TargetAudience: ptr("all"),
	}
	if _, err := svc.Create(ctx, systemWide, f.lecturer); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("system-wide Create() by lecturer error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Create(ctx, systemWide, f.admin); err != nil {
		t.Errorf("system-wide Create() by admin error = %v", err)
	}

	classPost := &dto.CreateAnnouncementRequest{
		ClassID: ptr("CS101-F24-01"),
		Title:   "Lecture moved",
		Content: "This week's lecture is in Room 204.",
	}
	announcement, err := svc.Create(ctx, classPost, f.lecturer)
	if err != nil {
		t.Fatalf("class Create() by assigned lecturer error = %v", err)
	}
	if announcement.AnnouncementID == "" {
		t.Error("Create() left the announcement id empty")
	}
	if !announcement.IsPublished {
		t.Error("Create() default IsPublished = false, want true")
	}
}

func TestAnnouncementVisibility(t *testing.T) {
	f := newFixture(t)
	svc := newAnnouncementService(f)
	ctx := context.Background()

	post := func(req *dto.CreateAnnouncementRequest) {
		t.Helper()
		if _, err := svc.Create(ctx, req, f.admin); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	post(&dto.CreateAnnouncementRequest{Title: "For everyone", Content: "c", TargetAudience: ptr("all")})
	post(&dto.CreateAnnouncementRequest{Title: "For students", Content: "c", TargetAudience: ptr("students")})
	post(&dto.CreateAnnouncementRequest{Title: "For lecturers", Content: "c", TargetAudience: ptr("lecturers")})
	post(&dto.CreateAnnouncementRequest{Title: "Class post", Content: "c", ClassID: ptr("CS101-F24-01")})
	post(&dto.CreateAnnouncementRequest{Title: "Draft", Content: "c", TargetAudience: ptr("all"), IsPublished: ptr(false)})

	titles := func(userID string) map[string]bool {
		t.Helper()
		user, err := f.repos.Users.GetByID(ctx, userID)
		if err != nil || user == nil {
			t.Fatalf("GetByID(%s) = (%v, %v)", userID, user, err)
		}
		visible, err := svc.ListForUser(ctx, user)
		if err != nil {
			t.Fatalf("ListForUser(%s) error = %v", userID, err)
		}
		seen := make(map[string]bool, len(visible))
		for _, a := range visible {
			seen[a.Title] = true
		}
		return seen
	}

	tests := []struct {
		name   string
		userID string
		want   []string
		hidden []string
	}{
		{
			name:   "enrolled student",
			userID: "STU001",
			want:   []string{"For everyone", "For students", "Class post"},
			hidden: []string{"For lecturers", "Draft"},
		},
		{
			name:   "student outside the class",
			userID: "STU002",
			want:   []string{"For everyone", "For students"},
			hidden: []string{"Class post", "For lecturers", "Draft"},
		},
		{
			name:   "assigned lecturer",
			userID: "LEC001",
			want:   []string{"For everyone", "For lecturers", "Class post"},
			hidden: []string{"For students", "Draft"},
		},
		{
			name:   "admin sees everything",
			userID: "ADM001",
			want:   []string{"For everyone", "For students", "For lecturers", "Class post", "Draft"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := titles(tt.userID)
			for _, title := range tt.want {
				if !seen[title] {
					t.Errorf("%q is missing from the listing", title)
				}
			}
			for _, title := range tt.hidden {
				if seen[title] {
					t.Errorf("%q should not be listed", title)
				}
			}
		})
	}
}

func TestAnnouncementUpdateAndDeleteOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newAnnouncementService(f)
	ctx := context.Background()

	announcement, err := svc.Create(ctx, &dto.CreateAnnouncementRequest{
		ClassID: ptr("CS101-F24-01"),
		Title:   "Original",
		Content: "c",
	}, f.lecturer)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stranger := f.outsider
	if _, err := svc.Update(ctx, announcement.AnnouncementID, &dto.UpdateAnnouncementRequest{Title: ptr("Hijacked")}, stranger); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Update() by non-poster error = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(ctx, announcement.AnnouncementID, stranger); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Delete() by non-poster error = %v, want ErrPermissionDenied", err)
	}

	updated, err := svc.Update(ctx, announcement.AnnouncementID, &dto.UpdateAnnouncementRequest{Title: ptr("Edited")}, f.lecturer)
	if err != nil {
		t.Fatalf("Update() by poster error = %v", err)
	}
	if updated.Title != "Edited" {
		t.Errorf("Update() title = %q, want Edited", updated.Title)
	}

	// Admins may remove any post.
	if err := svc.Delete(ctx, announcement.AnnouncementID, f.admin); err != nil {
		t.Errorf("Delete() by admin error = %v", err)
	}
	if _, err := svc.Get(ctx, announcement.AnnouncementID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrResourceNotFound", err)
	}
}
