package profilesrv

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

var fixedNow = time.Date(2026, time.October, 21, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *ProfileService
	profiles *memoryProfileRepo
	resumes  *memoryResumeRepo
	fs       *memoryFS
	notifier *recordingNotifier
}

func newFixture() *fixture {
	profiles := newMemoryProfileRepo()
	profiles.profiles["U1"] = profile.UserProfile{ID: "P1", UserID: "U1", FullName: "Ada Lovelace"}
	profiles.profiles["U2"] = profile.UserProfile{ID: "P2", UserID: "U2"}

	resumes := newMemoryResumeRepo(
		profile.Resume{ID: "R1", ProfileID: "P1", Name: "cv", CreatedAt: fixedNow.Add(-time.Hour)},
		profile.Resume{ID: "R2", ProfileID: "P1", Name: "cv-2", CreatedAt: fixedNow},
		profile.Resume{ID: "R9", ProfileID: "P2", Name: "someone else"},
	)
	jobs := &stubJobRepo{jobs: map[kernel.JobID]job.Job{
		"J1":    {ID: "J1", UserID: "owner", Title: "Software Engineer", IsPublished: true},
		"DRAFT": {ID: "DRAFT", UserID: "owner", Title: "Draft"},
	}}
	fs := newMemoryFS()
	notifier := &recordingNotifier{sent: make(chan kernel.Email, 8)}

	svc := NewProfileService(profiles, resumes, jobs, fs, notifier)
	svc.now = func() time.Time { return fixedNow }
	return &fixture{svc: svc, profiles: profiles, resumes: resumes, fs: fs, notifier: notifier}
}

func validApply() profile.ApplyRequest {
	return profile.ApplyRequest{JobID: "J1", ResumeID: "R1", ContactEmail: "a@x.com"}
}

func (f *fixture) expectNotification(t *testing.T, want kernel.Email) {
	t.Helper()
	select {
	case got := <-f.notifier.sent:
		if got != want {
			t.Fatalf("notification sent to %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no notification sent")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		view, err := f.svc.ApplyToJob(ctx, "U1", "U1", validApply())
		if err != nil {
			t.Fatalf("ApplyToJob() call %d error = %v", i+1, err)
		}
		if len(view.AppliedJobs) != 1 || view.AppliedJobs[0].JobID != "J1" {
			t.Fatalf("ApplyToJob() call %d appliedJobs = %+v, want exactly J1", i+1, view.AppliedJobs)
		}
		if view.Email != "a@x.com" {
			t.Fatalf("profile email = %q, want a@x.com", view.Email)
		}
		f.expectNotification(t, "a@x.com")
	}

	if len(f.profiles.applied) != 1 {
		t.Fatalf("stored applications = %d, want 1", len(f.profiles.applied))
	}
}

func TestApplyReturnsResumesNewestFirst(t *testing.T) {
	f := newFixture()

	view, err := f.svc.ApplyToJob(context.Background(), "U1", "U1", validApply())
	if err != nil {
		t.Fatalf("ApplyToJob() error = %v", err)
	}
	if len(view.Resumes) != 2 || view.Resumes[0].ID != "R2" || view.Resumes[1].ID != "R1" {
		t.Fatalf("resumes = %+v, want [R2 R1]", view.Resumes)
	}
	if !view.HasApplied("J1") {
		t.Fatalf("HasApplied(J1) = false")
	}
}

func TestApplyContactEmailLastWriteWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.ApplyToJob(ctx, "U1", "U1", validApply()); err != nil {
		t.Fatalf("ApplyToJob() error = %v", err)
	}
	req := validApply()
	req.ContactEmail = "new@x.com"
	view, err := f.svc.ApplyToJob(ctx, "U1", "U1", req)
	if err != nil {
		t.Fatalf("ApplyToJob() error = %v", err)
	}
	if view.Email != "new@x.com" {
		t.Fatalf("profile email = %q, want new@x.com", view.Email)
	}
	if view.AppliedJobs[0].ContactEmail != "a@x.com" {
		t.Fatalf("stored application email = %q, want the first one", view.AppliedJobs[0].ContactEmail)
	}
}

func TestApplyFailures(t *testing.T) {
	tests := []struct {
		name       string
		actor      kernel.UserID
		req        func(*profile.ApplyRequest)
		wantCode   errx.Code
		wantStatus int
	}{
		{"anonymous", "", nil, profile.CodeUnauthorized, http.StatusUnauthorized},
		{"other user", "U2", nil, profile.CodeUserMismatch, http.StatusUnauthorized},
		{"missing job", "U1", func(r *profile.ApplyRequest) { r.JobID = "" }, profile.CodeMissingField, http.StatusBadRequest},
		{"missing resume", "U1", func(r *profile.ApplyRequest) { r.ResumeID = " " }, profile.CodeMissingField, http.StatusBadRequest},
		{"missing email", "U1", func(r *profile.ApplyRequest) { r.ContactEmail = "" }, profile.CodeMissingField, http.StatusBadRequest},
		{"bad email", "U1", func(r *profile.ApplyRequest) { r.ContactEmail = "nope" }, profile.CodeInvalidEmail, http.StatusBadRequest},
		{"unknown job", "U1", func(r *profile.ApplyRequest) { r.JobID = "J404" }, profile.CodeJobNotApplicable, http.StatusNotFound},
		{"unpublished job", "U1", func(r *profile.ApplyRequest) { r.JobID = "DRAFT" }, profile.CodeJobNotApplicable, http.StatusNotFound},
		{"foreign resume", "U1", func(r *profile.ApplyRequest) { r.ResumeID = "R9" }, profile.CodeResumeNotOwned, http.StatusBadRequest},
		{"unknown resume", "U1", func(r *profile.ApplyRequest) { r.ResumeID = "R404" }, profile.CodeResumeNotOwned, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validApply()
			if tt.req != nil {
				tt.req(&req)
			}

			_, err := f.svc.ApplyToJob(context.Background(), tt.actor, "U1", req)
			if !errx.IsCode(err, tt.wantCode) {
				t.Fatalf("ApplyToJob() error = %v, want %s", err, tt.wantCode)
			}
			var e *errx.Error
			if errors.As(err, &e) && e.HTTPStatus != tt.wantStatus {
				t.Fatalf("status = %d, want %d", e.HTTPStatus, tt.wantStatus)
			}

			if f.profiles.writes != 0 || len(f.profiles.applied) != 0 {
				t.Fatalf("failed apply mutated storage: writes=%d applied=%d", f.profiles.writes, len(f.profiles.applied))
			}
			if f.profiles.profiles["U1"].Email != "" {
				t.Fatalf("failed apply changed profile email")
			}
			select {
			case to := <-f.notifier.sent:
				t.Fatalf("failed apply notified %q", to)
			default:
			}
		})
	}
}

func TestApplySucceedsWhenNotificationFails(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp down")

	if _, err := f.svc.ApplyToJob(context.Background(), "U1", "U1", validApply()); err != nil {
		t.Fatalf("ApplyToJob() error = %v, want success despite notifier failure", err)
	}
	f.expectNotification(t, "a@x.com")
}

func TestUpsertProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bad := "not-an-email"
	if _, err := f.svc.UpsertProfile(ctx, "U3", "U3", profile.UpsertProfileRequest{Email: &bad}); !errx.IsCode(err, profile.CodeInvalidEmail) {
		t.Fatalf("UpsertProfile(bad email) error = %v", err)
	}

	name, email := "Grace Hopper", "grace@x.com"
	view, err := f.svc.UpsertProfile(ctx, "U3", "U3", profile.UpsertProfileRequest{FullName: &name, Email: &email})
	if err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}
	if view.FullName != name || view.Email != "grace@x.com" || view.ID == "" {
		t.Fatalf("UpsertProfile() = %+v", view.UserProfile)
	}

	foreign := "R9"
	if _, err := f.svc.UpsertProfile(ctx, "U1", "U1", profile.UpsertProfileRequest{ActiveResumeID: &foreign}); !errx.IsCode(err, profile.CodeResumeNotOwned) {
		t.Fatalf("UpsertProfile(foreign resume) error = %v", err)
	}
}

func TestGetProfileViewForUnknownUser(t *testing.T) {
	f := newFixture()

	view, err := f.svc.GetProfileView(context.Background(), "U7", "U7")
	if err != nil {
		t.Fatalf("GetProfileView() error = %v", err)
	}
	if view.UserID != "U7" || view.Resumes == nil || view.AppliedJobs == nil {
		t.Fatalf("GetProfileView() = %+v, want empty view", view)
	}
	if _, err := f.svc.GetProfileView(context.Background(), "U1", "U7"); !errx.IsCode(err, profile.CodeUserMismatch) {
		t.Fatalf("GetProfileView(other user) error = %v", err)
	}
}

func TestUploadAndDeleteResume(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.UploadResume(ctx, "U5", "U5", profile.UploadResumeRequest{FileName: "cv.exe", Data: []byte("MZ")}); !errx.IsCode(err, profile.CodeUnsupportedFile) {
		t.Fatalf("UploadResume(exe) error = %v", err)
	}

	r, err := f.svc.UploadResume(ctx, "U5", "U5", profile.UploadResumeRequest{FileName: "My CV.docx", Data: []byte("PK")})
	if err != nil {
		t.Fatalf("UploadResume() error = %v", err)
	}
	if r.Name != "My CV" || r.URL != "mem://"+r.StoragePath {
		t.Fatalf("UploadResume() = %+v", r)
	}
	if _, ok := f.fs.files[r.StoragePath]; !ok {
		t.Fatalf("file not stored at %s", r.StoragePath)
	}

	p := f.profiles.profiles["U5"]
	if p.ActiveResumeID == nil || *p.ActiveResumeID != r.ID {
		t.Fatalf("active resume = %v, want %s", p.ActiveResumeID, r.ID)
	}

	stream, _, err := f.svc.OpenResume(ctx, "U5", "U5", r.ID)
	if err != nil {
		t.Fatalf("OpenResume() error = %v", err)
	}
	data, _ := io.ReadAll(stream)
	stream.Close()
	if string(data) != "PK" {
		t.Fatalf("OpenResume() data = %q", data)
	}

	if err := f.svc.DeleteResume(ctx, "U5", "U5", "R1"); !errx.IsCode(err, profile.CodeResumeNotFound) {
		t.Fatalf("DeleteResume(foreign) error = %v", err)
	}
	if err := f.svc.DeleteResume(ctx, "U5", "U5", r.ID); err != nil {
		t.Fatalf("DeleteResume() error = %v", err)
	}
	if len(f.fs.files) != 0 {
		t.Fatalf("files left after delete: %v", f.fs.files)
	}
	if p := f.profiles.profiles["U5"]; p.ActiveResumeID != nil {
		t.Fatalf("active resume not cleared")
	}
}

func TestListApplicants(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.ApplyToJob(ctx, "U1", "U1", validApply()); err != nil {
		t.Fatalf("ApplyToJob() error = %v", err)
	}
	f.expectNotification(t, "a@x.com")

	if _, err := f.svc.ListApplicants(ctx, "U1", "J1"); !errx.IsCode(err, job.CodeJobNotFound) {
		t.Fatalf("ListApplicants(non-owner) error = %v", err)
	}

	applicants, err := f.svc.ListApplicants(ctx, "owner", "J1")
	if err != nil {
		t.Fatalf("ListApplicants() error = %v", err)
	}
	if len(applicants) != 1 || applicants[0].UserID != "U1" || applicants[0].FullName != "Ada Lovelace" {
		t.Fatalf("ListApplicants() = %+v", applicants)
	}
}
