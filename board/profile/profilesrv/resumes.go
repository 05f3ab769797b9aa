package profilesrv

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/internal/pdf"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/google/uuid"
)

var allowedResumeExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// UploadResume stores the file, renders a preview for PDFs and records the resume.
// The first resume of a profile becomes its active resume.
func (s *ProfileService) UploadResume(ctx context.Context, actor, userID kernel.UserID, req profile.UploadResumeRequest) (*profile.Resume, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	if len(req.Data) == 0 {
		return nil, profile.ErrMissingField("file")
	}

	ext := strings.ToLower(path.Ext(req.FileName))
	if !allowedResumeExt[ext] {
		return nil, profile.ErrUnsupportedFile().WithDetail("extension", ext)
	}

	p, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	id := kernel.NewResumeID(uuid.NewString())
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSuffix(path.Base(req.FileName), path.Ext(req.FileName))
	}

	storagePath := s.fs.Join("resumes", userID.String(), id.String()+ext)
	if err := s.fs.WriteFile(ctx, storagePath, req.Data); err != nil {
		return nil, errx.Wrap(err, "failed to store resume", errx.TypeExternal)
	}

	r := &profile.Resume{
		ID:          id,
		ProfileID:   p.ID,
		Name:        name,
		URL:         s.fs.URL(storagePath),
		StoragePath: storagePath,
		CreatedAt:   s.now(),
	}

	if ext == ".pdf" && pdf.IsPDF(req.Data) {
		s.attachPreview(ctx, r, userID, req.Data)
	}

	if err := s.resumeRepo.Create(ctx, r); err != nil {
		s.removeFiles(ctx, r)
		return nil, errx.Wrap(err, "failed to record resume", errx.TypeInternal)
	}

	if p.ActiveResumeID == nil {
		p.ActiveResumeID = &r.ID
		p.UpdatedAt = s.now()
		if err := s.profileRepo.Upsert(ctx, p); err != nil {
			logx.Warnf("setting active resume for %s failed: %v", userID, err)
		}
	}

	return r, nil
}

// attachPreview renders the first page; a failed preview leaves the resume without one
func (s *ProfileService) attachPreview(ctx context.Context, r *profile.Resume, userID kernel.UserID, data []byte) {
	img, err := pdf.FirstPagePreview(data)
	if err != nil {
		logx.Warnf("preview for resume %s failed: %v", r.ID, err)
		return
	}

	previewPath := s.fs.Join("resumes", userID.String(), r.ID.String()+"-preview.jpg")
	if err := s.fs.WriteFile(ctx, previewPath, img); err != nil {
		logx.Warnf("storing preview for resume %s failed: %v", r.ID, err)
		return
	}
	r.PreviewPath = previewPath
	r.PreviewURL = s.fs.URL(previewPath)
}

// ensureProfile returns the stored profile, creating an empty one when missing
func (s *ProfileService) ensureProfile(ctx context.Context, userID kernel.UserID) (*profile.UserProfile, error) {
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errx.IsCode(err, profile.CodeProfileNotFound) {
		return nil, err
	}

	p = s.newProfile(userID)
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, errx.Wrap(err, "failed to create profile", errx.TypeInternal)
	}
	return p, nil
}

// OpenResume streams the stored file of one of the caller's resumes
func (s *ProfileService) OpenResume(ctx context.Context, actor, userID kernel.UserID, id kernel.ResumeID) (io.ReadCloser, *profile.Resume, error) {
	r, err := s.callerResume(ctx, actor, userID, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.fs.ReadFileStream(ctx, r.StoragePath)
	if err != nil {
		if errors.Is(err, fsx.ErrNotExist) {
			return nil, nil, profile.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, nil, errx.Wrap(err, "failed to read resume", errx.TypeExternal)
	}
	return stream, r, nil
}

// callerResume loads a resume that belongs to the calling user
func (s *ProfileService) callerResume(ctx context.Context, actor, userID kernel.UserID, id kernel.ResumeID) (*profile.Resume, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}

	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errx.IsCode(err, profile.CodeProfileNotFound) {
			return nil, profile.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, err
	}

	r, err := s.resumeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(p) {
		return nil, profile.ErrResumeNotFound().WithDetail("resume_id", id.String())
	}
	return r, nil
}

// DeleteResume removes a resume owned by the caller and its stored files
func (s *ProfileService) DeleteResume(ctx context.Context, actor, userID kernel.UserID, id kernel.ResumeID) error {
	r, err := s.callerResume(ctx, actor, userID, id)
	if err != nil {
		return err
	}
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.resumeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFiles(ctx, r)

	if p.ActiveResumeID != nil && *p.ActiveResumeID == id {
		p.ActiveResumeID = nil
		p.UpdatedAt = s.now()
		if err := s.profileRepo.Upsert(ctx, p); err != nil {
			return errx.Wrap(err, "failed to clear active resume", errx.TypeInternal)
		}
	}
	return nil
}

func (s *ProfileService) removeFiles(ctx context.Context, r *profile.Resume) {
	for _, p := range []string{r.StoragePath, r.PreviewPath} {
		if p == "" {
			continue
		}
		if err := s.fs.DeleteFile(ctx, p); err != nil {
			logx.Warnf("deleting %s failed: %v", p, err)
		}
	}
}
