package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devconnect/internal/cache"
	"devconnect/internal/github"
	"devconnect/internal/model"
	"devconnect/internal/repository"
)

// ProfileService keeps the denormalized profile documents consistent:
// one profile per user, head-insertion on the nested ordered collections,
// and the transactional account removal cascade.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	githubAPI   *github.Client
	repoCache   cache.RepoCache
	txRunner    repository.TxRunner
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	githubAPI *github.Client,
	repoCache cache.RepoCache,
	txRunner repository.TxRunner,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		githubAPI:   githubAPI,
		repoCache:   repoCache,
		txRunner:    txRunner,
	}
}

// GetOwn returns the subject's profile.
func (s *ProfileService) GetOwn(ctx context.Context, subjectID int64) (*model.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, subjectID)
}

// GetByUser returns the profile for any user id.
func (s *ProfileService) GetByUser(ctx context.Context, userID int64) (*model.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// List returns all profiles joined with the owner projection.
func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.profileRepo.List(ctx)
}

// Upsert creates the subject's profile or updates it in place.
//
// Update uses partial-field semantics: only submitted keys overwrite, absent
// keys keep their stored value. Creation requires status and skills. The
// one-profile-per-user invariant rests on the read-then-write sequence here;
// it is not backed by a database constraint.
func (s *ProfileService) Upsert(ctx context.Context, subjectID int64, req model.UpsertProfileRequest) (*model.Profile, error) {
	if req.Status != nil && strings.TrimSpace(*req.Status) == "" {
		return nil, model.ErrStatusRequired
	}
	if req.Skills != nil && len(normalizeSkills(*req.Skills)) == 0 {
		return nil, model.ErrSkillsRequired
	}

	existing, err := s.profileRepo.GetByUserID(ctx, subjectID)
	if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
		return nil, fmt.Errorf("look up profile: %w", err)
	}

	if existing == nil {
		if req.Status == nil {
			return nil, model.ErrStatusRequired
		}
		if req.Skills == nil {
			return nil, model.ErrSkillsRequired
		}

		profile := &model.Profile{
			UserID:     subjectID,
			Experience: model.ExperienceList{},
			Education:  model.EducationList{},
		}
		applyProfileFields(profile, req)

		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		log.Printf("[ProfileService] Created profile for user %d", subjectID)
		return profile, nil
	}

	applyProfileFields(existing, req)
	if err := s.profileRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return existing, nil
}

// applyProfileFields overwrites only the submitted fields.
func applyProfileFields(p *model.Profile, req model.UpsertProfileRequest) {
	if req.Company != nil {
		p.Company = req.Company
	}
	if req.Website != nil {
		p.Website = req.Website
	}
	if req.Location != nil {
		p.Location = req.Location
	}
	if req.Status != nil {
		p.Status = strings.TrimSpace(*req.Status)
	}
	if req.Skills != nil {
		p.Skills = normalizeSkills(*req.Skills)
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.GithubUsername != nil {
		p.GithubUsername = req.GithubUsername
	}
	if req.Youtube != nil {
		p.Social.Youtube = req.Youtube
	}
	if req.Twitter != nil {
		p.Social.Twitter = req.Twitter
	}
	if req.Facebook != nil {
		p.Social.Facebook = req.Facebook
	}
	if req.Instagram != nil {
		p.Social.Instagram = req.Instagram
	}
	if req.Linkedin != nil {
		p.Social.Linkedin = req.Linkedin
	}
}

// normalizeSkills splits a comma-separated list into trimmed, non-empty
// entries, preserving submission order.
func normalizeSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// AddExperience validates the entry, assigns a fresh id and inserts it at the
// head of the sequence so the newest entry displays first.
func (s *ProfileService) AddExperience(ctx context.Context, subjectID int64, req model.AddExperienceRequest) (*model.Profile, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, model.ErrTitleRequired
	}
	if strings.TrimSpace(req.Company) == "" {
		return nil, model.ErrCompanyRequired
	}
	if strings.TrimSpace(req.From) == "" {
		return nil, model.ErrFromRequired
	}

	profile, err := s.profileRepo.GetByUserID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	entry := model.Experience{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	profile.Experience = append(model.ExperienceList{entry}, profile.Experience...)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist experience: %w", err)
	}
	return profile, nil
}

// RemoveExperience filters the entry out by id. An absent id is a silent
// no-op: the unchanged profile is returned without error.
func (s *ProfileService) RemoveExperience(ctx context.Context, subjectID int64, entryID string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	kept := make(model.ExperienceList, 0, len(profile.Experience))
	for _, entry := range profile.Experience {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	profile.Experience = kept

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist experience removal: %w", err)
	}
	return profile, nil
}

// AddEducation mirrors AddExperience for the education sequence.
func (s *ProfileService) AddEducation(ctx context.Context, subjectID int64, req model.AddEducationRequest) (*model.Profile, error) {
	if strings.TrimSpace(req.School) == "" {
		return nil, model.ErrSchoolRequired
	}
	if strings.TrimSpace(req.Degree) == "" {
		return nil, model.ErrDegreeRequired
	}
	if strings.TrimSpace(req.From) == "" {
		return nil, model.ErrFromRequired
	}

	profile, err := s.profileRepo.GetByUserID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	entry := model.Education{
		ID:           uuid.NewString(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	profile.Education = append(model.EducationList{entry}, profile.Education...)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist education: %w", err)
	}
	return profile, nil
}

// RemoveEducation filters the entry out by id, silent no-op when absent.
func (s *ProfileService) RemoveEducation(ctx context.Context, subjectID int64, entryID string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	kept := make(model.EducationList, 0, len(profile.Education))
	for _, entry := range profile.Education {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	profile.Education = kept

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist education removal: %w", err)
	}
	return profile, nil
}

// DeleteAccount removes the subject's posts, profile and user record in a
// single transaction, so no orphaned records survive a partial failure.
func (s *ProfileService) DeleteAccount(ctx context.Context, subjectID int64) error {
	err := s.txRunner.RunTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.postRepo.DeleteByUserID(ctx, tx, subjectID); err != nil {
			return err
		}
		if err := s.profileRepo.DeleteByUserID(ctx, tx, subjectID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, tx, subjectID)
	})
	if err != nil {
		return err
	}

	log.Printf("[ProfileService] Deleted account %d with profile and posts", subjectID)
	return nil
}

// GithubRepos returns the user's public repositories, serving from the Redis
// cache when possible. Any upstream failure maps to github.ErrNotFound.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	if s.repoCache != nil {
		payload, found, err := s.repoCache.Get(ctx, username)
		if err != nil {
			log.Printf("[ProfileService] Repo cache read failed: username=%s err=%v", username, err)
		} else if found {
			repos, err := github.Decode(payload)
			if err == nil {
				return repos, nil
			}
			log.Printf("[ProfileService] Discarding corrupt cached repos: username=%s err=%v", username, err)
		}
	}

	repos, payload, err := s.githubAPI.ListRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.repoCache != nil {
		if err := s.repoCache.Set(ctx, username, payload); err != nil {
			// Best-effort: the listing is still served.
			log.Printf("[ProfileService] Repo cache write failed: username=%s err=%v", username, err)
		}
	}

	return repos, nil
}
