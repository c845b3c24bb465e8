package market

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mtaafundi/fundi-finder/internal/models"
	"github.com/mtaafundi/fundi-finder/internal/validation"
)

// ListJobs returns jobs newest first, narrowed by f.
func (s *Service) ListJobs(ctx context.Context, f JobFilter) ([]*JobView, error) {
	db := s.DB.WithContext(ctx)
	q := db.Preload("User")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, internal("Error retrieving jobs", err)
	}

	sh := newShaper(db)
	for i := range jobs {
		sh.addJob(&jobs[i])
	}
	if err := sh.load(); err != nil {
		return nil, internal("Error retrieving jobs", err)
	}
	out := make([]*JobView, 0, len(jobs))
	for i := range jobs {
		out = append(out, sh.job(&jobs[i]))
	}
	return out, nil
}

func (s *Service) GetJob(ctx context.Context, id uint) (*JobView, error) {
	db := s.DB.WithContext(ctx)
	var job models.Job
	if err := load(db.Preload("User"), &job, id, "Job", false); err != nil {
		return nil, err
	}
	sh := newShaper(db)
	sh.addJob(&job)
	if err := sh.load(); err != nil {
		return nil, internal("Error retrieving job", err)
	}
	return sh.job(&job), nil
}

// CreateJob posts a new open job. Only homeowners may post.
func (s *Service) CreateJob(ctx context.Context, in CreateJobInput) (*JobView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	job := models.Job{
		UserID:        in.UserID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		PreferredDate: in.PreferredDate.Time,
		Budget:        *in.Budget,
		Status:        models.JobStatusOpen,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var user models.User
		if err := load(tx, &user, in.UserID, "User", true); err != nil {
			return err
		}
		if user.Role != models.RoleHomeowner {
			return forbidden("Only homeowners can post jobs")
		}
		if err := tx.Omit(clause.Associations).Create(&job).Error; err != nil {
			return internal("Error creating job", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error creating job")
	}
	return s.GetJob(ctx, job.ID)
}

// UpdateJob applies the supplied fields, status included. Closing a job
// notifies every fundi that quoted on it.
func (s *Service) UpdateJob(ctx context.Context, id uint, in UpdateJobInput) (*JobView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	var (
		job     models.Job
		closed  bool
		quoters []uint
	)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := load(tx, &job, id, "Job", true); err != nil {
			return err
		}

		if in.Title != nil {
			job.Title = *in.Title
		}
		if in.Description != nil {
			job.Description = *in.Description
		}
		if in.Category != nil {
			job.Category = *in.Category
		}
		if in.PreferredDate != nil {
			job.PreferredDate = in.PreferredDate.Time
		}
		if in.Budget != nil {
			job.Budget = *in.Budget
		}
		if in.Status != nil {
			closed = job.Status == models.JobStatusOpen && *in.Status == models.JobStatusClosed
			job.Status = *in.Status
		}

		if err := tx.Omit(clause.Associations).Save(&job).Error; err != nil {
			return internal("Error updating job", err)
		}

		if closed {
			if err := tx.Model(&models.Quote{}).Where("job_id = ?", id).Pluck("user_id", &quoters).Error; err != nil {
				return internal("Error updating job", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error updating job")
	}

	for _, fundiID := range quoters {
		s.notify(ctx, fundiID, EventJobClosed, map[string]interface{}{
			"job_id": job.ID,
			"title":  job.Title,
		})
	}
	return s.GetJob(ctx, id)
}

// DeleteJob removes a job that has neither quotes nor reviews.
func (s *Service) DeleteJob(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var job models.Job
		if err := load(tx, &job, id, "Job", true); err != nil {
			return err
		}

		hasQuotes, err := exists(tx, &models.Quote{}, "job_id = ?", id)
		if err != nil {
			return internal("Error deleting job", err)
		}
		hasReviews, err := exists(tx, &models.Review{}, "job_id = ?", id)
		if err != nil {
			return internal("Error deleting job", err)
		}
		if hasQuotes || hasReviews {
			return conflict("Cannot delete job with existing quotes or reviews")
		}

		if err := tx.Exec("DELETE FROM saved_jobs WHERE job_id = ?", id).Error; err != nil {
			return internal("Error deleting job", err)
		}
		if err := tx.Delete(&job).Error; err != nil {
			return internal("Error deleting job", err)
		}
		return nil
	})
	return wrap(err, "Error deleting job")
}
