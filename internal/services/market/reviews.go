package market

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mtaafundi/fundi-finder/internal/models"
	"github.com/mtaafundi/fundi-finder/internal/validation"
)

func preloadReview(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviewer").Preload("Reviewee").Preload("Job").Preload("Job.User")
}

func (s *Service) shapeReviews(db *gorm.DB, reviews []models.Review) ([]*ReviewView, error) {
	sh := newShaper(db)
	for i := range reviews {
		sh.addReview(&reviews[i])
	}
	if err := sh.load(); err != nil {
		return nil, err
	}
	out := make([]*ReviewView, 0, len(reviews))
	for i := range reviews {
		out = append(out, sh.review(&reviews[i]))
	}
	return out, nil
}

// ListReviews returns the reviews a user has received, newest first.
func (s *Service) ListReviews(ctx context.Context, userID uint) ([]*ReviewView, error) {
	db := s.DB.WithContext(ctx)
	var user models.User
	if err := load(db, &user, userID, "User", false); err != nil {
		return nil, err
	}

	var reviews []models.Review
	err := preloadReview(db).
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, internal("Error retrieving reviews", err)
	}
	out, err := s.shapeReviews(db, reviews)
	if err != nil {
		return nil, internal("Error retrieving reviews", err)
	}
	return out, nil
}

func (s *Service) GetReview(ctx context.Context, id uint) (*ReviewView, error) {
	db := s.DB.WithContext(ctx)
	var review models.Review
	if err := load(preloadReview(db), &review, id, "Review", false); err != nil {
		return nil, err
	}
	out, err := s.shapeReviews(db, []models.Review{review})
	if err != nil {
		return nil, internal("Error retrieving review", err)
	}
	return out[0], nil
}

// CreateReview records a rating between a homeowner and a fundi on a closed job.
func (s *Service) CreateReview(ctx context.Context, in CreateReviewInput) (*ReviewView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	review := models.Review{
		ReviewerID: in.ReviewerID,
		RevieweeID: in.RevieweeID,
		JobID:      in.JobID,
		Rating:     *in.Rating,
		Comment:    in.Comment,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var reviewer, reviewee models.User
		if err := load(tx, &reviewer, in.ReviewerID, "Reviewer", false); err != nil {
			return err
		}
		if err := load(tx, &reviewee, in.RevieweeID, "Reviewee", false); err != nil {
			return err
		}

		var job models.Job
		if err := load(tx, &job, in.JobID, "Job", true); err != nil {
			return err
		}
		if job.Status != models.JobStatusClosed {
			return forbidden("Can only review completed (closed) jobs")
		}

		dup, err := exists(tx, &models.Review{},
			"reviewer_id = ? AND reviewee_id = ? AND job_id = ?", in.ReviewerID, in.RevieweeID, in.JobID)
		if err != nil {
			return internal("Error creating review", err)
		}
		if dup {
			return conflict("Review already exists for this job")
		}

		if reviewer.Role == reviewee.Role {
			return forbidden("Reviewer and reviewee must have different roles")
		}

		if err := tx.Omit(clause.Associations).Create(&review).Error; err != nil {
			return writeErr(err, "Error creating review", "Review already exists for this job")
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error creating review")
	}

	s.notify(ctx, review.RevieweeID, EventReviewReceived, map[string]interface{}{
		"review_id":   review.ID,
		"job_id":      review.JobID,
		"reviewer_id": review.ReviewerID,
		"rating":      review.Rating,
	})
	return s.GetReview(ctx, review.ID)
}

// UpdateReview changes only rating and comment.
func (s *Service) UpdateReview(ctx context.Context, id uint, in UpdateReviewInput) (*ReviewView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var review models.Review
		if err := load(tx, &review, id, "Review", true); err != nil {
			return err
		}
		if in.Rating != nil {
			review.Rating = *in.Rating
		}
		if in.Comment.Set {
			review.Comment = in.Comment.Value
		}
		if err := tx.Omit(clause.Associations).Save(&review).Error; err != nil {
			return internal("Error updating review", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error updating review")
	}
	return s.GetReview(ctx, id)
}

func (s *Service) DeleteReview(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var review models.Review
		if err := load(tx, &review, id, "Review", true); err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return internal("Error deleting review", err)
		}
		return nil
	})
	return wrap(err, "Error deleting review")
}
