package market

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mtaafundi/fundi-finder/internal/models"
	"github.com/mtaafundi/fundi-finder/internal/validation"
)

func preloadQuote(db *gorm.DB) *gorm.DB {
	return db.Preload("Job").Preload("Job.User").Preload("Fundi")
}

func (s *Service) shapeQuotes(db *gorm.DB, quotes []models.Quote) ([]*QuoteView, error) {
	sh := newShaper(db)
	for i := range quotes {
		sh.addQuote(&quotes[i])
	}
	if err := sh.load(); err != nil {
		return nil, err
	}
	out := make([]*QuoteView, 0, len(quotes))
	for i := range quotes {
		out = append(out, sh.quote(&quotes[i]))
	}
	return out, nil
}

// ListQuotes returns the quotes of an open job, newest first.
func (s *Service) ListQuotes(ctx context.Context, jobID uint) ([]*QuoteView, error) {
	db := s.DB.WithContext(ctx)
	var job models.Job
	if err := load(db, &job, jobID, "Job", false); err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, forbidden("Cannot view quotes for closed jobs")
	}

	var quotes []models.Quote
	err := preloadQuote(db).
		Where("job_id = ?", jobID).
		Order("created_at DESC").Order("id DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, internal("Error retrieving quotes", err)
	}
	out, err := s.shapeQuotes(db, quotes)
	if err != nil {
		return nil, internal("Error retrieving quotes", err)
	}
	return out, nil
}

func (s *Service) GetQuote(ctx context.Context, id uint) (*QuoteView, error) {
	db := s.DB.WithContext(ctx)
	var quote models.Quote
	if err := load(preloadQuote(db), &quote, id, "Quote", false); err != nil {
		return nil, err
	}
	out, err := s.shapeQuotes(db, []models.Quote{quote})
	if err != nil {
		return nil, internal("Error retrieving quote", err)
	}
	return out[0], nil
}

// CreateQuote submits a fundi's quote on an open job, one per fundi and job.
func (s *Service) CreateQuote(ctx context.Context, in CreateQuoteInput) (*QuoteView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	quote := models.Quote{
		JobID:   in.JobID,
		UserID:  in.UserID,
		Price:   *in.Price,
		Message: in.Message,
	}
	var job models.Job
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := load(tx, &job, in.JobID, "Job", true); err != nil {
			return err
		}
		if job.Status != models.JobStatusOpen {
			return forbidden("Cannot quote on closed jobs")
		}

		var fundi models.User
		if err := load(tx, &fundi, in.UserID, "User", false); err != nil {
			return err
		}
		if fundi.Role != models.RoleFundi {
			return forbidden("Only fundis can provide quotes")
		}

		quoted, err := exists(tx, &models.Quote{}, "job_id = ? AND user_id = ?", in.JobID, in.UserID)
		if err != nil {
			return internal("Error creating quote", err)
		}
		if quoted {
			return conflict("You have already quoted on this job")
		}

		if err := tx.Omit(clause.Associations).Create(&quote).Error; err != nil {
			return writeErr(err, "Error creating quote", "You have already quoted on this job")
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error creating quote")
	}

	s.notify(ctx, job.UserID, EventQuoteSubmitted, map[string]interface{}{
		"quote_id": quote.ID,
		"job_id":   job.ID,
		"fundi_id": quote.UserID,
		"price":    quote.Price,
	})
	return s.GetQuote(ctx, quote.ID)
}

// UpdateQuote changes only price and message.
func (s *Service) UpdateQuote(ctx context.Context, id uint, in UpdateQuoteInput) (*QuoteView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var quote models.Quote
		if err := load(tx, &quote, id, "Quote", true); err != nil {
			return err
		}
		if in.Price != nil {
			quote.Price = *in.Price
		}
		if in.Message.Set {
			quote.Message = in.Message.Value
		}
		if err := tx.Omit(clause.Associations).Save(&quote).Error; err != nil {
			return internal("Error updating quote", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error updating quote")
	}
	return s.GetQuote(ctx, id)
}

func (s *Service) DeleteQuote(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var quote models.Quote
		if err := load(tx, &quote, id, "Quote", true); err != nil {
			return err
		}
		if err := tx.Delete(&quote).Error; err != nil {
			return internal("Error deleting quote", err)
		}
		return nil
	})
	return wrap(err, "Error deleting quote")
}
