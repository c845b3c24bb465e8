package market

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mtaafundi/fundi-finder/internal/models"
	"github.com/mtaafundi/fundi-finder/internal/validation"
)

func (s *Service) ListUsers(ctx context.Context) ([]*UserView, error) {
	db := s.DB.WithContext(ctx)
	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, internal("Error retrieving users", err)
	}
	sh := newShaper(db)
	for i := range users {
		sh.addUser(&users[i])
	}
	if err := sh.load(); err != nil {
		return nil, internal("Error retrieving users", err)
	}
	out := make([]*UserView, 0, len(users))
	for i := range users {
		out = append(out, sh.user(&users[i]))
	}
	return out, nil
}

func (s *Service) GetUser(ctx context.Context, id uint) (*UserView, error) {
	db := s.DB.WithContext(ctx)
	var user models.User
	if err := load(db, &user, id, "User", false); err != nil {
		return nil, err
	}
	sh := newShaper(db)
	sh.addUser(&user)
	if err := sh.load(); err != nil {
		return nil, internal("Error retrieving user", err)
	}
	return sh.user(&user), nil
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*UserView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	user := models.User{
		Name:     in.Name,
		Phone:    in.Phone,
		Role:     in.Role,
		Location: in.Location,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		taken, err := exists(tx, &models.User{}, "phone = ?", in.Phone)
		if err != nil {
			return internal("Error creating user", err)
		}
		if taken {
			return conflict("Phone number already registered")
		}
		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return writeErr(err, "Error creating user", "Phone number already registered")
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error creating user")
	}
	return s.GetUser(ctx, user.ID)
}

// UpdateUser applies the supplied fields. PUT and PATCH share it.
func (s *Service) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*UserView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, invalid(err)
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var user models.User
		if err := load(tx, &user, id, "User", true); err != nil {
			return err
		}

		if in.Phone != nil && *in.Phone != user.Phone {
			taken, err := exists(tx, &models.User{}, "phone = ? AND id <> ?", *in.Phone, id)
			if err != nil {
				return internal("Error updating user", err)
			}
			if taken {
				return conflict("Phone number already registered")
			}
			user.Phone = *in.Phone
		}
		if in.Name != nil {
			user.Name = *in.Name
		}
		if in.Role != nil {
			user.Role = *in.Role
		}
		if in.Location != nil {
			user.Location = *in.Location
		}

		if err := tx.Omit(clause.Associations).Save(&user).Error; err != nil {
			return writeErr(err, "Error updating user", "Phone number already registered")
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err, "Error updating user")
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user with every job it posted, every quote and
// review it gave or received, and its saved-job links.
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var user models.User
		if err := load(tx, &user, id, "User", true); err != nil {
			return err
		}

		var jobIDs []uint
		if err := tx.Model(&models.Job{}).Where("user_id = ?", id).Pluck("id", &jobIDs).Error; err != nil {
			return internal("Error deleting user", err)
		}

		if err := tx.Where("reviewer_id = ? OR reviewee_id = ?", id, id).Delete(&models.Review{}).Error; err != nil {
			return internal("Error deleting user", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Quote{}).Error; err != nil {
			return internal("Error deleting user", err)
		}
		if err := tx.Exec("DELETE FROM saved_jobs WHERE user_id = ?", id).Error; err != nil {
			return internal("Error deleting user", err)
		}

		if len(jobIDs) > 0 {
			if err := deleteJobDependents(tx, jobIDs); err != nil {
				return internal("Error deleting user", err)
			}
			if err := tx.Where("id IN ?", jobIDs).Delete(&models.Job{}).Error; err != nil {
				return internal("Error deleting user", err)
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return internal("Error deleting user", err)
		}
		return nil
	})
	return wrap(err, "Error deleting user")
}

// deleteJobDependents removes the reviews, quotes and saved-job links of jobIDs.
func deleteJobDependents(tx *gorm.DB, jobIDs []uint) error {
	if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.Review{}).Error; err != nil {
		return err
	}
	if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.Quote{}).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM saved_jobs WHERE job_id IN ?", jobIDs).Error
}
