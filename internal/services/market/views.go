package market

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

type UserView struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Role      models.Role `json:"role"`
	Location  string      `json:"location"`
	CreatedAt time.Time   `json:"created_at"`

	JobsCount     int64   `json:"jobs_count"`
	QuotesCount   int64   `json:"quotes_count"`
	AverageRating float64 `json:"average_rating"`
}

type JobView struct {
	ID            uint               `json:"id"`
	UserID        uint               `json:"user_id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      models.JobCategory `json:"category"`
	PreferredDate time.Time          `json:"preferred_date"`
	Budget        float64            `json:"budget"`
	Status        models.JobStatus   `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`

	User        *UserView `json:"user,omitempty"`
	QuotesCount int64     `json:"quotes_count"`
}

type QuoteView struct {
	ID        uint      `json:"id"`
	JobID     uint      `json:"job_id"`
	UserID    uint      `json:"user_id"`
	Price     float64   `json:"price"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	Job   *JobView  `json:"job,omitempty"`
	Fundi *UserView `json:"fundi,omitempty"`
}

type ReviewView struct {
	ID         uint      `json:"id"`
	ReviewerID uint      `json:"reviewer_id"`
	RevieweeID uint      `json:"reviewee_id"`
	JobID      uint      `json:"job_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	Reviewer *UserView `json:"reviewer,omitempty"`
	Reviewee *UserView `json:"reviewee,omitempty"`
	Job      *JobView  `json:"job,omitempty"`
}

type idCount struct {
	ID uint
	N  int64
}

type idAverage struct {
	ID  uint
	Avg float64
}

// shaper builds views and fills the aggregate fields with one grouped
// query per aggregate, whatever the number of rows being shaped.
type shaper struct {
	db *gorm.DB

	userIDs map[uint]struct{}
	jobIDs  map[uint]struct{}

	jobsByUser   map[uint]int64
	quotesByUser map[uint]int64
	avgRating    map[uint]float64
	quotesByJob  map[uint]int64
}

func newShaper(db *gorm.DB) *shaper {
	return &shaper{
		db:      db,
		userIDs: map[uint]struct{}{},
		jobIDs:  map[uint]struct{}{},
	}
}

func (s *shaper) addUser(u *models.User) {
	if u != nil {
		s.userIDs[u.ID] = struct{}{}
	}
}

func (s *shaper) addJob(j *models.Job) {
	if j == nil {
		return
	}
	s.jobIDs[j.ID] = struct{}{}
	s.addUser(j.User)
}

func (s *shaper) addQuote(q *models.Quote) {
	s.addJob(q.Job)
	s.addUser(q.Fundi)
}

func (s *shaper) addReview(r *models.Review) {
	s.addUser(r.Reviewer)
	s.addUser(r.Reviewee)
	s.addJob(r.Job)
}

func keys(m map[uint]struct{}) []uint {
	out := make([]uint, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func (s *shaper) countBy(model interface{}, column string, ids []uint) (map[uint]int64, error) {
	out := map[uint]int64{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []idCount
	err := s.db.Model(model).
		Select(column+" AS id, COUNT(*) AS n").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", column, err)
	}
	for _, r := range rows {
		out[r.ID] = r.N
	}
	return out, nil
}

// load runs the aggregate queries for everything added so far.
func (s *shaper) load() error {
	userIDs := keys(s.userIDs)
	jobIDs := keys(s.jobIDs)

	var err error
	if s.jobsByUser, err = s.countBy(&models.Job{}, "user_id", userIDs); err != nil {
		return err
	}
	if s.quotesByUser, err = s.countBy(&models.Quote{}, "user_id", userIDs); err != nil {
		return err
	}
	if s.quotesByJob, err = s.countBy(&models.Quote{}, "job_id", jobIDs); err != nil {
		return err
	}

	s.avgRating = map[uint]float64{}
	if len(userIDs) > 0 {
		var rows []idAverage
		err := s.db.Model(&models.Review{}).
			Select("reviewee_id AS id, AVG(rating) AS avg").
			Where("reviewee_id IN ?", userIDs).
			Group("reviewee_id").
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("average rating: %w", err)
		}
		for _, r := range rows {
			s.avgRating[r.ID] = math.Round(r.Avg*100) / 100
		}
	}
	return nil
}

func (s *shaper) user(u *models.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:            u.ID,
		Name:          u.Name,
		Phone:         u.Phone,
		Role:          u.Role,
		Location:      u.Location,
		CreatedAt:     u.CreatedAt,
		JobsCount:     s.jobsByUser[u.ID],
		QuotesCount:   s.quotesByUser[u.ID],
		AverageRating: s.avgRating[u.ID],
	}
}

func (s *shaper) job(j *models.Job) *JobView {
	if j == nil {
		return nil
	}
	return &JobView{
		ID:            j.ID,
		UserID:        j.UserID,
		Title:         j.Title,
		Description:   j.Description,
		Category:      j.Category,
		PreferredDate: j.PreferredDate,
		Budget:        j.Budget,
		Status:        j.Status,
		CreatedAt:     j.CreatedAt,
		User:          s.user(j.User),
		QuotesCount:   s.quotesByJob[j.ID],
	}
}

func (s *shaper) quote(q *models.Quote) *QuoteView {
	return &QuoteView{
		ID:        q.ID,
		JobID:     q.JobID,
		UserID:    q.UserID,
		Price:     q.Price,
		Message:   q.Message,
		CreatedAt: q.CreatedAt,
		Job:       s.job(q.Job),
		Fundi:     s.user(q.Fundi),
	}
}

func (s *shaper) review(r *models.Review) *ReviewView {
	return &ReviewView{
		ID:         r.ID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		JobID:      r.JobID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		Reviewer:   s.user(r.Reviewer),
		Reviewee:   s.user(r.Reviewee),
		Job:        s.job(r.Job),
	}
}
