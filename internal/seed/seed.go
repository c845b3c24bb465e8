// Package seed loads sample homeowners, fundis, jobs, quotes and reviews
// through the market service, so every row passes the normal lifecycle rules.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mtaafundi/fundi-finder/internal/models"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

// Summary holds the views of everything Run created.
type Summary struct {
	Users   []*market.UserView
	Jobs    []*market.JobView
	Quotes  []*market.QuoteView
	Reviews []*market.ReviewView
}

var users = []market.CreateUserInput{
	{Name: "John Mwangi", Phone: "+254712345678", Role: models.RoleHomeowner, Location: "Nairobi, Westlands"},
	{Name: "Mary Wanjiku", Phone: "+254723456789", Role: models.RoleHomeowner, Location: "Nairobi, Karen"},
	{Name: "Peter Kiprop", Phone: "+254734567890", Role: models.RoleFundi, Location: "Nairobi, Kibera"},
	{Name: "Grace Achieng", Phone: "+254745678901", Role: models.RoleFundi, Location: "Nairobi, Eastlands"},
	{Name: "David Ochieng", Phone: "+254756789012", Role: models.RoleFundi, Location: "Nairobi, Kawangware"},
}

type jobSeed struct {
	owner       int
	title       string
	description string
	category    models.JobCategory
	inDays      int
	budget      float64
}

var jobs = []jobSeed{
	{0, "Fix leaking kitchen tap", "Kitchen tap has been leaking for a week. Need urgent repair.", models.CategoryPlumbing, 2, 1500},
	{0, "Install ceiling fan in living room", "Need to install a new ceiling fan. Already have the fan, just need installation.", models.CategoryElectrical, 5, 2500},
	{1, "Paint bedroom walls", "Need to paint one bedroom. Paint will be provided.", models.CategoryPainting, 3, 8000},
	{1, "Fix broken door lock", "Front door lock is not working properly. Need replacement.", models.CategoryCarpentry, 1, 1200},
}

type quoteSeed struct {
	job, fundi int
	price      float64
	message    string
}

var quotes = []quoteSeed{
	{0, 2, 1200, "I can fix this today. I have all necessary tools and spare parts."},
	{0, 4, 1000, "Available immediately. Will bring all required materials."},
	{1, 3, 2000, "Experienced electrician. Can install safely and provide warranty."},
	{2, 3, 7000, "Professional painting service. Will use quality paint and finish in one day."},
	{3, 2, 1000, "Can fix this quickly. Have various lock options available."},
}

// closed lists the jobs finished before reviews are written.
var closed = []int{0, 3}

type reviewSeed struct {
	reviewer, reviewee, job int
	rating                  int
	comment                 string
}

var reviews = []reviewSeed{
	{0, 2, 0, 5, "Excellent work! Fixed the tap quickly and professionally."},
	{0, 4, 0, 4, "Good work, arrived on time and completed the job well."},
	{1, 2, 3, 5, "Very skilled carpenter. Fixed the lock perfectly."},
}

// Reset deletes every row, dependents first.
func Reset(gdb *gorm.DB) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM saved_jobs").Error; err != nil {
			return fmt.Errorf("clear saved_jobs: %w", err)
		}
		for _, m := range []interface{}{&models.Review{}, &models.Quote{}, &models.Job{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		return nil
	})
}

// Run creates the sample data set.
func Run(ctx context.Context, svc *market.Service) (*Summary, error) {
	sum := &Summary{}

	for _, in := range users {
		u, err := svc.CreateUser(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", in.Name, err)
		}
		sum.Users = append(sum.Users, u)
	}

	for _, js := range jobs {
		when := models.Timestamp{Time: time.Now().UTC().AddDate(0, 0, js.inDays)}
		budget := js.budget
		j, err := svc.CreateJob(ctx, market.CreateJobInput{
			UserID:        sum.Users[js.owner].ID,
			Title:         js.title,
			Description:   js.description,
			Category:      js.category,
			PreferredDate: &when,
			Budget:        &budget,
		})
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", js.title, err)
		}
		sum.Jobs = append(sum.Jobs, j)
	}

	for _, qs := range quotes {
		price, message := qs.price, qs.message
		q, err := svc.CreateQuote(ctx, market.CreateQuoteInput{
			JobID:   sum.Jobs[qs.job].ID,
			UserID:  sum.Users[qs.fundi].ID,
			Price:   &price,
			Message: &message,
		})
		if err != nil {
			return nil, fmt.Errorf("quote on %q: %w", sum.Jobs[qs.job].Title, err)
		}
		sum.Quotes = append(sum.Quotes, q)
	}

	status := models.JobStatusClosed
	for _, i := range closed {
		j, err := svc.UpdateJob(ctx, sum.Jobs[i].ID, market.UpdateJobInput{Status: &status})
		if err != nil {
			return nil, fmt.Errorf("close %q: %w", sum.Jobs[i].Title, err)
		}
		sum.Jobs[i] = j
	}

	for _, rs := range reviews {
		rating, comment := rs.rating, rs.comment
		r, err := svc.CreateReview(ctx, market.CreateReviewInput{
			ReviewerID: sum.Users[rs.reviewer].ID,
			RevieweeID: sum.Users[rs.reviewee].ID,
			JobID:      sum.Jobs[rs.job].ID,
			Rating:     &rating,
			Comment:    &comment,
		})
		if err != nil {
			return nil, fmt.Errorf("review on %q: %w", sum.Jobs[rs.job].Title, err)
		}
		sum.Reviews = append(sum.Reviews, r)
	}

	return sum, nil
}
