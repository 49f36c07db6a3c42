package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes. They ignore the *gorm.DB parameter entirely,
// which lets service tests run without a database.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ *gorm.DB, email string) (bool, error) {
	_, err := r.FindByEmail(nil, email)
	return err == nil, nil
}

type fakeProfileRepo struct {
	workerProfiles   map[string]*models.WorkerProfile
	employerProfiles map[string]*models.EmployerProfile
	workerRatings    map[string]float64
	employerRatings  map[string]float64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		workerProfiles:   make(map[string]*models.WorkerProfile),
		employerProfiles: make(map[string]*models.EmployerProfile),
		workerRatings:    make(map[string]float64),
		employerRatings:  make(map[string]float64),
	}
}

func (r *fakeProfileRepo) CreateWorkerProfile(_ *gorm.DB, p *models.WorkerProfile) error {
	r.workerProfiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) CreateEmployerProfile(_ *gorm.DB, p *models.EmployerProfile) error {
	r.employerProfiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) FindWorkerProfileByUserID(_ *gorm.DB, userID string) (*models.WorkerProfile, error) {
	p, ok := r.workerProfiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) FindEmployerProfileByUserID(_ *gorm.DB, userID string) (*models.EmployerProfile, error) {
	p, ok := r.employerProfiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) UpdateWorkerRating(_ *gorm.DB, userID string, rating float64) error {
	r.workerRatings[userID] = rating
	return nil
}

func (r *fakeProfileRepo) UpdateEmployerRating(_ *gorm.DB, userID string, rating float64) error {
	r.employerRatings[userID] = rating
	return nil
}

type fakeApplicationRepo struct {
	applications map[string]*models.Application
}

func newFakeApplicationRepo(applications ...*models.Application) *fakeApplicationRepo {
	r := &fakeApplicationRepo{applications: make(map[string]*models.Application)}
	for _, a := range applications {
		r.applications[a.ID] = a
	}
	return r
}

func (r *fakeApplicationRepo) Create(_ *gorm.DB, a *models.Application) error {
	for _, existing := range r.applications {
		if existing.JobID == a.JobID && existing.WorkerID == a.WorkerID {
			return repositories.ErrDuplicateApplication
		}
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("app-%d", len(r.applications)+1)
	}
	r.applications[a.ID] = a
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ *gorm.DB, id string) (*models.Application, error) {
	a, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return a, nil
}

func (r *fakeApplicationRepo) FindByJob(_ *gorm.DB, jobID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.applications {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByWorker(_ *gorm.DB, workerID string, limit, offset int) ([]models.Application, int64, error) {
	all := r.byWorker(workerID)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *fakeApplicationRepo) FindRecentByWorker(_ *gorm.DB, workerID string, limit int) ([]models.Application, error) {
	all := r.byWorker(workerID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeApplicationRepo) FindAcceptedByWorker(_ *gorm.DB, workerID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.applications {
		if a.WorkerID == workerID && a.Status == models.ApplicationStatusAccepted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) CountByStatusForWorker(_ *gorm.DB, workerID string) (map[models.ApplicationStatus]int64, error) {
	counts := make(map[models.ApplicationStatus]int64)
	for _, a := range r.applications {
		if a.WorkerID == workerID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ *gorm.DB, id string, status models.ApplicationStatus) error {
	a, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeApplicationRepo) MarkCompleted(_ *gorm.DB, id string, completedAt time.Time) error {
	a, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = models.ApplicationStatusCompleted
	a.CompletedAt = &completedAt
	return nil
}

func (r *fakeApplicationRepo) byWorker(workerID string) []models.Application {
	var out []models.Application
	for _, a := range r.applications {
		if a.WorkerID == workerID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeJobRepo struct {
	jobs    map[string]*models.Job
	applied map[string]map[string]bool // workerID -> jobID
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: make(map[string]*models.Job), applied: make(map[string]map[string]bool)}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) markApplied(workerID, jobID string) {
	if r.applied[workerID] == nil {
		r.applied[workerID] = make(map[string]bool)
	}
	r.applied[workerID][jobID] = true
}

func (r *fakeJobRepo) Create(_ *gorm.DB, j *models.Job) error {
	if j.ID == "" {
		j.ID = fmt.Sprintf("job-%d", len(r.jobs)+1)
	}
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeJobRepo) FindByID(_ *gorm.DB, id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) Update(_ *gorm.DB, j *models.Job) error {
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeJobRepo) UpdateStatus(_ *gorm.DB, id string, status models.JobStatus) error {
	j, ok := r.jobs[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.Status = status
	return nil
}

func (r *fakeJobRepo) FindByEmployer(_ *gorm.DB, employerID string, limit, offset int) ([]models.Job, int64, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.EmployerID == employerID {
			out = append(out, *j)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) FindPublished(_ *gorm.DB, criteria repositories.JobSearchCriteria, limit, offset int) ([]models.Job, int64, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.Status != models.JobStatusPublished {
			continue
		}
		if criteria.Category != "" && j.Category != criteria.Category {
			continue
		}
		if criteria.JobType != "" && j.JobType != criteria.JobType {
			continue
		}
		if criteria.ExperienceLevel != "" && j.ExperienceLevel != criteria.ExperienceLevel {
			continue
		}
		if criteria.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(criteria.Location)) {
			continue
		}
		out = append(out, *j)
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) FindPublishedNotAppliedBy(_ *gorm.DB, workerID string, limit int) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.Status != models.JobStatusPublished {
			continue
		}
		if r.applied[workerID][j.ID] {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews map[string]*models.Review
	nextID  int
}

func newFakeReviewRepo(reviews ...*models.Review) *fakeReviewRepo {
	r := &fakeReviewRepo{reviews: make(map[string]*models.Review)}
	for _, rv := range reviews {
		r.reviews[rv.ID] = rv
	}
	return r
}

func (r *fakeReviewRepo) Create(_ *gorm.DB, review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.ApplicationID == review.ApplicationID &&
			existing.ReviewerID == review.ReviewerID &&
			existing.RevieweeID == review.RevieweeID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	r.nextID++
	if review.ID == "" {
		review.ID = fmt.Sprintf("review-%d", r.nextID)
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) FindByID(_ *gorm.DB, id string) (*models.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	return rv, nil
}

func (r *fakeReviewRepo) FindByApplicationAndReviewer(_ *gorm.DB, applicationID, reviewerID, revieweeID string) (*models.Review, error) {
	for _, rv := range r.reviews {
		if rv.ApplicationID == applicationID && rv.ReviewerID == reviewerID && rv.RevieweeID == revieweeID {
			return rv, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) ExistsForApplication(_ *gorm.DB, applicationID, reviewerID, revieweeID string) (bool, error) {
	_, err := r.FindByApplicationAndReviewer(nil, applicationID, reviewerID, revieweeID)
	return err == nil, nil
}

func (r *fakeReviewRepo) FindForReviewee(_ *gorm.DB, revieweeID string, filters repositories.ReviewFilters) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.RevieweeID != revieweeID {
			continue
		}
		if filters.Type != nil && rv.Type != *filters.Type {
			continue
		}
		if filters.Rating != nil && rv.Rating != *filters.Rating {
			continue
		}
		if filters.FromDate != nil && rv.CreatedAt.Before(*filters.FromDate) {
			continue
		}
		if filters.ToDate != nil && rv.CreatedAt.After(*filters.ToDate) {
			continue
		}
		out = append(out, *rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeReviewRepo) Update(_ *gorm.DB, review *models.Review) error {
	existing, ok := r.reviews[review.ID]
	if !ok {
		return repositories.ErrReviewNotFound
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeReviewRepo) Delete(_ *gorm.DB, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return repositories.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetRatingStats(_ *gorm.DB, revieweeID string) (*repositories.RatingStats, error) {
	stats := &repositories.RatingStats{RatingCounts: make(map[int]int64)}
	for i := 1; i <= 5; i++ {
		stats.RatingCounts[i] = 0
	}
	var sum int
	monthAgo := time.Now().AddDate(0, -1, 0)
	for _, rv := range r.reviews {
		if rv.RevieweeID != revieweeID {
			continue
		}
		stats.TotalReviews++
		stats.RatingCounts[rv.Rating]++
		sum += rv.Rating
		if rv.CreatedAt.After(monthAgo) {
			stats.RecentReviews++
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

func (r *fakeReviewRepo) GetAverageRating(_ *gorm.DB, revieweeID string) (float64, error) {
	stats, _ := r.GetRatingStats(nil, revieweeID)
	return stats.AverageRating, nil
}

type fakePaymentRepo struct {
	payments []*models.Payment
	daily    []repositories.DailyEarning
}

func newFakePaymentRepo(payments ...*models.Payment) *fakePaymentRepo {
	return &fakePaymentRepo{payments: payments}
}

func (r *fakePaymentRepo) Create(_ *gorm.DB, p *models.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) CreateIfAbsent(_ *gorm.DB, p *models.Payment) (bool, error) {
	exists, _ := r.ExistsByTransactionIDAndType(nil, p.TransactionID, p.Type)
	if exists {
		return false, nil
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("payment-%d", len(r.payments)+1)
	}
	r.payments = append(r.payments, p)
	return true, nil
}

func (r *fakePaymentRepo) ExistsByTransactionIDAndType(_ *gorm.DB, transactionID string, paymentType models.PaymentType) (bool, error) {
	for _, p := range r.payments {
		if p.TransactionID == transactionID && p.Type == paymentType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) SumCompletedForPayee(_ *gorm.DB, payeeID string, from, to time.Time) (float64, error) {
	var sum float64
	for _, p := range r.payments {
		if p.PayeeID == nil || *p.PayeeID != payeeID || p.Status != models.PaymentStatusCompleted {
			continue
		}
		if p.ProcessedAt == nil || p.ProcessedAt.Before(from) || !p.ProcessedAt.Before(to) {
			continue
		}
		sum += p.NetAmount
	}
	return sum, nil
}

func (r *fakePaymentRepo) DailyEarningsSeries(_ *gorm.DB, payeeID string, days int) ([]repositories.DailyEarning, error) {
	return r.daily, nil
}
