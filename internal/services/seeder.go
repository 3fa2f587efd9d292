package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"gorm.io/gorm"
)

type SeedOptions struct {
	Jobs         int
	Candidates   int
	Applications int
	Seed         uint64
}

func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Jobs: 25, Candidates: 1000, Applications: 500}
}

// Seeder fills empty tables with generated demo data. Every seeded
// application starts at the applied stage.
type Seeder struct {
	DB     *gorm.DB
	faker  *gofakeit.Faker
	opts   SeedOptions
	logger *slog.Logger
}

func NewSeeder(db *gorm.DB, opts SeedOptions, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{DB: db, faker: gofakeit.New(opts.Seed), opts: opts, logger: logger}
}

func (s *Seeder) SeedDatabase(ctx context.Context) error {
	db := s.DB.WithContext(ctx)

	var jobCount int64
	if err := db.Model(&models.Job{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		s.logger.Info("seeding jobs", slog.Int("count", s.opts.Jobs))
		jobs := make([]models.Job, 0, s.opts.Jobs)
		for i := 0; i < s.opts.Jobs; i++ {
			status := models.JobStatusActive
			if s.faker.IntRange(0, 3) == 0 {
				status = models.JobStatusArchived
			}
			title := s.faker.JobTitle()
			jobs = append(jobs, models.Job{
				Title:        fmt.Sprintf("%s %s", s.faker.JobLevel(), title),
				Description:  fmt.Sprintf("%s %s role working on %s.", s.faker.JobDescriptor(), strings.ToLower(title), s.faker.BS()),
				Requirements: fmt.Sprintf("%s, %s", s.faker.ProgrammingLanguage(), s.faker.ProgrammingLanguage()),
				Status:       status,
				Order:        i + 1,
			})
		}
		if err := db.CreateInBatches(&jobs, 100).Error; err != nil {
			return err
		}
	}

	var candidateCount int64
	if err := db.Model(&models.Candidate{}).Count(&candidateCount).Error; err != nil {
		return err
	}
	if candidateCount == 0 {
		s.logger.Info("seeding candidates", slog.Int("count", s.opts.Candidates))
		candidates := make([]models.Candidate, 0, s.opts.Candidates)
		for i := 0; i < s.opts.Candidates; i++ {
			// index suffix keeps generated emails unique
			email := strings.ToLower(fmt.Sprintf("%d.%s", i, s.faker.Email()))
			candidates = append(candidates, models.Candidate{Name: s.faker.Name(), Email: email})
		}
		if err := db.CreateInBatches(&candidates, 200).Error; err != nil {
			return err
		}
	}

	var applicationCount int64
	if err := db.Model(&models.Application{}).Count(&applicationCount).Error; err != nil {
		return err
	}
	if applicationCount > 0 {
		return nil
	}

	var jobs []models.Job
	if err := db.Where("status = ?", models.JobStatusActive).Find(&jobs).Error; err != nil {
		return err
	}
	var candidates []models.Candidate
	if err := db.Find(&candidates).Error; err != nil {
		return err
	}
	if len(jobs) == 0 || len(candidates) == 0 {
		return nil
	}

	limit := min(s.opts.Applications, len(candidates))
	used := make(map[string]struct{}, limit)
	apps := make([]models.Application, 0, limit)
	now := time.Now().UTC()
	for i := 0; i < limit; i++ {
		job := jobs[s.faker.IntRange(0, len(jobs)-1)]
		candidate := candidates[s.faker.IntRange(0, len(candidates)-1)]
		key := candidate.ID + "-" + job.ID
		for attempts := 0; attempts < 10; attempts++ {
			if _, taken := used[key]; !taken {
				break
			}
			candidate = candidates[s.faker.IntRange(0, len(candidates)-1)]
			key = candidate.ID + "-" + job.ID
		}
		if _, taken := used[key]; taken {
			continue
		}
		used[key] = struct{}{}
		apps = append(apps, models.Application{
			CandidateID: candidate.ID,
			JobID:       job.ID,
			Stage:       pipeline.StageApplied,
			AppliedAt:   s.faker.DateRange(now.AddDate(0, 0, -30), now).UTC(),
		})
	}
	if err := db.CreateInBatches(&apps, 200).Error; err != nil {
		return err
	}
	s.logger.Info("applications seeded", slog.Int("count", len(apps)))
	return nil
}
