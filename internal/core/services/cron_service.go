package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron       *cron.Cron
	jobService *JobService
}

// NewCronService creates a new cron service
func NewCronService(jobService *JobService) *CronService {
	return &CronService{
		cron:       cron.New(),
		jobService: jobService,
	}
}

// Start registers the schedules and starts the scheduler. Expired job
// postings are closed once a day shortly after midnight, and once
// immediately at startup to catch deadlines missed while down.
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc("5 0 * * *", s.closeExpiredJobs); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	go s.closeExpiredJobs()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronService) closeExpiredJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.jobService.CloseExpiredJobs(ctx); err != nil {
		log.Printf("Failed to close expired jobs: %v", err)
	}
}
