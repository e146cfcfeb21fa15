package background

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"motocase/internal/repositories"
	"motocase/internal/services"
)

const staleFirstLoginAfterDays = 7

// JobScheduler runs the periodic maintenance work: billing reconciliation and
// onboarding reminders for accounts that never set their own password.
type JobScheduler struct {
	scheduler           gocron.Scheduler
	subscriptionService services.SubscriptionService
	userRepo            repositories.UserRepository
	mailer              services.Mailer
	loginURL            string
}

func NewJobScheduler(subscriptionService services.SubscriptionService, userRepo repositories.UserRepository, mailer services.Mailer, appBaseURL string) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:           scheduler,
		subscriptionService: subscriptionService,
		userRepo:            userRepo,
		mailer:              mailer,
		loginURL:            appBaseURL + "/login",
	}
	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Info().Msg("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.syncSubscriptionStatuses, context.Background()),
		gocron.WithName("subscription-status-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.remindStaleFirstLogins, context.Background()),
		gocron.WithName("stale-first-login-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	return nil
}

func (js *JobScheduler) syncSubscriptionStatuses(ctx context.Context) {
	if err := js.subscriptionService.SyncStatuses(ctx); err != nil {
		log.Error().Err(err).Msg("subscription status sync failed")
	}
}

// remindStaleFirstLogins nudges accounts that received a temporary password
// but never completed the first login.
func (js *JobScheduler) remindStaleFirstLogins(ctx context.Context) {
	users, err := js.userRepo.ListStaleFirstLogin(ctx, staleFirstLoginAfterDays)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stale first-login accounts")
		return
	}

	for _, user := range users {
		if err := js.mailer.SendOnboardingReminder(ctx, user.Email, js.loginURL); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send onboarding reminder")
		}
	}
	if len(users) > 0 {
		log.Info().Int("count", len(users)).Msg("sent onboarding reminders")
	}
}
