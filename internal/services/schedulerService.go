package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"trendwise/internal/models"
	"trendwise/internal/repositories"
	"trendwise/internal/utils"
)

// ArticleGenerator is the pipeline surface the scheduler drives; satisfied
// by ContentService.
type ArticleGenerator interface {
	GenerateArticleFromTrend(ctx context.Context, topic string) (*models.Article, error)
}

// SchedulerService runs generation cycles on a fixed cadence plus one
// delayed run at startup. At most one article is published per cycle, and
// cycles never overlap.
type SchedulerService struct {
	trending     *TrendingService
	generator    ArticleGenerator
	articleRepo  repositories.ArticleRepository
	email        EmailService
	interval     time.Duration
	startupDelay time.Duration

	cycleMu sync.Mutex
}

func NewSchedulerService(
	trending *TrendingService,
	generator ArticleGenerator,
	articleRepo repositories.ArticleRepository,
	email EmailService,
) *SchedulerService {
	return &SchedulerService{
		trending:     trending,
		generator:    generator,
		articleRepo:  articleRepo,
		email:        email,
		interval:     time.Hour,
		startupDelay: 5 * time.Second,
	}
}

// Start launches the cadence goroutine. It returns immediately; the loop
// stops when ctx is cancelled.
func (s *SchedulerService) Start(ctx context.Context) {
	go func() {
		startup := time.NewTimer(s.startupDelay)
		defer startup.Stop()

		select {
		case <-startup.C:
			s.RunCycle(ctx)
		case <-ctx.Done():
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RunCycle(ctx)
			case <-ctx.Done():
				log.Info().Msg("Generation scheduler stopped")
				return
			}
		}
	}()
	log.Info().Dur("interval", s.interval).Msg("Generation scheduler started")
}

// RunCycle executes one generation cycle. Overlapping triggers are dropped
// via TryLock so a slow cycle cannot double-spend the one-article cap.
// Quota errors abort the cycle; other per-trend failures advance to the
// next candidate. A cycle that publishes nothing is not an error.
func (s *SchedulerService) RunCycle(ctx context.Context) {
	if !s.cycleMu.TryLock() {
		log.Warn().Msg("Generation cycle already in progress, skipping trigger")
		utils.GenerationCyclesTotal.WithLabelValues("skipped").Inc()
		return
	}
	defer s.cycleMu.Unlock()

	log.Info().Msg("Generation cycle starting")
	trends := s.trending.GetAllTrends(true)
	if len(trends) == 0 {
		log.Warn().Msg("No trends available, cycle ends")
		utils.GenerationCyclesTotal.WithLabelValues("exhausted").Inc()
		return
	}

	for _, trend := range trends {
		exists, err := s.articleExists(ctx, trend.Title)
		if err != nil {
			log.Error().Err(err).Str("topic", trend.Title).Msg("Existence check failed, skipping trend")
			continue
		}
		if exists {
			log.Debug().Str("topic", trend.Title).Msg("Article already exists, skipping trend")
			continue
		}

		article, err := s.generator.GenerateArticleFromTrend(ctx, trend.Title)
		if err != nil {
			if errors.Is(err, ErrQuotaExceeded) {
				log.Warn().Err(err).Str("topic", trend.Title).Msg("Quota exhausted, aborting cycle")
				utils.GenerationFailuresTotal.WithLabelValues("quota").Inc()
				utils.GenerationCyclesTotal.WithLabelValues("quota_aborted").Inc()
				return
			}
			if errors.Is(err, ErrContentUnusable) {
				log.Warn().Err(err).Str("topic", trend.Title).Msg("Content unusable, trying next trend")
				utils.GenerationFailuresTotal.WithLabelValues("content_unusable").Inc()
				continue
			}
			log.Error().Err(err).Str("topic", trend.Title).Msg("Generation failed, trying next trend")
			utils.GenerationFailuresTotal.WithLabelValues("generation").Inc()
			continue
		}

		if _, err := s.articleRepo.Create(ctx, article); err != nil {
			log.Error().Err(err).Str("topic", trend.Title).Msg("Failed to store article, trying next trend")
			utils.GenerationFailuresTotal.WithLabelValues("store").Inc()
			continue
		}

		log.Info().Str("topic", trend.Title).Str("slug", article.Slug).Msg("Article published")
		utils.ArticlesGeneratedTotal.Inc()
		utils.GenerationCyclesTotal.WithLabelValues("published").Inc()
		s.notifyPublished(article)
		return
	}

	log.Info().Int("trends", len(trends)).Msg("Cycle exhausted all trends without publishing")
	utils.GenerationCyclesTotal.WithLabelValues("exhausted").Inc()
}

func (s *SchedulerService) articleExists(ctx context.Context, topic string) (bool, error) {
	_, err := s.articleRepo.FindOne(ctx, bson.M{"trending_topic": topic})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *SchedulerService) notifyPublished(article *models.Article) {
	if s.email == nil {
		return
	}
	admin := adminEmail()
	if admin == "" {
		return
	}
	subject := "New article published: " + article.Title
	body := "A new article was generated for trending topic \"" + article.TrendingTopic +
		"\".\n\nSlug: " + article.Slug + "\nRead it at: " + article.OGTags.URL + "\n"
	if err := s.email.SendEmail(admin, subject, body); err != nil {
		log.Error().Err(err).Str("to", admin).Msg("Failed to send publish notification")
	}
}
