package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/ai"
)

type CacheJobs struct {
	aiService ai.AIService
}

func NewCacheJobs(aiService ai.AIService) *CacheJobs {
	return &CacheJobs{aiService: aiService}
}

func (j *CacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_ai_cache", 10*time.Minute, j.PurgeAICache)
}

func (j *CacheJobs) PurgeAICache(ctx context.Context) error {
	removed, err := j.aiService.PurgeCache(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge ai cache: %w", err)
	}
	if removed > 0 {
		slog.Info("Cron: Purged expired AI answers", "count", removed)
	}
	return nil
}
