package workers

import (
	"context"
	"time"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
)

// PostWorker closes posts whose deadline has passed and prunes expired
// refresh tokens.
type PostWorker struct {
	postRepo         repositories.PostRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewPostWorker(postRepo repositories.PostRepository, refreshTokenRepo repositories.RefreshTokenRepository) *PostWorker {
	return &PostWorker{postRepo: postRepo, refreshTokenRepo: refreshTokenRepo}
}

func (w *PostWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *PostWorker) run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("post worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *PostWorker) tick(ctx context.Context) {
	closed, err := w.postRepo.CloseExpired(ctx, time.Now())
	if err != nil {
		logger.WithError(err).Error("failed to close expired posts")
	} else if closed > 0 {
		logger.Info("closed expired posts", "count", closed)
	}

	pruned, err := w.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		logger.WithError(err).Error("failed to prune refresh tokens")
	} else if pruned > 0 {
		logger.Info("pruned expired refresh tokens", "count", pruned)
	}
}
