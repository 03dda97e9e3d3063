package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// Bias shaping constants. Ratings live on 1..5, so (rating-3)/2 maps to
// [-1, 1]; the weight keeps the bias small next to cosine similarity.
const (
	biasWeight = 0.1

	// repeatPenalty is subtracted per wouldWearAgain=false beyond the
	// first for a category.
	repeatPenalty = 0.05

	// biasBound clamps the final adjustment.
	biasBound = 0.25
)

// Verify interface compliance at compile time
var _ FeedbackService = (*feedbackServiceImpl)(nil)

// feedbackServiceImpl implements the FeedbackService interface.
type feedbackServiceImpl struct {
	feedbackStore       store.FeedbackStore
	recommendationStore store.RecommendationStore
	logger              *slog.Logger
}

// NewFeedbackService creates a new FeedbackService implementation.
func NewFeedbackService(
	feedbackStore store.FeedbackStore,
	recommendationStore store.RecommendationStore,
	logger *slog.Logger,
) FeedbackService {
	if feedbackStore == nil {
		panic("feedbackStore cannot be nil")
	}
	if recommendationStore == nil {
		panic("recommendationStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &feedbackServiceImpl{
		feedbackStore:       feedbackStore,
		recommendationStore: recommendationStore,
		logger:              logger.With(slog.String("component", "feedback_service")),
	}
}

// SubmitFeedback implements FeedbackService.SubmitFeedback.
func (s *feedbackServiceImpl) SubmitFeedback(
	ctx context.Context,
	userID, recommendationID uuid.UUID,
	rating int,
	comment string,
	aspects map[string]int,
	wouldWearAgain bool,
) (*domain.Feedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recommendation, err := s.recommendationStore.GetByID(ctx, recommendationID)
	if err != nil {
		if errors.Is(err, store.ErrRecommendationNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	if recommendation.UserID != userID {
		return nil, ErrRecommendationNotOwned
	}

	feedback, err := domain.NewFeedback(recommendationID, userID, rating, comment, aspects, wouldWearAgain)
	if err != nil {
		return nil, err
	}

	if err := s.feedbackStore.Create(ctx, feedback); err != nil {
		if errors.Is(err, store.ErrDuplicateFeedback) {
			log.Debug("duplicate feedback rejected",
				slog.String("user_id", userID.String()),
				slog.String("recommendation_id", recommendationID.String()))
			return nil, ErrDuplicateFeedback
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	log.Debug("feedback recorded",
		slog.String("recommendation_id", recommendationID.String()),
		slog.Int("rating", rating),
		slog.Bool("would_wear_again", wouldWearAgain))
	return feedback, nil
}

// CategoryBias implements FeedbackService.CategoryBias.
//
// For every past feedback whose recommendation matches the requested
// (occasion, season) bucket, the quality signal (rating-3)/2 is averaged
// per category that appeared in the recommendation. Categories the user
// repeatedly flagged with wouldWearAgain=false are penalized further.
func (s *feedbackServiceImpl) CategoryBias(
	ctx context.Context,
	userID uuid.UUID,
	occasion, season string,
) (map[string]float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	history, err := s.feedbackStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	if len(history) == 0 {
		return nil, nil
	}

	type categoryStats struct {
		qualitySum float64
		count      int
		rejections int
	}
	stats := make(map[string]*categoryStats)

	for _, fb := range history {
		recommendation, err := s.recommendationStore.GetByID(ctx, fb.RecommendationID)
		if err != nil {
			// A pruned recommendation just drops out of the signal.
			log.Debug("skipping feedback with missing recommendation",
				slog.String("recommendation_id", fb.RecommendationID.String()))
			continue
		}

		if !bucketMatches(recommendation.Context, occasion, season) {
			continue
		}

		quality := float64(fb.Rating-3) / 2
		for category := range recommendation.ItemsByCategory {
			st, ok := stats[category]
			if !ok {
				st = &categoryStats{}
				stats[category] = st
			}
			st.qualitySum += quality
			st.count++
			if !fb.WouldWearAgain {
				st.rejections++
			}
		}
	}

	if len(stats) == 0 {
		return nil, nil
	}

	bias := make(map[string]float64, len(stats))
	for category, st := range stats {
		b := biasWeight * st.qualitySum / float64(st.count)
		if st.rejections > 1 {
			b -= repeatPenalty * float64(st.rejections-1)
		}
		bias[category] = clampBias(b)
	}
	return bias, nil
}

// bucketMatches reports whether a past recommendation belongs to the
// requested (occasion, season) bucket. Empty request fields match all.
func bucketMatches(reqCtx domain.RecommendationContext, occasion, season string) bool {
	if occasion != "" && reqCtx.Occasion != occasion {
		return false
	}
	if season != "" && reqCtx.Season != season {
		return false
	}
	return true
}

func clampBias(b float64) float64 {
	if b > biasBound {
		return biasBound
	}
	if b < -biasBound {
		return -biasBound
	}
	return b
}
