package swipe

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
	"github.com/rizzedin/rizzedin-backend/internal/scoring"
)

type SwipeUseCase struct {
	swipeRepo repository.SwipeRepository
	userRepo  repository.UserRepository
	log       *zap.Logger
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	userRepo repository.UserRepository,
	log *zap.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo: swipeRepo,
		userRepo:  userRepo,
		log:       log,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	SwipedUserID string `json:"swiped_user_id" binding:"required"`
	Direction    string `json:"direction" binding:"required,oneof=left right"`
}

// SwipeResponse represents swipe result
type SwipeResponse struct {
	Swipe *domain.Swipe `json:"swipe"`
	// Repeated reports that an earlier swipe on the same pair was
	// overwritten; repeats never move ratings again.
	Repeated bool `json:"repeated"`
}

// Record stores a swipe and applies the legacy swipe-based ELO path to the
// swiped user. A match is never created here; matching goes through the AI
// conversation.
func (uc *SwipeUseCase) Record(ctx context.Context, swiperID string, req *SwipeRequest) (*SwipeResponse, error) {
	if swiperID == req.SwipedUserID {
		return nil, domain.ErrCannotSwipeSelf
	}

	swiper, err := uc.userRepo.GetByID(ctx, swiperID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiper: %w", err)
	}
	swiped, err := uc.userRepo.GetByID(ctx, req.SwipedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiped user: %w", err)
	}

	swipe := &domain.Swipe{
		SwiperID:  swiperID,
		SwipedID:  req.SwipedUserID,
		Direction: req.Direction,
	}

	created, err := uc.swipeRepo.Upsert(ctx, swipe)
	if err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}
	if !created {
		return &SwipeResponse{Swipe: swipe, Repeated: true}, nil
	}

	var delta int
	if swipe.IsRight() {
		delta = scoring.EloChange(swiped.EloScore, swiper.EloScore, 1, scoring.KFactorSwipe)
	} else {
		delta = scoring.EloChange(swiped.EloScore, swiper.EloScore, 0, scoring.KFactorLeftSwipe)
	}

	if err := uc.userRepo.ApplySwipeOutcome(ctx, req.SwipedUserID, delta, swipe.Direction); err != nil {
		// The swipe itself is already durable; a lost rating update is
		// reported but does not fail the call.
		uc.log.Error("failed to apply swipe outcome",
			zap.String("swiped_id", req.SwipedUserID),
			zap.Int("elo_delta", delta),
			zap.Error(err))
	}

	return &SwipeResponse{Swipe: swipe}, nil
}
