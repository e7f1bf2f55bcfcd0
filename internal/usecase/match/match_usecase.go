package match

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

type MatchUseCase struct {
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	log       *zap.Logger
}

func NewMatchUseCase(matchRepo repository.MatchRepository, userRepo repository.UserRepository, log *zap.Logger) *MatchUseCase {
	return &MatchUseCase{matchRepo: matchRepo, userRepo: userRepo, log: log}
}

// MatchView is one row of a user's match list: the match state plus the
// other side's card. LinkedinURL is only populated once both sides have
// approved; until then contact details stay hidden.
type MatchView struct {
	MatchID      string    `json:"match_id"`
	User         Partner   `json:"user"`
	YouApproved  bool      `json:"you_approved"`
	TheyApproved bool      `json:"they_approved"`
	BothApproved bool      `json:"both_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type Partner struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Image       *string `json:"image,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	LinkedinURL *string `json:"linkedin_url,omitempty"`
}

// Approve records the caller's manual approval on a match. Approving twice
// is a no-op; the contact gate opens when the second side approves.
func (uc *MatchUseCase) Approve(ctx context.Context, matchID, callerID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.ApproveBy(callerID) {
		return nil, domain.ErrNotMatchParticipant
	}
	if err := uc.matchRepo.UpdateApproval(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// Get returns a single match to one of its participants.
func (uc *MatchUseCase) Get(ctx context.Context, matchID, callerID string) (*MatchView, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(callerID) {
		return nil, domain.ErrNotMatchParticipant
	}
	return uc.view(ctx, match, callerID)
}

// ListForUser returns the caller's matches, newest first.
func (uc *MatchUseCase) ListForUser(ctx context.Context, callerID string) ([]MatchView, error) {
	matches, err := uc.matchRepo.ListForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		v, err := uc.view(ctx, m, callerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// The counterpart was deleted; skip the stale row.
				continue
			}
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (uc *MatchUseCase) view(ctx context.Context, match *domain.Match, callerID string) (*MatchView, error) {
	otherID, _ := match.OtherUser(callerID)
	other, err := uc.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	youApproved := match.User1Approved
	theyApproved := match.User2Approved
	if match.User2ID == callerID {
		youApproved, theyApproved = theyApproved, youApproved
	}

	partner := Partner{
		ID:    other.ID,
		Name:  other.DisplayName(),
		Image: other.Image,
		Bio:   other.Bio,
	}
	if match.BothApproved {
		partner.LinkedinURL = other.LinkedinURL
	}

	return &MatchView{
		MatchID:      match.ID,
		User:         partner,
		YouApproved:  youApproved,
		TheyApproved: theyApproved,
		BothApproved: match.BothApproved,
		CreatedAt:    match.CreatedAt,
	}, nil
}
