package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
	"github.com/rizzedin/rizzedin-backend/internal/scoring"
)

// Sampling temperatures per call kind. Persona turns run hot for variety;
// evaluations run cooler so the JSON verdict stays well-formed.
const (
	personaTemperature    float32 = 0.8
	evaluationTemperature float32 = 0.7
)

// ModelClient is the scoring-model surface the chat flow needs.
type ModelClient interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Locker serializes sends per chat.
type Locker interface {
	Acquire(ctx context.Context, chatID string) (func(), error)
}

type ChatUseCase struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	matchRepo repository.MatchRepository
	model     ModelClient
	locks     Locker
	log       *zap.Logger
	now       func() time.Time
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
	model ModelClient,
	locks Locker,
	log *zap.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		matchRepo: matchRepo,
		model:     model,
		locks:     locks,
		log:       log,
		now:       time.Now,
	}
}

// SendResult is what a send returns to the caller: the persona's reply, or
// the final verdict message when the send was the tenth.
type SendResult struct {
	ChatID       string           `json:"chat_id"`
	Reply        domain.Message   `json:"reply"`
	MessageCount int              `json:"message_count"`
	State        domain.ChatState `json:"state"`
	Evaluated    bool             `json:"evaluated"`
	Decision     string           `json:"decision,omitempty"`
}

// GetOrCreate returns the canonical (session 0) chat for the pair, creating
// an empty one on first open.
func (uc *ChatUseCase) GetOrCreate(ctx context.Context, swiperID, swipedID string) (*domain.Chat, error) {
	chat, err := uc.chatRepo.GetByPair(ctx, swiperID, swipedID, 0)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, domain.ErrChatNotFound) {
		return nil, err
	}

	chat = &domain.Chat{
		ID:       uuid.NewString(),
		SwiperID: swiperID,
		SwipedID: swipedID,
		Session:  0,
		Messages: domain.Messages{},
		State:    domain.ChatStateEmpty,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		// Lost a create race; the existing chat wins.
		if existing, gerr := uc.chatRepo.GetByPair(ctx, swiperID, swipedID, 0); gerr == nil {
			return existing, nil
		}
		return nil, err
	}
	return chat, nil
}

// GetChat returns a chat to one of its participants.
func (uc *ChatUseCase) GetChat(ctx context.Context, chatID, callerID string) (*domain.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.SwiperID != callerID && chat.SwipedID != callerID {
		return nil, domain.ErrForbidden
	}
	return chat, nil
}

// ChatSummary is one row of a user's chat list.
type ChatSummary struct {
	ChatID       string           `json:"chat_id"`
	Session      int              `json:"session"`
	State        domain.ChatState `json:"state"`
	MessageCount int              `json:"message_count"`
	Decision     *string          `json:"decision,omitempty"`
	User         ChatPartner      `json:"user"`
	LastMessage  *domain.Message  `json:"last_message,omitempty"`
}

type ChatPartner struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// ListChats returns the caller's conversations, newest first, with the
// swiped user's card attached.
func (uc *ChatUseCase) ListChats(ctx context.Context, swiperID string) ([]ChatSummary, error) {
	chats, err := uc.chatRepo.ListBySwiper(ctx, swiperID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		partner, err := uc.userRepo.GetByID(ctx, c.SwipedID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}

		s := ChatSummary{
			ChatID:       c.ID,
			Session:      c.Session,
			State:        c.State,
			MessageCount: c.MessageCount,
			Decision:     c.AIDecision,
			User: ChatPartner{
				ID:    partner.ID,
				Name:  partner.DisplayName(),
				Image: partner.Image,
				Bio:   partner.Bio,
			},
		}
		if n := len(c.Messages); n > 0 {
			last := c.Messages[n-1]
			s.LastMessage = &last
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// NewPracticeSession opens an extra conversation with the same persona.
// Only admins may rerun a pair; the canonical chat stays untouched.
func (uc *ChatUseCase) NewPracticeSession(ctx context.Context, callerID, swipedID string) (*domain.Chat, error) {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	session, err := uc.chatRepo.CountSessions(ctx, callerID, swipedID)
	if err != nil {
		return nil, err
	}

	chat := &domain.Chat{
		ID:       uuid.NewString(),
		SwiperID: callerID,
		SwipedID: swipedID,
		Session:  session,
		Messages: domain.Messages{},
		State:    domain.ChatStateEmpty,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// SendMessage appends a user message to the pair's canonical chat and
// returns the persona's reply, or the verdict on the tenth message.
func (uc *ChatUseCase) SendMessage(ctx context.Context, swiperID, swipedID, text string) (*SendResult, error) {
	chat, err := uc.GetOrCreate(ctx, swiperID, swipedID)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, chat.ID, swiperID, text)
}

// SendToSession is the by-id variant used for practice sessions.
func (uc *ChatUseCase) SendToSession(ctx context.Context, chatID, callerID, text string) (*SendResult, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.SwiperID != callerID {
		return nil, domain.ErrForbidden
	}
	return uc.send(ctx, chatID, callerID, text)
}

func (uc *ChatUseCase) send(ctx context.Context, chatID, swiperID, text string) (*SendResult, error) {
	release, err := uc.locks.Acquire(ctx, chatID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read under the lock; the cap check must see the latest count.
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.State == domain.ChatStateEvaluating {
		// A failed verdict write strands the chat here. Rerun the
		// evaluation instead of rejecting the send; the incoming text is
		// dropped since the ten user turns are already in.
		swiped, err := uc.userRepo.GetByID(ctx, chat.SwipedID)
		if err != nil {
			return nil, err
		}
		return uc.evaluate(ctx, chat, swiperID, swiped)
	}
	if !chat.AcceptsUserInput() {
		return nil, domain.ErrMaxMessagesReached
	}

	newCount := chat.MessageCount + 1
	state := domain.ChatStateActive
	if newCount == domain.MaxUserMessages {
		state = domain.ChatStateEvaluating
	}

	userMsg := domain.Message{
		Role:      domain.RoleMessageUser,
		Content:   text,
		Timestamp: uc.now(),
	}
	if err := uc.chatRepo.AppendMessage(ctx, chatID, userMsg, newCount, state); err != nil {
		return nil, err
	}
	chat.Messages = append(chat.Messages, userMsg)
	chat.MessageCount = newCount
	chat.State = state

	swiped, err := uc.userRepo.GetByID(ctx, chat.SwipedID)
	if err != nil {
		return nil, err
	}

	if newCount == domain.MaxUserMessages {
		return uc.evaluate(ctx, chat, swiperID, swiped)
	}

	reply, err := uc.model.Generate(ctx, PersonaPrompt(swiped, chat.Messages), personaTemperature)
	if err != nil {
		// The user message stays persisted; the client retries the reply.
		uc.log.Warn("persona reply failed",
			zap.String("chat_id", chatID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	assistantMsg := domain.Message{
		Role:      domain.RoleMessageAssistant,
		Content:   reply,
		Timestamp: uc.now(),
	}
	if err := uc.chatRepo.AppendMessage(ctx, chatID, assistantMsg, newCount, domain.ChatStateActive); err != nil {
		return nil, err
	}

	return &SendResult{
		ChatID:       chatID,
		Reply:        assistantMsg,
		MessageCount: newCount,
		State:        domain.ChatStateActive,
	}, nil
}

// evaluate runs the end-of-conversation verdict, updates the swiper's
// stats, creates the match on approval and appends the closing message.
// Model failures never leave the chat stuck in evaluating: the rejecting
// fallback applies and the chat terminates.
func (uc *ChatUseCase) evaluate(ctx context.Context, chat *domain.Chat, swiperID string, swiped *domain.UserProfile) (*SendResult, error) {
	ev := FallbackEvaluation()
	raw, err := uc.model.Generate(ctx, EvaluationPrompt(chat.Messages), evaluationTemperature)
	if err != nil {
		uc.log.Warn("evaluation call failed, applying fallback",
			zap.String("chat_id", chat.ID), zap.Error(err))
	} else {
		var ok bool
		if ev, ok = ParseEvaluation(raw); !ok {
			uc.log.Warn("evaluation output unparseable, applying fallback",
				zap.String("chat_id", chat.ID))
		}
	}

	if err := uc.chatRepo.SetDecision(ctx, chat.ID, ev.Decision, ev.Reasoning, ev.Rubric); err != nil {
		return nil, err
	}

	if err := uc.applyOutcome(ctx, swiperID, swiped, ev); err != nil {
		// Stats are best-effort once the verdict is recorded.
		uc.log.Error("applying conversation outcome failed",
			zap.String("chat_id", chat.ID), zap.String("swiper_id", swiperID), zap.Error(err))
	}

	if ev.Decision == domain.DecisionApproved {
		if err := uc.createMatch(ctx, swiperID, swiped.ID); err != nil {
			uc.log.Error("creating match failed",
				zap.String("chat_id", chat.ID), zap.Error(err))
		}
	}

	finalMsg := domain.Message{
		Role:      domain.RoleMessageAssistant,
		Content:   finalMessage(ev.Decision, ev.Reasoning),
		Timestamp: uc.now(),
	}
	if err := uc.chatRepo.AppendMessage(ctx, chat.ID, finalMsg, chat.MessageCount, domain.ChatStateTerminal); err != nil {
		return nil, err
	}

	return &SendResult{
		ChatID:       chat.ID,
		Reply:        finalMsg,
		MessageCount: chat.MessageCount,
		State:        domain.ChatStateTerminal,
		Evaluated:    true,
		Decision:     ev.Decision,
	}, nil
}

// applyOutcome moves the swiper's rating and rubric average. The swiper is
// the one being scored: the persona judged them. The stats are computed
// inside the repository's row lock; the per-chat lock does not cover two
// of the swiper's chats finishing at once.
func (uc *ChatUseCase) applyOutcome(ctx context.Context, swiperID string, swiped *domain.UserProfile, ev Evaluation) error {
	return uc.userRepo.ApplyConversationOutcome(ctx, swiperID, func(swiper *domain.UserProfile) repository.ConversationOutcome {
		delta := scoring.EloChange(
			swiper.EloScore, swiped.EloScore,
			scoring.NormalizeOverall(ev.Rubric.Overall), scoring.KFactorConversation,
		)
		done := swiper.ConversationsDone + 1
		avg := swiper.AvgRubric.RunningMean(ev.Rubric, done)
		score := scoring.ProfileScore(scoring.ProfileScoreInput{
			AvgRubric:         avg,
			ConversationsDone: done,
			RightSwipes:       swiper.TotalRightSwipes,
			LeftSwipes:        swiper.TotalLeftSwipes,
			MatchCount:        swiper.MatchCount,
			JoinedAt:          swiper.CreatedAt,
		}, uc.now())

		return repository.ConversationOutcome{
			EloDelta:          delta,
			Approved:          ev.Decision == domain.DecisionApproved,
			AvgRubric:         avg,
			ConversationsDone: done,
			ProfileScore:      score,
		}
	})
}

// createMatch creates the pair's match once. Repeat approvals, including
// practice sessions, find the existing row and do nothing.
func (uc *ChatUseCase) createMatch(ctx context.Context, userA, userB string) error {
	u1, u2 := domain.NormalizePair(userA, userB)

	_, err := uc.matchRepo.GetByUsers(ctx, u1, u2)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return err
	}

	match := &domain.Match{
		ID:      uuid.NewString(),
		User1ID: u1,
		User2ID: u2,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return err
	}

	for _, id := range []string{u1, u2} {
		if err := uc.userRepo.IncrementMatchCount(ctx, id); err != nil {
			uc.log.Warn("incrementing match count failed",
				zap.String("user_id", id), zap.Error(err))
		}
	}
	return nil
}
