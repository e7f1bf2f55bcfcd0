package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
	"github.com/rizzedin/rizzedin-backend/internal/repository"
)

type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[string]*domain.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: map[string]*domain.Chat{}}
}

func (r *fakeChatRepo) Create(_ context.Context, chat *domain.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chats {
		if c.SwiperID == chat.SwiperID && c.SwipedID == chat.SwipedID && c.Session == chat.Session {
			return fmt.Errorf("duplicate chat")
		}
	}
	cp := *chat
	r.chats[chat.ID] = &cp
	return nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, id string) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	cp := *c
	cp.Messages = append(domain.Messages{}, c.Messages...)
	return &cp, nil
}

func (r *fakeChatRepo) GetByPair(_ context.Context, swiperID, swipedID string, session int) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chats {
		if c.SwiperID == swiperID && c.SwipedID == swipedID && c.Session == session {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrChatNotFound
}

func (r *fakeChatRepo) ListBySwiper(_ context.Context, swiperID string) ([]*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Chat
	for _, c := range r.chats {
		if c.SwiperID == swiperID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) CountSessions(_ context.Context, swiperID, swipedID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.chats {
		if c.SwiperID == swiperID && c.SwipedID == swipedID {
			n++
		}
	}
	return n, nil
}

func (r *fakeChatRepo) AppendMessage(_ context.Context, chatID string, msg domain.Message, messageCount int, state domain.ChatState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return domain.ErrChatNotFound
	}
	c.Messages = append(c.Messages, msg)
	c.MessageCount = messageCount
	c.State = state
	return nil
}

func (r *fakeChatRepo) SetDecision(_ context.Context, chatID, decision, reasoning string, rubric domain.Rubric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return domain.ErrChatNotFound
	}
	c.AIDecision = &decision
	c.AIReasoning = &reasoning
	c.AIRubric = &rubric
	c.State = domain.ChatStateTerminal
	return nil
}

type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*domain.UserProfile
	outcomes   map[string]repository.ConversationOutcome
	matchIncrs map[string]int
}

func newFakeUserRepo(users ...*domain.UserProfile) *fakeUserRepo {
	r := &fakeUserRepo{
		users:      map[string]*domain.UserProfile{},
		outcomes:   map[string]repository.ConversationOutcome{},
		matchIncrs: map[string]int{},
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetAll(context.Context) ([]*domain.UserProfile, error) { return nil, nil }
func (r *fakeUserRepo) GetByRole(context.Context, int) ([]*domain.UserProfile, error) {
	return nil, nil
}
func (r *fakeUserRepo) TopByElo(context.Context, int) ([]*domain.UserProfile, error) { return nil, nil }
func (r *fakeUserRepo) ExistsByLinkedinURL(context.Context, string) (bool, error)    { return false, nil }
func (r *fakeUserRepo) UpdateOnboarding(context.Context, *domain.UserProfile) error  { return nil }
func (r *fakeUserRepo) UpdateEnrichment(context.Context, *domain.UserProfile) error  { return nil }
func (r *fakeUserRepo) UpdateVector(context.Context, string, []float64) error        { return nil }
func (r *fakeUserRepo) UpdatePersonaPrompt(context.Context, string, string) error    { return nil }
func (r *fakeUserRepo) ApplySwipeOutcome(context.Context, string, int, string) error { return nil }
func (r *fakeUserRepo) Delete(context.Context, string) error                         { return nil }

func (r *fakeUserRepo) ApplyConversationOutcome(_ context.Context, id string, apply func(*domain.UserProfile) repository.ConversationOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	outcome := apply(u)
	u.EloScore += float64(outcome.EloDelta)
	u.ConversationsDone = outcome.ConversationsDone
	u.AvgRubric = outcome.AvgRubric
	r.outcomes[id] = outcome
	return nil
}

func (r *fakeUserRepo) IncrementMatchCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchIncrs[id]++
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[string]*domain.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[string]*domain.Match{}}
}

func (r *fakeMatchRepo) Create(_ context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *match
	r.matches[match.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetByUsers(_ context.Context, user1ID, user2ID string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.NormalizePair(user1ID, user2ID)
	for _, m := range r.matches {
		if m.User1ID == u1 && m.User2ID == u2 {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListForUser(_ context.Context, userID string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateApproval(_ context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[match.ID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	*m = *match
	return nil
}

// fakeModel returns scripted completions in order, then repeats the last.
type fakeModel struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (m *fakeModel) Generate(_ context.Context, prompt string, _ float32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "Nice to meet you!", nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

type fakeLock struct {
	mu       sync.Mutex
	busy     bool
	acquired int
}

func (l *fakeLock) Acquire(_ context.Context, _ string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return nil, domain.ErrChatBusy
	}
	l.acquired++
	return func() {}, nil
}
