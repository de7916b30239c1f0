// Package memstore is an in-process document store used for local runs
// (STORE=memory) and tests.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]models.User
	emails    map[string]string
	questions map[primitive.ObjectID]models.Question
	now       func() time.Time
}

var (
	_ repository.Users     = (*UserStore)(nil)
	_ repository.Questions = (*QuestionStore)(nil)
)

func New() *Store {
	return &Store{
		users:     make(map[string]models.User),
		emails:    make(map[string]string),
		questions: make(map[primitive.ObjectID]models.Question),
		now:       time.Now,
	}
}

// UserStore and QuestionStore are views over the same Store.
type UserStore struct{ s *Store }

type QuestionStore struct{ s *Store }

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

func (s *Store) Questions() *QuestionStore { return &QuestionStore{s: s} }

func (u *UserStore) Create(_ context.Context, user models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, taken := u.s.emails[user.Email]; taken {
		return apperr.Conflict("Email is already taken.")
	}
	if _, taken := u.s.users[user.ID]; taken {
		return apperr.Conflict("user already exists")
	}
	u.s.users[user.ID] = user
	u.s.emails[user.Email] = user.ID
	return nil
}

func (u *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, apperr.Store("failed to read user", err)
	}
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	id, ok := u.s.emails[email]
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u.s.users[id], nil
}

func (q *QuestionStore) Insert(ctx context.Context, nq models.NewQuestion) (models.Question, error) {
	if err := ctx.Err(); err != nil {
		return models.Question{}, apperr.Store("failed to save question", err)
	}
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	doc := models.Question{
		ID:         primitive.NewObjectID(),
		Text:       nq.Text,
		AskerID:    nq.AskerID,
		AskerName:  nq.AskerName,
		AskerPlace: nq.AskerPlace,
		CreatedAt:  q.s.now().UTC(),
	}
	q.s.questions[doc.ID] = doc
	return clone(doc), nil
}

func (q *QuestionStore) Find(ctx context.Context, f repository.QuestionFilter) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Store("failed to fetch questions", err)
	}
	q.s.mu.RLock()
	out := make([]models.Question, 0, len(q.s.questions))
	for _, doc := range q.s.questions {
		if matches(doc, f) {
			out = append(out, clone(doc))
		}
	}
	q.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) > 0
	})
	return out, nil
}

func (q *QuestionStore) Count(ctx context.Context, f repository.QuestionFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperr.Store("failed to count questions", err)
	}
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	var n int64
	for _, doc := range q.s.questions {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

func (q *QuestionStore) SetAnswer(ctx context.Context, id primitive.ObjectID, answer string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Store("failed to save answer", err)
	}
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	doc, ok := q.s.questions[id]
	if !ok {
		return apperr.NotFound("Question no longer exists")
	}
	now := q.s.now().UTC()
	doc.Answered = true
	doc.AnswerText = &answer
	doc.AnsweredAt = &now
	q.s.questions[id] = doc
	return nil
}

func matches(q models.Question, f repository.QuestionFilter) bool {
	if f.Answered != nil && q.Answered != *f.Answered {
		return false
	}
	if f.AskerID != nil && q.AskerID != *f.AskerID {
		return false
	}
	return true
}

func clone(q models.Question) models.Question {
	if q.AnswerText != nil {
		a := *q.AnswerText
		q.AnswerText = &a
	}
	if q.AnsweredAt != nil {
		t := *q.AnsweredAt
		q.AnsweredAt = &t
	}
	return q
}
