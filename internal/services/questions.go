package services

import (
	"context"
	"strings"
	"sync"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/notify"
	"github.com/arzan03/AskSolve/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// QuestionService is the read/write contract over the questions collection.
//
// Answer is last-writer-wins: two administrators answering the same question
// concurrently both succeed and the later write is what remains stored.
type QuestionService struct {
	repo   repository.Questions
	broker notify.Broker
	logger *zap.Logger

	// publishMu keeps counts reaching the broker in the order they were read.
	publishMu sync.Mutex
}

func NewQuestionService(repo repository.Questions, broker notify.Broker, logger *zap.Logger) *QuestionService {
	return &QuestionService{repo: repo, broker: broker, logger: logger}
}

func (s *QuestionService) ListAnswered(ctx context.Context) ([]models.Question, error) {
	return s.repo.Find(ctx, repository.Answered(true))
}

func (s *QuestionService) ListUnanswered(ctx context.Context) ([]models.Question, error) {
	return s.repo.Find(ctx, repository.Answered(false))
}

func (s *QuestionService) ListByAsker(ctx context.Context, askerID string) ([]models.Question, error) {
	return s.repo.Find(ctx, repository.ByAsker(askerID))
}

func (s *QuestionService) CountUnanswered(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, repository.Answered(false))
}

// Create stores a new unanswered question. The asker's name and place are
// captured as given and never refreshed from the profile.
func (s *QuestionService) Create(ctx context.Context, text, askerID, askerName, askerPlace string) (primitive.ObjectID, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return primitive.NilObjectID, apperr.Validation("text", "Question text is required.")
	}
	if askerID == "" {
		return primitive.NilObjectID, apperr.Unauthenticated("User not logged in.")
	}

	q, err := s.repo.Insert(ctx, models.NewQuestion{
		Text:       text,
		AskerID:    askerID,
		AskerName:  askerName,
		AskerPlace: askerPlace,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.publishPending(ctx)
	return q.ID, nil
}

// Answer sets the answer on questionID, overwriting an earlier one.
func (s *QuestionService) Answer(ctx context.Context, questionID, answerText string) error {
	answerText = strings.TrimSpace(answerText)
	if answerText == "" {
		return apperr.Validation("answer", "Answer text is required.")
	}
	id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return apperr.NotFound("Question no longer exists")
	}
	if err := s.repo.SetAnswer(ctx, id, answerText); err != nil {
		return err
	}

	s.publishPending(ctx)
	return nil
}

// publishPending pushes the full unanswered count. Failures only cost
// subscribers one update, so they are logged and not returned.
func (s *QuestionService) publishPending(ctx context.Context) {
	if s.broker == nil {
		return
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	n, err := s.CountUnanswered(ctx)
	if err != nil {
		s.logger.Warn("count pending questions", zap.Error(err))
		return
	}
	if err := s.broker.Publish(ctx, n); err != nil {
		s.logger.Warn("publish pending count", zap.Error(err))
	}
}
