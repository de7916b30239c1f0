package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arzan03/AskSolve/internal/config"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/notify"
	"github.com/arzan03/AskSolve/internal/repository"
	"github.com/arzan03/AskSolve/internal/repository/memstore"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store     *memstore.Store
	idp       *LocalIdentity
	roles     *RoleResolver
	questions *QuestionService
	broker    *notify.MemoryBroker
}

func newFixture(admins ...string) *fixture {
	store := memstore.New()
	broker := notify.NewMemoryBroker()
	logger := zap.NewNop()
	return &fixture{
		store: store,
		idp: NewLocalIdentity(store.Users(), IdentityOptions{
			Admins:   config.ParseAllowList(strings.Join(admins, ",")),
			Secret:   "test-secret",
			TTL:      4 * time.Hour,
			HashCost: bcrypt.MinCost,
		}, logger),
		roles:     NewRoleResolver(store.Users()),
		questions: NewQuestionService(store.Questions(), broker, logger),
		broker:    broker,
	}
}

// signUpAndIn registers a user and returns its live session.
func (f *fixture) signUpAndIn(ctx context.Context, email, name, place string) Session {
	if _, err := f.idp.SignUp(ctx, SignUpRequest{Email: email, Password: "secret123", DisplayName: name, Place: place}); err != nil {
		panic(err)
	}
	sess, err := f.idp.SignIn(ctx, email, "secret123")
	if err != nil {
		panic(err)
	}
	return sess
}

// countingQuestions records which filters were queried.
type countingQuestions struct {
	repository.Questions
	mu    sync.Mutex
	finds []repository.QuestionFilter
}

func (c *countingQuestions) Find(ctx context.Context, f repository.QuestionFilter) ([]models.Question, error) {
	c.mu.Lock()
	c.finds = append(c.finds, f)
	c.mu.Unlock()
	return c.Questions.Find(ctx, f)
}

func (c *countingQuestions) unansweredQueries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, f := range c.finds {
		if f.Answered != nil && !*f.Answered {
			n++
		}
	}
	return n
}
