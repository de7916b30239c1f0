package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/repository"
	"github.com/arzan03/AskSolve/internal/repository/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreateRejectsBlankText(t *testing.T) {
	f := newFixture()
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.questions.Create(context.Background(), text, "u1", "Ana", "Teacher")
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Create(%q) err = %v, want validation error", text, err)
		}
	}
	all, _ := f.store.Questions().Find(context.Background(), repository.QuestionFilter{})
	if len(all) != 0 {
		t.Fatalf("rejected questions were stored: %+v", all)
	}
}

func TestCreateTrimsAndDefaultsUnanswered(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id, err := f.questions.Create(ctx, "  hello  ", "u1", "Ana", "Teacher")
	if err != nil {
		t.Fatal(err)
	}

	mine, err := f.questions.ListByAsker(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 question, got %d", len(mine))
	}
	q := mine[0]
	if q.ID != id || q.Text != "hello" {
		t.Errorf("stored %+v", q)
	}
	if q.Answered || q.AnswerText != nil {
		t.Errorf("new question must be unanswered: %+v", q)
	}
	if q.AskerName != "Ana" || q.AskerPlace != "Teacher" {
		t.Errorf("asker snapshot not stored: %+v", q)
	}
	if q.CreatedAt.IsZero() {
		t.Error("createdAt not assigned")
	}
}

func TestAnswerMissingLeavesOthersUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if _, err := f.questions.Create(ctx, "real", "u1", "Ana", "Teacher"); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		if err := f.questions.Answer(ctx, id, "x"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Answer(%q) err = %v, want not found", id, err)
		}
	}

	pending, _ := f.questions.ListUnanswered(ctx)
	answered, _ := f.questions.ListAnswered(ctx)
	if len(pending) != 1 || len(answered) != 0 {
		t.Fatalf("existing question changed: pending=%d answered=%d", len(pending), len(answered))
	}
}

func TestAnswerTwiceLastWriterWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id, _ := f.questions.Create(ctx, "why?", "u1", "Ana", "Teacher")

	if err := f.questions.Answer(ctx, id.Hex(), "first"); err != nil {
		t.Fatal(err)
	}
	if err := f.questions.Answer(ctx, id.Hex(), "  second "); err != nil {
		t.Fatal(err)
	}

	answered, _ := f.questions.ListAnswered(ctx)
	if len(answered) != 1 {
		t.Fatalf("expected one answered question, got %d", len(answered))
	}
	if !answered[0].Answered || answered[0].Answer() != "second" {
		t.Fatalf("got %+v", answered[0])
	}
}

func TestAnswerRejectsBlank(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id, _ := f.questions.Create(ctx, "why?", "u1", "Ana", "Teacher")
	if err := f.questions.Answer(ctx, id.Hex(), "   "); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if pending, _ := f.questions.ListUnanswered(ctx); len(pending) != 1 {
		t.Fatal("blank answer must not mark the question answered")
	}
}

func TestListsPartitionAllQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	var ids []primitive.ObjectID
	for i, asker := range []string{"u1", "u2", "u1", "u3", "u2"} {
		id, err := f.questions.Create(ctx, strings.Repeat("q", i+1), asker, asker, "somewhere")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	for _, id := range ids[:2] {
		if err := f.questions.Answer(ctx, id.Hex(), "done"); err != nil {
			t.Fatal(err)
		}
	}

	answered, _ := f.questions.ListAnswered(ctx)
	pending, _ := f.questions.ListUnanswered(ctx)
	all, _ := f.store.Questions().Find(ctx, repository.QuestionFilter{})

	seen := map[primitive.ObjectID]int{}
	for _, q := range answered {
		if !q.Answered || strings.TrimSpace(q.Answer()) == "" {
			t.Errorf("answered list holds %+v", q)
		}
		seen[q.ID]++
	}
	for _, q := range pending {
		if q.Answered || q.AnswerText != nil {
			t.Errorf("unanswered list holds %+v", q)
		}
		seen[q.ID]++
	}
	if len(seen) != len(all) {
		t.Fatalf("partition covers %d of %d questions", len(seen), len(all))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("question %s appears in %d lists", id.Hex(), n)
		}
	}

	for _, asker := range []string{"u1", "u2", "u3", "nobody"} {
		mine, _ := f.questions.ListByAsker(ctx, asker)
		want := 0
		for _, q := range all {
			if q.AskerID == asker {
				want++
			}
		}
		if len(mine) != want {
			t.Errorf("ListByAsker(%s) = %d questions, want %d", asker, len(mine), want)
		}
		for _, q := range mine {
			if q.AskerID != asker {
				t.Errorf("ListByAsker(%s) returned %+v", asker, q)
			}
		}
	}
}

func TestMutationsPublishReplacementCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	counts, cancel, _ := f.broker.Subscribe(ctx)
	defer cancel()

	next := func() int64 {
		select {
		case n := <-counts:
			return n
		case <-time.After(time.Second):
			t.Fatal("no count published")
			return -1
		}
	}

	a, _ := f.questions.Create(ctx, "a", "u1", "Ana", "x")
	if n := next(); n != 1 {
		t.Fatalf("after create: %d", n)
	}
	_, _ = f.questions.Create(ctx, "b", "u1", "Ana", "x")
	if n := next(); n != 2 {
		t.Fatalf("after second create: %d", n)
	}
	_ = f.questions.Answer(ctx, a.Hex(), "yes")
	if n := next(); n != 1 {
		t.Fatalf("after answer: %d", n)
	}
}

func TestAskerSnapshotIsNotRejoined(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, _ = f.questions.Create(ctx, "q", "u1", "Old Name", "Old Place")

	// A later profile with different details must not leak into old questions.
	_ = f.store.Users().Create(ctx, models.User{ID: "u1", Email: "u1@example.com", DisplayName: "New Name"})

	mine, _ := f.questions.ListByAsker(ctx, "u1")
	if mine[0].AskerName != "Old Name" || mine[0].AskerPlace != "Old Place" {
		t.Fatalf("asker details changed: %+v", mine[0])
	}
}

// heldCount returns a count read before it was held back.
type heldCount struct {
	repository.Questions
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (h *heldCount) Count(ctx context.Context, f repository.QuestionFilter) (int64, error) {
	n, err := h.Questions.Count(ctx, f)
	h.once.Do(func() {
		close(h.entered)
		<-h.release
	})
	return n, err
}

type recordingBroker struct {
	mu        sync.Mutex
	published []int64
}

func (b *recordingBroker) Publish(_ context.Context, n int64) error {
	b.mu.Lock()
	b.published = append(b.published, n)
	b.mu.Unlock()
	return nil
}

func (b *recordingBroker) Subscribe(context.Context) (<-chan int64, func(), error) {
	return nil, func() {}, nil
}

func TestConcurrentCreatesPublishInReadOrder(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	held := &heldCount{Questions: store.Questions(), entered: make(chan struct{}), release: make(chan struct{})}
	broker := &recordingBroker{}
	svc := NewQuestionService(held, broker, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.Create(ctx, "first", "u1", "Ana", "x")
	}()
	<-held.entered

	go func() {
		defer wg.Done()
		_, _ = svc.Create(ctx, "second", "u2", "Ben", "x")
	}()
	time.Sleep(50 * time.Millisecond)
	close(held.release)
	wg.Wait()

	broker.mu.Lock()
	defer broker.mu.Unlock()
	if len(broker.published) != 2 {
		t.Fatalf("published %v", broker.published)
	}
	if last := broker.published[1]; last != 2 {
		t.Fatalf("last published count = %d, want 2 (published %v)", last, broker.published)
	}
}
