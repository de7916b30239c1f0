package services

import (
	"context"

	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/utils"
)

// Pages loads the data behind each page once the policy has authorized it.
type Pages struct {
	questions *QuestionService
}

func NewPages(questions *QuestionService) *Pages {
	return &Pages{questions: questions}
}

func (p *Pages) Home(ctx context.Context) (models.HomePage, error) {
	qs, err := p.questions.ListAnswered(ctx)
	if err != nil {
		return models.HomePage{}, err
	}
	return models.HomePage{Questions: qs}, nil
}

func (p *Pages) Dashboard(ctx context.Context, role models.RoleSnapshot) (models.DashboardPage, error) {
	qs, err := p.questions.ListByAsker(ctx, role.UserID)
	if err != nil {
		return models.DashboardPage{}, err
	}
	return models.DashboardPage{User: role, Home: role.Home(), Questions: qs}, nil
}

func (p *Pages) Admin(ctx context.Context, role models.RoleSnapshot) (models.AdminPage, error) {
	page := models.AdminPage{User: role}
	err := utils.RunParallel(ctx,
		func(ctx context.Context) (err error) {
			page.Unanswered, err = p.questions.ListUnanswered(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			page.Answered, err = p.questions.ListAnswered(ctx)
			return err
		},
	)
	if err != nil {
		return models.AdminPage{}, err
	}
	page.PendingCount = int64(len(page.Unanswered))
	return page, nil
}
