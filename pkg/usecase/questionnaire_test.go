package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

func TestListQuestions(t *testing.T) {
	uc, _ := newTestUseCases(t)

	questions, err := uc.ListQuestions(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, questions).Length(15)
	gt.Value(t, questions[0].Order).Equal(1)
	gt.Value(t, questions[14].Order).Equal(15)
}

func TestSubmitAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("records and overwrites the answer of a sector", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, sectors := registerCompany(t, uc, "Production")

		questions, err := uc.ListQuestions(ctx)
		gt.NoError(t, err).Required()

		first, err := uc.SubmitAnswer(ctx, company.ID, sectors[0].ID, questions[0].ID, 2)
		gt.NoError(t, err).Required()
		gt.Value(t, first.Value).Equal(2)

		second, err := uc.SubmitAnswer(ctx, company.ID, sectors[0].ID, questions[0].ID, 4)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Value).Equal(4)

		answers, err := uc.ListAnswers(ctx, company.ID, sectors[0].ID)
		gt.NoError(t, err).Required()
		gt.Array(t, answers).Length(1)
		gt.Value(t, answers[0].Value).Equal(4)
	})

	t.Run("rejects values outside the 1..5 scale", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, sectors := registerCompany(t, uc, "Production")

		questions, err := uc.ListQuestions(ctx)
		gt.NoError(t, err).Required()

		for _, value := range []int{0, 6, -1} {
			_, err := uc.SubmitAnswer(ctx, company.ID, sectors[0].ID, questions[0].ID, value)
			gt.Error(t, err)
			gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
		}
	})

	t.Run("rejects answering through another company's sector", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, _ := registerCompany(t, uc, "Production")
		_, otherSectors := registerOtherCompany(t, uc)

		questions, err := uc.ListQuestions(ctx)
		gt.NoError(t, err).Required()

		_, err = uc.SubmitAnswer(ctx, company.ID, otherSectors[0].ID, questions[0].ID, 3)
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagNotFound)).True()
	})

	t.Run("rejects an inactive question", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, sectors := registerCompany(t, uc, "Production")

		retired, err := uc.Repository().Question().UpsertByOrder(ctx, &model.Question{
			Category: "work_organization",
			Order:    99,
			Text:     "retired question",
			Active:   false,
		})
		gt.NoError(t, err).Required()

		_, err = uc.SubmitAnswer(ctx, company.ID, sectors[0].ID, retired.ID, 3)
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
	})
}

func TestListAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects listing another company's sector", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, _ := registerCompany(t, uc, "Production")
		_, otherSectors := registerOtherCompany(t, uc)

		_, err := uc.ListAnswers(ctx, company.ID, otherSectors[0].ID)
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagNotFound)).True()
	})
}
