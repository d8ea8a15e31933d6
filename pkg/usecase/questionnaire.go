package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// ListQuestions returns the active questionnaire in order
func (uc *UseCases) ListQuestions(ctx context.Context) ([]*model.Question, error) {
	questions, err := uc.repo.Question().ListActive(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions")
	}
	return questions, nil
}

// SubmitAnswer records a sector's response to one question. Submitting a
// second time for the same (sector, question) overwrites the value.
func (uc *UseCases) SubmitAnswer(ctx context.Context, companyID types.CompanyID, sectorID types.SectorID, questionID types.QuestionID, value int) (*model.Answer, error) {
	if value < 1 || value > 5 {
		return nil, goerr.New("answer value must be between 1 and 5",
			goerr.T(types.ErrTagValidation), goerr.V("value", value))
	}

	if _, err := uc.sectorOwnedBy(ctx, companyID, sectorID); err != nil {
		return nil, err
	}

	question, err := uc.repo.Question().Get(ctx, questionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get question", goerr.V("question_id", questionID))
	}
	if !question.Active {
		return nil, goerr.New("question is inactive",
			goerr.T(types.ErrTagValidation), goerr.V("question_id", questionID))
	}

	answer, err := uc.repo.Answer().Upsert(ctx, &model.Answer{
		SectorID:   sectorID,
		QuestionID: questionID,
		Value:      value,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store answer",
			goerr.V(types.SectorIDKey, sectorID), goerr.V("question_id", questionID))
	}
	return answer, nil
}

// ListAnswers returns the answers of one sector of the company
func (uc *UseCases) ListAnswers(ctx context.Context, companyID types.CompanyID, sectorID types.SectorID) ([]*model.Answer, error) {
	if _, err := uc.sectorOwnedBy(ctx, companyID, sectorID); err != nil {
		return nil, err
	}

	answers, err := uc.repo.Answer().ListBySector(ctx, sectorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list answers", goerr.V(types.SectorIDKey, sectorID))
	}
	return answers, nil
}
