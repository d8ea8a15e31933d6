package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/cli/config"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var repoCfg config.Repository
	var assessCfg config.Assessment

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, assessCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Seed the questionnaire from the assessment configuration (idempotent)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			assessmentCfg, err := assessCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assessment configuration")
			}

			for _, seed := range assessmentCfg.Questions {
				question, err := repo.Question().UpsertByOrder(ctx, &model.Question{
					Category: seed.Category,
					Order:    seed.Order,
					Text:     seed.Text,
					Active:   true,
				})
				if err != nil {
					return goerr.Wrap(err, "failed to seed question", goerr.V("order", seed.Order))
				}
				logging.Default().Info("seeded question",
					"order", question.Order,
					"category", question.Category,
				)
			}

			logging.Default().Info("questionnaire seeded", "questions", len(assessmentCfg.Questions))
			return nil
		},
	}
}
