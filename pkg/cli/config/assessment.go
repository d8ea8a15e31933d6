package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/psq-lab/psiquo/pkg/domain/model/config"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Assessment holds CLI flags for the scoring configuration. Without a
// config file the built-in questionnaire and thresholds apply.
type Assessment struct {
	path string
}

// assessmentFile is the TOML layout of an assessment configuration file
type assessmentFile struct {
	HighThreshold   float64            `toml:"high_threshold"`
	MediumThreshold float64            `toml:"medium_threshold"`
	PositiveOrders  []int              `toml:"positive_orders"`
	Categories      []categoryFile     `toml:"category"`
	Questions       []questionSeedFile `toml:"question"`
}

type categoryFile struct {
	ID          string `toml:"id"`
	Description string `toml:"description"`
	Orders      []int  `toml:"orders"`
}

type questionSeedFile struct {
	Category string `toml:"category"`
	Order    int    `toml:"order"`
	Text     string `toml:"text"`
}

// Flags returns CLI flags for assessment configuration
func (a *Assessment) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "assessment-config",
			Usage:       "Path to a TOML file overriding the built-in scoring configuration",
			Sources:     cli.EnvVars("PSIQUO_ASSESSMENT_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads and validates the scoring configuration
func (a *Assessment) Configure() (*domainConfig.AssessmentConfig, error) {
	if a.path == "" {
		return domainConfig.DefaultAssessment(), nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read assessment config", goerr.V("path", a.path))
	}

	var file assessmentFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse assessment config", goerr.V("path", a.path))
	}

	cfg := &domainConfig.AssessmentConfig{
		HighThreshold:   file.HighThreshold,
		MediumThreshold: file.MediumThreshold,
		PositiveOrders:  make(map[int]bool, len(file.PositiveOrders)),
	}
	for _, order := range file.PositiveOrders {
		cfg.PositiveOrders[order] = true
	}
	for _, cat := range file.Categories {
		cfg.Categories = append(cfg.Categories, domainConfig.Category{
			ID:          types.CategoryID(cat.ID),
			Description: cat.Description,
			Orders:      cat.Orders,
		})
	}
	for _, q := range file.Questions {
		cfg.Questions = append(cfg.Questions, domainConfig.QuestionSeed{
			Category: types.CategoryID(q.Category),
			Order:    q.Order,
			Text:     q.Text,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment config", goerr.V("path", a.path))
	}

	logging.Default().Info("Loaded assessment configuration",
		"path", a.path,
		"categories", len(cfg.Categories),
		"questions", len(cfg.Questions),
	)

	return cfg, nil
}
