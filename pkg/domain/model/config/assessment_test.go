package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/model/config"
)

func TestDefaultAssessmentIsValid(t *testing.T) {
	cfg := config.DefaultAssessment()
	gt.NoError(t, cfg.Validate())
	gt.Array(t, cfg.Categories).Length(5)
	gt.Array(t, cfg.Questions).Length(15)
}

func TestAssessmentConfigValidate(t *testing.T) {
	base := func() *config.AssessmentConfig {
		return &config.AssessmentConfig{
			Categories: []config.Category{
				{ID: "alpha", Orders: []int{1, 2}},
				{ID: "beta", Orders: []int{3}},
			},
			PositiveOrders:  map[int]bool{2: true},
			HighThreshold:   4.0,
			MediumThreshold: 2.5,
			Questions: []config.QuestionSeed{
				{Category: "alpha", Order: 1, Text: "first"},
				{Category: "beta", Order: 3, Text: "third"},
			},
		}
	}

	t.Run("valid configuration", func(t *testing.T) {
		gt.NoError(t, base().Validate())
	})

	t.Run("no categories", func(t *testing.T) {
		cfg := base()
		cfg.Categories = nil
		gt.Error(t, cfg.Validate())
	})

	t.Run("thresholds inverted", func(t *testing.T) {
		cfg := base()
		cfg.HighThreshold = 2.0
		gt.Error(t, cfg.Validate())
	})

	t.Run("duplicate category", func(t *testing.T) {
		cfg := base()
		cfg.Categories = append(cfg.Categories, config.Category{ID: "alpha", Orders: []int{4}})
		gt.Error(t, cfg.Validate())
	})

	t.Run("order owned by two categories", func(t *testing.T) {
		cfg := base()
		cfg.Categories[1].Orders = []int{2}
		gt.Error(t, cfg.Validate())
	})

	t.Run("category without orders", func(t *testing.T) {
		cfg := base()
		cfg.Categories[1].Orders = nil
		gt.Error(t, cfg.Validate())
	})

	t.Run("question with unowned order", func(t *testing.T) {
		cfg := base()
		cfg.Questions = append(cfg.Questions, config.QuestionSeed{Category: "alpha", Order: 9, Text: "orphan"})
		gt.Error(t, cfg.Validate())
	})

	t.Run("question without text", func(t *testing.T) {
		cfg := base()
		cfg.Questions[0].Text = ""
		gt.Error(t, cfg.Validate())
	})

	t.Run("invalid category id", func(t *testing.T) {
		cfg := base()
		cfg.Categories[0].ID = "Not Valid"
		gt.Error(t, cfg.Validate())
	})
}

func TestAssessmentConfigDescription(t *testing.T) {
	cfg := &config.AssessmentConfig{
		Categories: []config.Category{
			{ID: "alpha", Description: "Alpha risks", Orders: []int{1}},
			{ID: "beta", Orders: []int{2}},
		},
		HighThreshold:   4.0,
		MediumThreshold: 2.5,
	}

	gt.Value(t, cfg.Description("alpha")).Equal("Alpha risks")
	gt.Value(t, cfg.Description("beta")).Equal("beta")
	gt.Value(t, cfg.Description("missing")).Equal("missing")
}
