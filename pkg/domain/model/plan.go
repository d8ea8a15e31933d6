package model

import (
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// ActionPlan is a 5W2H remediation plan linked to a risk record
type ActionPlan struct {
	ID        types.PlanID
	RiskID    types.RiskID
	What      string
	Why       string
	Who       string
	Where     string // optional
	When      time.Time
	How       string
	HowMuch   float64 // estimated cost; 0 means not informed
	Status    types.ActionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActionPlanPatch carries a partial update of an action plan. Nil fields are
// left untouched.
type ActionPlanPatch struct {
	What    *string
	Why     *string
	Who     *string
	Where   *string
	When    *time.Time
	How     *string
	HowMuch *float64
	Status  *types.ActionStatus
}
