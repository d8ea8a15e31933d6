package config

import "github.com/psq-lab/psiquo/pkg/domain/types"

// Category IDs of the built-in NR-01 psychosocial questionnaire
const (
	CategoryWorkOrganization   types.CategoryID = "work_organization"
	CategoryInterpersonal      types.CategoryID = "interpersonal_relations"
	CategoryWorkingConditions  types.CategoryID = "working_conditions"
	CategoryViolenceHarassment types.CategoryID = "violence_harassment"
	CategoryRecognitionReward  types.CategoryID = "recognition_reward"
)

// DefaultAssessment returns the built-in NR-01 configuration: five
// categories of three questions each, the positive-scale question set, and
// the level thresholds.
func DefaultAssessment() *AssessmentConfig {
	return &AssessmentConfig{
		Categories: []Category{
			{
				ID:          CategoryWorkOrganization,
				Description: "Psychosocial Risk - Work Organization",
				Orders:      []int{1, 2, 3},
			},
			{
				ID:          CategoryInterpersonal,
				Description: "Psychosocial Risk - Interpersonal Relations",
				Orders:      []int{4, 5, 6},
			},
			{
				ID:          CategoryWorkingConditions,
				Description: "Psychosocial Risk - Working Conditions",
				Orders:      []int{7, 8, 9},
			},
			{
				ID:          CategoryViolenceHarassment,
				Description: "Psychosocial Risk - Violence and Harassment",
				Orders:      []int{10, 11, 12},
			},
			{
				ID:          CategoryRecognitionReward,
				Description: "Psychosocial Risk - Recognition and Reward",
				Orders:      []int{13, 14, 15},
			},
		},
		// Questions where a high raw answer is a good outcome; their score
		// is inverted (6 - value) before averaging.
		PositiveOrders: map[int]bool{
			2: true, 4: true, 6: true, 7: true, 8: true, 13: true, 14: true,
		},
		HighThreshold:   4.0,
		MediumThreshold: 2.5,
		Questions: []QuestionSeed{
			{Category: CategoryWorkOrganization, Order: 1, Text: "How often do you feel you have more work than you can finish within the deadline?"},
			{Category: CategoryWorkOrganization, Order: 2, Text: "How often do you have autonomy to decide how to carry out your tasks?"},
			{Category: CategoryWorkOrganization, Order: 3, Text: "How often are the goals set for you realistic and achievable?"},
			{Category: CategoryInterpersonal, Order: 4, Text: "How often do you receive support from colleagues when you need it?"},
			{Category: CategoryInterpersonal, Order: 5, Text: "How often are there unresolved conflicts between team members?"},
			{Category: CategoryInterpersonal, Order: 6, Text: "How often do you feel respected by your immediate manager?"},
			{Category: CategoryWorkingConditions, Order: 7, Text: "How often does your workplace offer adequate conditions (lighting, temperature, noise)?"},
			{Category: CategoryWorkingConditions, Order: 8, Text: "How often do you have the resources you need to do your job?"},
			{Category: CategoryWorkingConditions, Order: 9, Text: "How often can you balance professional and personal life?"},
			{Category: CategoryViolenceHarassment, Order: 10, Text: "How often do you witness or experience rudeness or disrespect at work?"},
			{Category: CategoryViolenceHarassment, Order: 11, Text: "How often do you feel excessively pressured by superiors?"},
			{Category: CategoryViolenceHarassment, Order: 12, Text: "How often do you observe unfair differential treatment between employees?"},
			{Category: CategoryRecognitionReward, Order: 13, Text: "How often is your work recognized and valued by the company?"},
			{Category: CategoryRecognitionReward, Order: 14, Text: "How often do you receive constructive feedback on your performance?"},
			{Category: CategoryRecognitionReward, Order: 15, Text: "How often do you feel your pay is fair for the work you do?"},
		},
	}
}
