package services

import (
	"testing"

	"conference-management-api/models"
)

func assignment(required bool, status string) models.ReviewAssignment {
	return models.ReviewAssignment{PaperID: "paper_1", Required: required, Status: status}
}

func TestReviewsComplete(t *testing.T) {
	cases := []struct {
		name          string
		assignments   []models.ReviewAssignment
		requiredCount int
		want          bool
	}{
		{
			name: "all required submitted",
			assignments: []models.ReviewAssignment{
				assignment(true, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusSubmitted),
			},
			requiredCount: 2,
			want:          true,
		},
		{
			name: "one required still pending",
			assignments: []models.ReviewAssignment{
				assignment(true, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusPending),
			},
			requiredCount: 1,
			want:          false,
		},
		{
			name: "one required still invited",
			assignments: []models.ReviewAssignment{
				assignment(true, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusInvited),
			},
			requiredCount: 1,
			want:          false,
		},
		{
			name: "one required in progress",
			assignments: []models.ReviewAssignment{
				assignment(true, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusInProgress),
			},
			requiredCount: 1,
			want:          false,
		},
		{
			name: "not enough submitted required reviews",
			assignments: []models.ReviewAssignment{
				assignment(true, models.AssignmentStatusSubmitted),
			},
			requiredCount: 2,
			want:          false,
		},
		{
			name: "surplus optional reviews do not count",
			assignments: []models.ReviewAssignment{
				assignment(false, models.AssignmentStatusSubmitted),
				assignment(false, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusSubmitted),
			},
			requiredCount: 2,
			want:          false,
		},
		{
			name: "outstanding optional review does not block",
			assignments: []models.ReviewAssignment{
				assignment(true, models.AssignmentStatusSubmitted),
				assignment(false, models.AssignmentStatusPending),
			},
			requiredCount: 1,
			want:          true,
		},
		{
			name: "surplus optional plus outstanding required is incomplete",
			assignments: []models.ReviewAssignment{
				assignment(false, models.AssignmentStatusSubmitted),
				assignment(false, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusSubmitted),
				assignment(true, models.AssignmentStatusInProgress),
			},
			requiredCount: 1,
			want:          false,
		},
		{
			name:          "no assignments with zero required count",
			assignments:   nil,
			requiredCount: 0,
			want:          true,
		},
		{
			name:          "no assignments with positive required count",
			assignments:   nil,
			requiredCount: 1,
			want:          false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReviewsComplete(tc.assignments, tc.requiredCount)
			if got != tc.want {
				t.Fatalf("ReviewsComplete() = %v, want %v", got, tc.want)
			}
		})
	}
}
