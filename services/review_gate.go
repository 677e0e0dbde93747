package services

import "conference-management-api/models"

// ReviewsComplete reports whether a paper has collected enough submitted
// required reviews to allow a final decision. Both conditions must hold:
// at least requiredCount required assignments are submitted, and no required
// assignment is still outstanding (pending, invited or in progress). Optional
// assignments never count either way.
func ReviewsComplete(assignments []models.ReviewAssignment, requiredCount int) bool {
	submitted := 0
	for i := range assignments {
		a := &assignments[i]
		if !a.Required {
			continue
		}
		if a.Outstanding() {
			return false
		}
		if a.Status == models.AssignmentStatusSubmitted {
			submitted++
		}
	}
	return submitted >= requiredCount
}
