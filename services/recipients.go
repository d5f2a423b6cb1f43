package services

import (
	"cpms-admin-api/models"
)

// panelSalutation is used when a reminder goes to evaluation committee
// members rather than a single named guide.
const panelSalutation = "Panel Member"

// ResolveRecipients maps a review's audience type onto the project's people
// and returns the concrete address list plus the salutation name for the
// message body. An empty list is a normal outcome (missing email, absent
// panel, unknown faculty type), never an error.
func ResolveRecipients(review models.ReviewDefinition, project models.Project) (recipients []string, recipientName string) {
	switch review.FacultyType {
	case models.FacultyTypeGuide:
		if project.GuideFaculty == nil || project.GuideFaculty.Email == nil || *project.GuideFaculty.Email == "" {
			return nil, ""
		}
		return []string{*project.GuideFaculty.Email}, project.GuideFaculty.Name

	case models.FacultyTypePanel:
		if project.Panel == nil {
			return nil, ""
		}
		for _, m := range project.Panel.Members {
			if m.Email == nil || *m.Email == "" {
				continue
			}
			recipients = append(recipients, *m.Email)
		}
		if len(recipients) == 0 {
			return nil, ""
		}
		return recipients, panelSalutation
	}

	// Unknown audience type: nobody to notify.
	return nil, ""
}
