package services

import (
	"reflect"
	"testing"

	"cpms-admin-api/models"
)

func strPtr(s string) *string { return &s }

func TestResolveRecipientsGuide(t *testing.T) {
	review := models.ReviewDefinition{FacultyType: models.FacultyTypeGuide}

	project := models.Project{
		GuideFaculty: &models.Faculty{Name: "Dr. A", Email: strPtr("a@x.com")},
	}
	recipients, name := ResolveRecipients(review, project)
	if !reflect.DeepEqual(recipients, []string{"a@x.com"}) {
		t.Fatalf("unexpected recipients: %v", recipients)
	}
	if name != "Dr. A" {
		t.Fatalf("unexpected recipient name: %q", name)
	}
}

func TestResolveRecipientsGuideMissingEmail(t *testing.T) {
	review := models.ReviewDefinition{FacultyType: models.FacultyTypeGuide}

	for _, project := range []models.Project{
		{},
		{GuideFaculty: &models.Faculty{Name: "Dr. A"}},
		{GuideFaculty: &models.Faculty{Name: "Dr. A", Email: strPtr("")}},
	} {
		recipients, _ := ResolveRecipients(review, project)
		if len(recipients) != 0 {
			t.Fatalf("expected empty recipients, got %v", recipients)
		}
	}
}

func TestResolveRecipientsPanel(t *testing.T) {
	review := models.ReviewDefinition{FacultyType: models.FacultyTypePanel}
	project := models.Project{
		Panel: &models.Panel{Members: []models.Faculty{
			{Name: "Dr. A", Email: strPtr("a@x.com")},
			{Name: "Dr. B"},
			{Name: "Dr. C", Email: strPtr("")},
			{Name: "Dr. D", Email: strPtr("d@x.com")},
		}},
	}

	recipients, name := ResolveRecipients(review, project)
	if !reflect.DeepEqual(recipients, []string{"a@x.com", "d@x.com"}) {
		t.Fatalf("unexpected recipients: %v", recipients)
	}
	if name != "Panel Member" {
		t.Fatalf("unexpected recipient name: %q", name)
	}
}

func TestResolveRecipientsPanelAbsentOrEmpty(t *testing.T) {
	review := models.ReviewDefinition{FacultyType: models.FacultyTypePanel}

	for _, project := range []models.Project{
		{},
		{Panel: &models.Panel{}},
		{Panel: &models.Panel{Members: []models.Faculty{{Name: "Dr. B"}}}},
	} {
		recipients, _ := ResolveRecipients(review, project)
		if len(recipients) != 0 {
			t.Fatalf("expected empty recipients, got %v", recipients)
		}
	}
}

func TestResolveRecipientsUnknownFacultyType(t *testing.T) {
	review := models.ReviewDefinition{FacultyType: "committee"}
	project := models.Project{
		GuideFaculty: &models.Faculty{Name: "Dr. A", Email: strPtr("a@x.com")},
		Panel:        &models.Panel{Members: []models.Faculty{{Email: strPtr("b@x.com")}}},
	}

	recipients, _ := ResolveRecipients(review, project)
	if len(recipients) != 0 {
		t.Fatalf("unknown faculty type must resolve to no recipients, got %v", recipients)
	}
}
