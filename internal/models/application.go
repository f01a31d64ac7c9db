package models

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application records interest in reviving a project
type Application struct {
	BaseModel
	ProjectID      string            `json:"project_id"`
	ProjectName    string            `json:"project_name"`
	OwnerID        string            `json:"owner_id"`
	OwnerEmail     string            `json:"owner_email"`
	ApplicantID    string            `json:"applicant_id"`
	ApplicantName  string            `json:"applicant_name"`
	ApplicantEmail string            `json:"applicant_email"`
	Reason         string            `json:"reason"`
	Experience     string            `json:"experience"`
	Skills         string            `json:"skills"`
	Portfolio      string            `json:"portfolio,omitempty"`
	Status         ApplicationStatus `json:"status"`
}

// ApplicationFilter selects applications by owner or applicant
type ApplicationFilter struct {
	OwnerID     string
	ApplicantID string
	ProjectID   string
	Status      ApplicationStatus
}
