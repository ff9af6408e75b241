package models

type Role string

const (
	RoleEmployee     Role = "employee"
	RoleManager      Role = "manager"
	RoleDirector     Role = "director"
	RolePoleDirector Role = "pole_director"
)

// Subject is a tracked individual as described by the directory.
type Subject struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Email          string `json:"email" yaml:"email"`
	Role           Role   `json:"role" yaml:"role"`
	Department     string `json:"department" yaml:"department"`
	ManagerID      string `json:"managerId,omitempty" yaml:"managerId"`
	DirectorID     string `json:"directorId,omitempty" yaml:"directorId"`
	PoleDirectorID string `json:"poleDirectorId,omitempty" yaml:"poleDirectorId"`
}

type Department struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	DirectorID     string `json:"directorId" yaml:"directorId"`
	PoleDirectorID string `json:"poleDirectorId,omitempty" yaml:"poleDirectorId"`
}

func SubjectIDs(subjects []Subject) []string {
	ids := make([]string, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.ID)
	}
	return ids
}
