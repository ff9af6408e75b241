package providers

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"emotrack/internal/models"
	"emotrack/internal/structures"

	"gopkg.in/yaml.v3"
)

//go:embed data/directory.yaml
var defaultDirectory []byte

// DirectoryInterface resolves subjects and group membership. Aggregation
// never calls it; callers turn a scope into a subject-id set first.
type DirectoryInterface interface {
	Subject(id string) (models.Subject, bool)
	Subjects() []models.Subject
	Employees() []models.Subject
	TeamMembers(managerID string) []models.Subject
	Managers(department string) []models.Subject
	DepartmentMembers(department string) []models.Subject
	Departments() []models.Department
	PoleDepartments(poleDirectorID string) []models.Department
}

type directoryFile struct {
	Subjects    []models.Subject    `yaml:"subjects"`
	Departments []models.Department `yaml:"departments"`
}

type DirectoryProvider struct {
	subjects    []models.Subject
	byID        map[string]int
	departments []models.Department
}

func NewDirectoryProvider(conf *structures.Config, logger Logger) (DirectoryInterface, error) {
	data := defaultDirectory
	source := "embedded sample organization"
	if conf.Directory.FilePath != "" {
		raw, err := os.ReadFile(conf.Directory.FilePath)
		if err != nil {
			return nil, fmt.Errorf("reading directory file: %w", err)
		}
		data = raw
		source = conf.Directory.FilePath
	}

	dir, err := ParseDirectory(data)
	if err != nil {
		return nil, fmt.Errorf("parsing directory %s: %w", source, err)
	}
	logger.Infof(TypeApp, "Directory loaded from %s: %d subjects, %d departments", source, len(dir.subjects), len(dir.departments))
	return dir, nil
}

func ParseDirectory(data []byte) (*DirectoryProvider, error) {
	var file directoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	dir := &DirectoryProvider{
		subjects:    file.Subjects,
		byID:        make(map[string]int, len(file.Subjects)),
		departments: file.Departments,
	}
	for i, s := range file.Subjects {
		if s.ID == "" {
			return nil, fmt.Errorf("subject #%d has no id", i)
		}
		if _, dup := dir.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate subject id %q", s.ID)
		}
		switch s.Role {
		case models.RoleEmployee, models.RoleManager, models.RoleDirector, models.RolePoleDirector:
		default:
			return nil, fmt.Errorf("subject %q has unknown role %q", s.ID, s.Role)
		}
		dir.byID[s.ID] = i
	}
	return dir, nil
}

func (d *DirectoryProvider) Subject(id string) (models.Subject, bool) {
	i, ok := d.byID[id]
	if !ok {
		return models.Subject{}, false
	}
	return d.subjects[i], true
}

func (d *DirectoryProvider) Subjects() []models.Subject {
	return d.filter(func(models.Subject) bool { return true })
}

func (d *DirectoryProvider) Employees() []models.Subject {
	return d.filter(func(s models.Subject) bool { return s.Role == models.RoleEmployee })
}

func (d *DirectoryProvider) TeamMembers(managerID string) []models.Subject {
	return d.filter(func(s models.Subject) bool { return s.ManagerID == managerID })
}

func (d *DirectoryProvider) Managers(department string) []models.Subject {
	return d.filter(func(s models.Subject) bool {
		return s.Role == models.RoleManager && s.Department == department
	})
}

func (d *DirectoryProvider) DepartmentMembers(department string) []models.Subject {
	return d.filter(func(s models.Subject) bool { return s.Department == department })
}

func (d *DirectoryProvider) Departments() []models.Department {
	out := make([]models.Department, len(d.departments))
	copy(out, d.departments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (d *DirectoryProvider) PoleDepartments(poleDirectorID string) []models.Department {
	out := make([]models.Department, 0)
	for _, dep := range d.Departments() {
		if dep.PoleDirectorID == poleDirectorID {
			out = append(out, dep)
		}
	}
	return out
}

func (d *DirectoryProvider) filter(keep func(models.Subject) bool) []models.Subject {
	out := make([]models.Subject, 0)
	for _, s := range d.subjects {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
