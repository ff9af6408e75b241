package services

import (
	"context"
	"fmt"

	"emotrack/internal/aggregation"
	"emotrack/internal/alerts"
	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/structures"

	"golang.org/x/sync/errgroup"
)

type DashboardServiceInterface interface {
	View(subjectID string, windowDays int) (*models.Dashboard, error)
	EmployeeView(subjectID string, windowDays int) (*models.EmployeeDashboard, error)
	ManagerView(subjectID string, windowDays int) (*models.ManagerDashboard, error)
	DirectorView(subjectID string, windowDays int) (*models.DirectorDashboard, error)
	PoleDirectorView(subjectID string, windowDays int) (*models.PoleDashboard, error)
	Statistics(subjectID string, windowDays int) (*models.StatisticsReport, error)
	OrganizationAlerts(ctx context.Context) ([]models.Alert, error)
	ResolveAlert(ctx context.Context, id string) error
}

// DashboardService turns store queries and directory lookups into role views.
// All figures come from the aggregation package.
type DashboardService struct {
	config    *structures.Config
	store     EmotionServiceInterface
	directory providers.DirectoryInterface
}

func (ds *DashboardService) View(subjectID string, windowDays int) (*models.Dashboard, error) {
	subject, err := ds.subject(subjectID)
	if err != nil {
		return nil, err
	}

	result := &models.Dashboard{Role: subject.Role}
	switch subject.Role {
	case models.RoleManager:
		result.Manager, err = ds.ManagerView(subjectID, windowDays)
	case models.RoleDirector:
		result.Director, err = ds.DirectorView(subjectID, windowDays)
	case models.RolePoleDirector:
		result.PoleDirector, err = ds.PoleDirectorView(subjectID, windowDays)
	default:
		result.Employee, err = ds.EmployeeView(subjectID, windowDays)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (ds *DashboardService) EmployeeView(subjectID string, windowDays int) (*models.EmployeeDashboard, error) {
	subject, err := ds.subject(subjectID)
	if err != nil {
		return nil, err
	}
	windowDays = ds.window(windowDays, ds.config.Dashboard.DefaultWindowDays)

	records := ds.store.QueryBySubject(subjectID, windowDays)
	stats := aggregation.ComputeStats(records)
	recent, prior := aggregation.SplitTrend(records, ds.config.Dashboard.TrendSampleSize)
	today := ds.store.QueryToday(subjectID)

	shares := make(map[models.Emotion]float64, len(models.Emotions))
	for _, e := range models.Emotions {
		shares[e] = stats.Share(e)
	}

	return &models.EmployeeDashboard{
		Subject:         subject,
		WindowDays:      windowDays,
		Records:         records,
		Today:           today,
		Stats:           stats,
		Shares:          shares,
		MoraleScore:     aggregation.MoraleScore(stats),
		DominantEmotion: dominant(stats),
		Trend:           aggregation.Trend(recent, prior),
		DeclarationRate: aggregation.DeclarationRate(stats.Total, windowDays),
		PendingPeriod:   ds.pendingPeriod(today),
	}, nil
}

func (ds *DashboardService) ManagerView(subjectID string, windowDays int) (*models.ManagerDashboard, error) {
	subject, err := ds.subjectWithRole(subjectID, models.RoleManager)
	if err != nil {
		return nil, err
	}
	windowDays = ds.window(windowDays, ds.config.Dashboard.DefaultWindowDays)

	team := ds.directory.TeamMembers(subjectID)
	ids := models.SubjectIDs(team)
	records := ds.store.QueryBySubjects(ids, windowDays)
	rollup := aggregation.ComputeRollup(models.Group{Members: ids, Records: records})

	rule := ds.negativeRule()
	bySubject := alerts.GroupBySubject(records)
	recentBySubject := alerts.GroupBySubject(ds.store.QueryBySubjects(ids, rule.WindowDays))
	now := ds.store.Now()

	members := make([]models.MemberCard, 0, len(team))
	attention := 0
	for _, m := range team {
		own := bySubject[m.ID]
		stats := aggregation.ComputeStats(own)
		card := models.MemberCard{
			Subject:         m,
			Stats:           stats,
			MoraleScore:     aggregation.MoraleScore(stats),
			DominantEmotion: dominant(stats),
			DeclarationRate: aggregation.DeclarationRate(stats.Total, windowDays),
			NeedsAttention:  alerts.EvaluateConsecutiveNegative(recentBySubject[m.ID], rule, now),
		}
		if len(own) > 0 {
			latest := own[0].Emotion
			card.LatestEmotion = &latest
		}
		if card.NeedsAttention {
			attention++
		}
		members = append(members, card)
	}

	return &models.ManagerDashboard{
		Subject:        subject,
		WindowDays:     windowDays,
		Team:           rollup,
		MoraleLabel:    aggregation.MoraleLabel(rollup.MoraleScore),
		Members:        members,
		AttentionCount: attention,
	}, nil
}

func (ds *DashboardService) DirectorView(subjectID string, windowDays int) (*models.DirectorDashboard, error) {
	subject, err := ds.subjectWithRole(subjectID, models.RoleDirector)
	if err != nil {
		return nil, err
	}
	windowDays = ds.window(windowDays, ds.config.Dashboard.DefaultWindowDays)

	ids := models.SubjectIDs(ds.directory.DepartmentMembers(subject.Department))
	department := aggregation.ComputeRollup(models.Group{
		Members: ids,
		Records: ds.store.QueryBySubjects(ids, windowDays),
	})

	managers := make(map[string]models.Subject)
	for _, m := range ds.directory.Managers(subject.Department) {
		managers[m.ID] = m
	}
	rollups := aggregation.GroupRollup(ds.teamGroups(managers, windowDays))

	teams := make([]models.TeamSummary, 0, len(rollups))
	for _, id := range aggregation.SortedKeys(rollups) {
		teams = append(teams, models.TeamSummary{
			Manager:     managers[id],
			Rollup:      rollups[id],
			MoraleLabel: aggregation.MoraleLabel(rollups[id].MoraleScore),
		})
	}

	found := alerts.BuildAlerts(alerts.LevelTeam, rollups, ds.teamThresholds(), models.FormatDate(ds.store.Now()))
	return &models.DirectorDashboard{
		Subject:    subject,
		WindowDays: windowDays,
		Department: department,
		Teams:      teams,
		Alerts:     alerts.ApplyResolved(found, ds.store.ResolvedAlerts()),
	}, nil
}

func (ds *DashboardService) PoleDirectorView(subjectID string, windowDays int) (*models.PoleDashboard, error) {
	subject, err := ds.subjectWithRole(subjectID, models.RolePoleDirector)
	if err != nil {
		return nil, err
	}
	windowDays = ds.window(windowDays, ds.config.Dashboard.DefaultWindowDays)

	departments := ds.directory.PoleDepartments(subjectID)
	groups := ds.departmentGroups(departments, windowDays)
	rollups := aggregation.GroupRollup(groups)

	var (
		overall models.Stats
		members int
	)
	summaries := make([]models.DepartmentSummary, 0, len(departments))
	for _, dep := range departments {
		r := rollups[dep.Name]
		summary := models.DepartmentSummary{
			Department:  dep,
			Rollup:      r,
			MoraleLabel: aggregation.MoraleLabel(r.MoraleScore),
		}
		if director, ok := ds.directory.Subject(dep.DirectorID); ok {
			summary.Director = &director
		}
		for _, m := range ds.directory.DepartmentMembers(dep.Name) {
			switch m.Role {
			case models.RoleEmployee:
				summary.Employees++
			case models.RoleManager:
				summary.Managers++
			}
		}
		for i := range groups[dep.Name].Records {
			overall.Add(groups[dep.Name].Records[i].Emotion)
		}
		members += r.TotalMembers
		summaries = append(summaries, summary)
	}

	result := &models.PoleDashboard{
		Subject:              subject,
		WindowDays:           windowDays,
		Stats:                overall,
		Departments:          summaries,
		TotalMembers:         members,
		OverallMorale:        aggregation.MeanMorale(rollups),
		AverageParticipation: aggregation.MeanParticipation(rollups),
	}
	if top, ok := aggregation.TopByMorale(rollups); ok {
		result.TopDepartment = &top
	}
	if best, ok := aggregation.TopByParticipation(rollups); ok {
		result.BestParticipationDepartment = &best
	}

	found := alerts.BuildAlerts(alerts.LevelDepartment, rollups, ds.departmentThresholds(), models.FormatDate(ds.store.Now()))
	result.Alerts = alerts.ApplyResolved(found, ds.store.ResolvedAlerts())
	return result, nil
}

// Statistics reports over the subjects visible to the requester: itself for
// an employee, its team and itself for a manager, its department for a
// director and every department of the pole for a pole director.
func (ds *DashboardService) Statistics(subjectID string, windowDays int) (*models.StatisticsReport, error) {
	subject, err := ds.subject(subjectID)
	if err != nil {
		return nil, err
	}
	windowDays = ds.window(windowDays, ds.config.Dashboard.StatisticsWindowDays)

	ids := ds.statisticsScope(subject)
	records := ds.store.QueryBySubjects(ids, windowDays)
	stats := aggregation.ComputeStats(records)
	active := aggregation.ActiveSubjects(records, ids)
	daily := aggregation.DailyBreakdown(records)
	morale := aggregation.MoraleScore(stats)

	report := &models.StatisticsReport{
		Subject:                  subject,
		WindowDays:               windowDays,
		Stats:                    stats,
		TotalUsers:               len(ids),
		ActiveUsers:              active,
		ParticipationRate:        aggregation.ParticipationRate(active, len(ids)),
		MoraleScore:              morale,
		MoraleLabel:              aggregation.MoraleLabel(morale),
		Daily:                    daily,
		AverageDailyDeclarations: aggregation.AverageDailyDeclarations(daily),
	}
	if bw, ok := aggregation.BestWorstDay(daily); ok {
		report.BestDay = &bw.Best
		report.WorstDay = &bw.Worst
	}
	return report, nil
}

// OrganizationAlerts evaluates every subject, every team and every
// department. Team and department levels are rolled up concurrently.
func (ds *DashboardService) OrganizationAlerts(ctx context.Context) ([]models.Alert, error) {
	now := ds.store.Now()
	date := models.FormatDate(now)
	windowDays := ds.window(ds.config.Alerts.WindowDays, ds.config.Dashboard.DefaultWindowDays)

	var teamAlerts, departmentAlerts []models.Alert
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		managers := make(map[string]models.Subject)
		for _, s := range ds.directory.Subjects() {
			if s.Role == models.RoleManager {
				managers[s.ID] = s
			}
		}
		groups := ds.teamGroups(managers, windowDays)
		if err := ctx.Err(); err != nil {
			return err
		}
		teamAlerts = alerts.BuildAlerts(alerts.LevelTeam, aggregation.GroupRollup(groups), ds.teamThresholds(), date)
		return nil
	})
	g.Go(func() error {
		groups := ds.departmentGroups(ds.directory.Departments(), windowDays)
		if err := ctx.Err(); err != nil {
			return err
		}
		departmentAlerts = alerts.BuildAlerts(alerts.LevelDepartment, aggregation.GroupRollup(groups), ds.departmentThresholds(), date)
		return nil
	})

	rule := ds.negativeRule()
	ids := models.SubjectIDs(ds.directory.Subjects())
	subjectAlerts := alerts.BuildSubjectAlerts(alerts.GroupBySubject(ds.store.QueryBySubjects(ids, rule.WindowDays)), rule, now)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating alerts: %w", err)
	}

	result := make([]models.Alert, 0, len(subjectAlerts)+len(teamAlerts)+len(departmentAlerts))
	result = append(result, subjectAlerts...)
	result = append(result, teamAlerts...)
	result = append(result, departmentAlerts...)
	return alerts.ApplyResolved(result, ds.store.ResolvedAlerts()), nil
}

// ResolveAlert marks an alert of the current feed as resolved. Ids that the
// feed does not contain are ErrUnknownAlert.
func (ds *DashboardService) ResolveAlert(ctx context.Context, id string) error {
	list, err := ds.OrganizationAlerts(ctx)
	if err != nil {
		return err
	}
	for _, a := range list {
		if a.ID == id {
			return ds.store.ResolveAlert(id)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlert, id)
}

func (ds *DashboardService) teamGroups(managers map[string]models.Subject, windowDays int) map[string]models.Group {
	groups := make(map[string]models.Group, len(managers))
	for id := range managers {
		ids := models.SubjectIDs(ds.directory.TeamMembers(id))
		groups[id] = models.Group{Members: ids, Records: ds.store.QueryBySubjects(ids, windowDays)}
	}
	return groups
}

// departmentGroups keys groups by department name, which is what subjects
// reference.
func (ds *DashboardService) departmentGroups(departments []models.Department, windowDays int) map[string]models.Group {
	groups := make(map[string]models.Group, len(departments))
	for _, dep := range departments {
		ids := models.SubjectIDs(ds.directory.DepartmentMembers(dep.Name))
		groups[dep.Name] = models.Group{Members: ids, Records: ds.store.QueryBySubjects(ids, windowDays)}
	}
	return groups
}

func (ds *DashboardService) statisticsScope(subject models.Subject) []string {
	switch subject.Role {
	case models.RoleManager:
		return append(models.SubjectIDs(ds.directory.TeamMembers(subject.ID)), subject.ID)
	case models.RoleDirector:
		return models.SubjectIDs(ds.directory.DepartmentMembers(subject.Department))
	case models.RolePoleDirector:
		ids := make([]string, 0)
		for _, dep := range ds.directory.PoleDepartments(subject.ID) {
			ids = append(ids, models.SubjectIDs(ds.directory.DepartmentMembers(dep.Name))...)
		}
		return ids
	default:
		return []string{subject.ID}
	}
}

// pendingPeriod is the period the subject should declare next, or nil when
// nothing is due.
func (ds *DashboardService) pendingPeriod(today models.TodayRecords) *models.Period {
	var p models.Period
	switch {
	case ds.store.Now().Hour() < ds.config.Dashboard.EveningStartHour:
		if today.Morning != nil {
			return nil
		}
		p = models.PeriodMorning
	case today.Evening == nil:
		p = models.PeriodEvening
	default:
		return nil
	}
	return &p
}

func (ds *DashboardService) subject(id string) (models.Subject, error) {
	s, ok := ds.directory.Subject(id)
	if !ok {
		return models.Subject{}, fmt.Errorf("%w: %q", ErrUnknownSubject, id)
	}
	return s, nil
}

func (ds *DashboardService) subjectWithRole(id string, role models.Role) (models.Subject, error) {
	s, err := ds.subject(id)
	if err != nil {
		return s, err
	}
	if s.Role != role {
		return models.Subject{}, fmt.Errorf("%w: %s view requested by %s %q", ErrScopeNotAllowed, role, s.Role, id)
	}
	return s, nil
}

func (ds *DashboardService) window(requested, fallback int) int {
	if requested > 0 {
		return requested
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultWindowDays
}

func (ds *DashboardService) negativeRule() alerts.NegativeRule {
	rule := alerts.DefaultNegativeRule()
	if ds.config.Alerts.NegativeThreshold > 0 {
		rule.Threshold = ds.config.Alerts.NegativeThreshold
	}
	if ds.config.Alerts.NegativeWindowDays > 0 {
		rule.WindowDays = ds.config.Alerts.NegativeWindowDays
	}
	return rule
}

func (ds *DashboardService) teamThresholds() alerts.Thresholds {
	return alerts.Thresholds{
		MoraleFloor:        ds.config.Alerts.Team.MoraleFloor,
		ParticipationFloor: ds.config.Alerts.Team.ParticipationFloor,
	}
}

func (ds *DashboardService) departmentThresholds() alerts.Thresholds {
	return alerts.Thresholds{
		MoraleFloor:        ds.config.Alerts.Department.MoraleFloor,
		ParticipationFloor: ds.config.Alerts.Department.ParticipationFloor,
	}
}

func dominant(stats models.Stats) *models.Emotion {
	e, ok := aggregation.DominantEmotion(stats)
	if !ok {
		return nil
	}
	return &e
}

func NewDashboardService(config *structures.Config, store EmotionServiceInterface, directory providers.DirectoryInterface) DashboardServiceInterface {
	return &DashboardService{
		config:    config,
		store:     store,
		directory: directory,
	}
}
