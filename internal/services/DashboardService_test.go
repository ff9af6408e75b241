package services

import (
	"context"
	"testing"
	"time"

	"emotrack/internal/aggregation"
	"emotrack/internal/alerts"
	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/structures"
	"emotrack/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardConfig() *structures.Config {
	return &structures.Config{
		Dashboard: structures.DashboardConfig{
			DefaultWindowDays:    7,
			StatisticsWindowDays: 30,
			TrendSampleSize:      7,
			EveningStartHour:     14,
		},
		Alerts: structures.AlertsConfig{
			WindowDays:         7,
			NegativeThreshold:  2,
			NegativeWindowDays: 7,
			Team:               structures.ThresholdConfig{MoraleFloor: -20, ParticipationFloor: 50},
			Department:         structures.ThresholdConfig{MoraleFloor: -15, ParticipationFloor: 60},
		},
	}
}

// newDashboard wires a store at fixedNow against the sample organization.
func newDashboard(t *testing.T, records ...models.EmotionRecord) (*DashboardService, *EmotionService) {
	t.Helper()
	store := newStore(&testutil.MockPersister{})
	for _, r := range records {
		_, err := store.Upsert(r)
		require.NoError(t, err)
	}
	dir, err := providers.NewDirectoryProvider(&structures.Config{}, &testutil.MockLogger{})
	require.NoError(t, err)
	return NewDashboardService(dashboardConfig(), store, dir).(*DashboardService), store
}

func TestEmployeeView(t *testing.T) {
	ds, _ := newDashboard(t,
		record("1", "2024-01-10", models.PeriodMorning, models.EmotionHappy),
		record("1", "2024-01-09", models.PeriodEvening, models.EmotionSad),
		record("1", "2024-01-09", models.PeriodMorning, models.EmotionHappy),
		record("1", "2024-01-08", models.PeriodMorning, models.EmotionExcited),
		record("1", "2023-12-01", models.PeriodMorning, models.EmotionSad),
	)

	view, err := ds.EmployeeView("1", 0)
	require.NoError(t, err)

	assert.Equal(t, 7, view.WindowDays)
	assert.Len(t, view.Records, 4)
	assert.Equal(t, models.Stats{Total: 4, Happy: 2, Excited: 1, Sad: 1}, view.Stats)
	assert.Equal(t, 50.0, view.MoraleScore)
	require.NotNil(t, view.DominantEmotion)
	assert.Equal(t, models.EmotionHappy, *view.DominantEmotion)
	assert.Equal(t, 50.0, view.Shares[models.EmotionHappy])
	assert.InDelta(t, 4.0/14*100, view.DeclarationRate, 1e-9)
	assert.Equal(t, 75.0, view.Trend)
	require.NotNil(t, view.Today.Morning)
	assert.Nil(t, view.PendingPeriod, "morning already declared before the evening start hour")
}

func TestEmployeeView_NoRecords(t *testing.T) {
	ds, _ := newDashboard(t)

	view, err := ds.EmployeeView("2", 30)
	require.NoError(t, err)
	assert.Empty(t, view.Records)
	assert.Nil(t, view.DominantEmotion)
	assert.Equal(t, 0.0, view.MoraleScore)
	require.NotNil(t, view.PendingPeriod)
	assert.Equal(t, models.PeriodMorning, *view.PendingPeriod)
}

func TestEmployeeView_PendingEvening(t *testing.T) {
	ds, store := newDashboard(t)
	store.now = func() time.Time { return fixedNow.Add(5 * time.Hour) }

	view, err := ds.EmployeeView("1", 7)
	require.NoError(t, err)
	require.NotNil(t, view.PendingPeriod)
	assert.Equal(t, models.PeriodEvening, *view.PendingPeriod)

	_, err = store.Upsert(record("1", "2024-01-10", models.PeriodEvening, models.EmotionNeutral))
	require.NoError(t, err)
	view, err = ds.EmployeeView("1", 7)
	require.NoError(t, err)
	assert.Nil(t, view.PendingPeriod)
}

func TestEmployeeView_UnknownSubject(t *testing.T) {
	ds, _ := newDashboard(t)
	_, err := ds.EmployeeView("404", 7)
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestManagerView(t *testing.T) {
	ds, _ := newDashboard(t,
		record("1", "2024-01-09", models.PeriodMorning, models.EmotionSad),
		record("1", "2024-01-09", models.PeriodEvening, models.EmotionTired),
	)

	view, err := ds.ManagerView("5", 7)
	require.NoError(t, err)

	assert.Equal(t, 1, view.Team.TotalMembers)
	assert.Equal(t, 1, view.Team.ActiveMembers)
	assert.Equal(t, 100.0, view.Team.ParticipationRate)
	assert.Equal(t, -100.0, view.Team.MoraleScore)
	assert.Equal(t, aggregation.LabelCritical, view.MoraleLabel)
	assert.Equal(t, 1, view.AttentionCount)

	require.Len(t, view.Members, 1)
	card := view.Members[0]
	assert.Equal(t, "1", card.Subject.ID)
	assert.True(t, card.NeedsAttention)
	require.NotNil(t, card.LatestEmotion)
	assert.Equal(t, models.EmotionTired, *card.LatestEmotion)
	assert.Equal(t, 2, card.Stats.Total)
}

func TestManagerView_RoleChecks(t *testing.T) {
	ds, _ := newDashboard(t)

	_, err := ds.ManagerView("1", 7)
	assert.ErrorIs(t, err, ErrScopeNotAllowed)

	_, err = ds.ManagerView("404", 7)
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestDirectorView(t *testing.T) {
	ds, _ := newDashboard(t,
		record("2", "2024-01-09", models.PeriodMorning, models.EmotionSad),
		record("2", "2024-01-08", models.PeriodMorning, models.EmotionStressed),
	)

	view, err := ds.DirectorView("10", 7)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Department.TotalMembers)
	assert.InDelta(t, 100.0/3, view.Department.ParticipationRate, 1e-9)

	require.Len(t, view.Teams, 1)
	assert.Equal(t, "6", view.Teams[0].Manager.ID)
	assert.Equal(t, -100.0, view.Teams[0].Rollup.MoraleScore)

	require.Len(t, view.Alerts, 1)
	assert.Equal(t, "6", view.Alerts[0].Scope)
	assert.Equal(t, models.AlertLowTeamMorale, view.Alerts[0].Kind)
	assert.False(t, view.Alerts[0].Resolved)
}

func TestPoleDirectorView(t *testing.T) {
	ds, _ := newDashboard(t,
		record("1", "2024-01-09", models.PeriodMorning, models.EmotionHappy),
		record("2", "2024-01-09", models.PeriodMorning, models.EmotionSad),
	)

	view, err := ds.PoleDirectorView("13", 7)
	require.NoError(t, err)

	require.Len(t, view.Departments, 2)
	it := view.Departments[0]
	assert.Equal(t, "IT", it.Department.Name)
	assert.Equal(t, 1, it.Employees)
	assert.Equal(t, 1, it.Managers)
	require.NotNil(t, it.Director)
	assert.Equal(t, "10", it.Director.ID)
	assert.Equal(t, -100.0, it.Rollup.MoraleScore)

	assert.Equal(t, 6, view.TotalMembers)
	assert.Equal(t, 2, view.Stats.Total)
	assert.Equal(t, 0.0, view.OverallMorale)
	assert.InDelta(t, 100.0/3, view.AverageParticipation, 1e-9)
	require.NotNil(t, view.TopDepartment)
	assert.Equal(t, "Marketing", *view.TopDepartment)
	require.NotNil(t, view.BestParticipationDepartment)
	assert.Equal(t, "IT", *view.BestParticipationDepartment, "ties resolve to the first id")

	require.Len(t, view.Alerts, 2)
	assert.Equal(t, "IT", view.Alerts[0].Scope)
	assert.Equal(t, "Marketing", view.Alerts[1].Scope)
}

func TestPoleDirectorView_RejectsOtherRoles(t *testing.T) {
	ds, _ := newDashboard(t)
	_, err := ds.PoleDirectorView("9", 7)
	assert.ErrorIs(t, err, ErrScopeNotAllowed)
}

func TestView_DispatchesByRole(t *testing.T) {
	ds, _ := newDashboard(t)

	cases := map[string]models.Role{
		"1":  models.RoleEmployee,
		"5":  models.RoleManager,
		"9":  models.RoleDirector,
		"13": models.RolePoleDirector,
	}
	for id, role := range cases {
		view, err := ds.View(id, 7)
		require.NoError(t, err, id)
		assert.Equal(t, role, view.Role)
		assert.Equal(t, role == models.RoleEmployee, view.Employee != nil)
		assert.Equal(t, role == models.RoleManager, view.Manager != nil)
		assert.Equal(t, role == models.RoleDirector, view.Director != nil)
		assert.Equal(t, role == models.RolePoleDirector, view.PoleDirector != nil)
	}

	_, err := ds.View("404", 7)
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestStatistics_ManagerScope(t *testing.T) {
	ds, _ := newDashboard(t,
		record("1", "2024-01-08", models.PeriodMorning, models.EmotionHappy),
		record("1", "2024-01-08", models.PeriodEvening, models.EmotionHappy),
		record("1", "2024-01-09", models.PeriodMorning, models.EmotionSad),
		record("2", "2024-01-09", models.PeriodMorning, models.EmotionSad),
	)

	report, err := ds.Statistics("5", 0)
	require.NoError(t, err)

	assert.Equal(t, 30, report.WindowDays)
	assert.Equal(t, 2, report.TotalUsers)
	assert.Equal(t, 1, report.ActiveUsers)
	assert.Equal(t, 50.0, report.ParticipationRate)
	assert.Equal(t, 3, report.Stats.Total)
	require.Len(t, report.Daily, 2)
	assert.Equal(t, "2024-01-08", report.Daily[0].Date)
	assert.Equal(t, 1.5, report.AverageDailyDeclarations)
	require.NotNil(t, report.BestDay)
	assert.Equal(t, "2024-01-08", report.BestDay.Date)
	assert.Equal(t, "2024-01-09", report.WorstDay.Date)
}

func TestStatistics_Scopes(t *testing.T) {
	ds, _ := newDashboard(t)

	cases := map[string]int{
		"1":  1,
		"9":  3,
		"14": 6,
	}
	for id, users := range cases {
		report, err := ds.Statistics(id, 7)
		require.NoError(t, err, id)
		assert.Equal(t, users, report.TotalUsers, id)
		assert.Nil(t, report.BestDay)
		assert.Equal(t, aggregation.LabelCorrect, report.MoraleLabel)
	}
}

func TestOrganizationAlerts(t *testing.T) {
	ds, store := newDashboard(t,
		record("2", "2024-01-09", models.PeriodMorning, models.EmotionSad),
		record("2", "2024-01-08", models.PeriodEvening, models.EmotionTired),
		record("1", "2024-01-09", models.PeriodMorning, models.EmotionHappy),
	)

	list, err := ds.OrganizationAlerts(context.Background())
	require.NoError(t, err)

	// subject 2, every team but manager 5's and all four departments
	require.Len(t, list, 8)
	assert.Equal(t, models.AlertConsecutiveNegative, list[0].Kind)
	assert.Equal(t, "2", list[0].Scope)
	assert.Equal(t, "2024-01-10", list[0].Date)
	for _, a := range list[1:] {
		assert.Equal(t, models.AlertLowTeamMorale, a.Kind)
		assert.False(t, a.Resolved)
	}

	require.NoError(t, store.ResolveAlert(list[0].ID))
	list, err = ds.OrganizationAlerts(context.Background())
	require.NoError(t, err)
	assert.True(t, list[0].Resolved)
	assert.Equal(t, alerts.AlertID("2", models.AlertConsecutiveNegative, "2024-01-10"), list[0].ID)
}

func TestOrganizationAlerts_Cancelled(t *testing.T) {
	ds, _ := newDashboard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ds.OrganizationAlerts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveAlert_OnlyKnownIDs(t *testing.T) {
	ds, store := newDashboard(t,
		record("2", "2024-01-09", models.PeriodMorning, models.EmotionSad),
		record("2", "2024-01-08", models.PeriodEvening, models.EmotionTired),
	)
	persister := store.persister.(*testutil.MockPersister)
	saves := len(persister.Saves)

	err := ds.ResolveAlert(context.Background(), "not-an-alert")
	assert.ErrorIs(t, err, ErrUnknownAlert)
	assert.Empty(t, store.ResolvedAlerts())
	assert.Len(t, persister.Saves, saves)

	id := alerts.AlertID("2", models.AlertConsecutiveNegative, "2024-01-10")
	require.NoError(t, ds.ResolveAlert(context.Background(), id))
	assert.Contains(t, store.ResolvedAlerts(), id)

	require.NoError(t, ds.ResolveAlert(context.Background(), id))
	assert.Len(t, store.ResolvedAlerts(), 1)
}
