package models

// EmployeeDashboard is the self-scoped view of a single subject.
type EmployeeDashboard struct {
	Subject         Subject             `json:"subject"`
	WindowDays      int                 `json:"windowDays"`
	Records         []EmotionRecord     `json:"records"`
	Today           TodayRecords        `json:"today"`
	Stats           Stats               `json:"stats"`
	Shares          map[Emotion]float64 `json:"shares"`
	MoraleScore     float64             `json:"moraleScore"`
	DominantEmotion *Emotion            `json:"dominantEmotion"`
	Trend           float64             `json:"trend"`
	DeclarationRate float64             `json:"declarationRate"`
	PendingPeriod   *Period             `json:"pendingPeriod"`
}

type MemberCard struct {
	Subject         Subject  `json:"subject"`
	Stats           Stats    `json:"stats"`
	MoraleScore     float64  `json:"moraleScore"`
	DominantEmotion *Emotion `json:"dominantEmotion"`
	LatestEmotion   *Emotion `json:"latestEmotion"`
	DeclarationRate float64  `json:"declarationRate"`
	NeedsAttention  bool     `json:"needsAttention"`
}

type ManagerDashboard struct {
	Subject        Subject      `json:"subject"`
	WindowDays     int          `json:"windowDays"`
	Team           Rollup       `json:"team"`
	MoraleLabel    string       `json:"moraleLabel"`
	Members        []MemberCard `json:"members"`
	AttentionCount int          `json:"attentionCount"`
}

type TeamSummary struct {
	Manager     Subject `json:"manager"`
	Rollup      Rollup  `json:"rollup"`
	MoraleLabel string  `json:"moraleLabel"`
}

type DirectorDashboard struct {
	Subject    Subject       `json:"subject"`
	WindowDays int           `json:"windowDays"`
	Department Rollup        `json:"department"`
	Teams      []TeamSummary `json:"teams"`
	Alerts     []Alert       `json:"alerts"`
}

type DepartmentSummary struct {
	Department  Department `json:"department"`
	Director    *Subject   `json:"director"`
	Employees   int        `json:"employees"`
	Managers    int        `json:"managers"`
	Rollup      Rollup     `json:"rollup"`
	MoraleLabel string     `json:"moraleLabel"`
}

type PoleDashboard struct {
	Subject                     Subject             `json:"subject"`
	WindowDays                  int                 `json:"windowDays"`
	Stats                       Stats               `json:"stats"`
	Departments                 []DepartmentSummary `json:"departments"`
	TotalMembers                int                 `json:"totalMembers"`
	OverallMorale               float64             `json:"overallMorale"`
	AverageParticipation        float64             `json:"averageParticipation"`
	TopDepartment               *string             `json:"topDepartment"`
	BestParticipationDepartment *string             `json:"bestParticipationDepartment"`
	Alerts                      []Alert             `json:"alerts"`
}

// Dashboard wraps whichever role view applies to the requesting subject.
type Dashboard struct {
	Role         Role               `json:"role"`
	Employee     *EmployeeDashboard `json:"employee,omitempty"`
	Manager      *ManagerDashboard  `json:"manager,omitempty"`
	Director     *DirectorDashboard `json:"director,omitempty"`
	PoleDirector *PoleDashboard     `json:"poleDirector,omitempty"`
}

type StatisticsReport struct {
	Subject                  Subject      `json:"subject"`
	WindowDays               int          `json:"windowDays"`
	Stats                    Stats        `json:"stats"`
	TotalUsers               int          `json:"totalUsers"`
	ActiveUsers              int          `json:"activeUsers"`
	ParticipationRate        float64      `json:"participationRate"`
	MoraleScore              float64      `json:"moraleScore"`
	MoraleLabel              string       `json:"moraleLabel"`
	Daily                    []DailyStats `json:"daily"`
	AverageDailyDeclarations float64      `json:"averageDailyDeclarations"`
	BestDay                  *DayScore    `json:"bestDay"`
	WorstDay                 *DayScore    `json:"worstDay"`
}
