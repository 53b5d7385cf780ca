package syncer

// Domain names one independently-fetchable server-owned category.
type Domain string

const (
	DomainXP           Domain = "xp"
	DomainDay          Domain = "day-status"
	DomainMission      Domain = "mission"
	DomainMood         Domain = "mood"
	DomainHabits       Domain = "habits"
	DomainTasks        Domain = "tasks"
	DomainNotes        Domain = "notes"
	DomainAchievements Domain = "achievements"

	// DomainWeekly is fetched on demand only; it is not part of the
	// full-refresh set.
	DomainWeekly Domain = "weekly"
)

// AllDomains is the full-refresh set: everything re-fetched at startup
// and on every day change.
var AllDomains = []Domain{
	DomainXP,
	DomainDay,
	DomainMission,
	DomainMood,
	DomainHabits,
	DomainTasks,
	DomainNotes,
	DomainAchievements,
}

// Action names a user-initiated mutation.
type Action string

const (
	ActionSaveMission   Action = "save-mission"
	ActionToggleMission Action = "toggle-mission"
	ActionAddHabit      Action = "add-habit"
	ActionToggleHabit   Action = "toggle-habit"
	ActionDeleteHabit   Action = "delete-habit"
	ActionAddTask       Action = "add-task"
	ActionUpdateTask    Action = "update-task"
	ActionDeleteTask    Action = "delete-task"
	ActionLogMood       Action = "log-mood"
	ActionCompleteDay   Action = "complete-day"
	ActionClaimBonus    Action = "claim-weekly-bonus"
	ActionAddNote       Action = "add-note"
	ActionEditNote      Action = "edit-note"
	ActionDeleteNote    Action = "delete-note"
)

// RefreshSets is the invalidation policy: after its write, each action
// re-fetches exactly the listed domains, concurrently. XP, day
// evaluation, streak, and achievements are derived entirely by the
// service, so every action that can plausibly move one of those
// aggregates re-fetches all of them; actions confined to an uncoupled
// domain refresh only that domain (plus day-status when day-scoped).
var RefreshSets = map[Action][]Domain{
	ActionSaveMission:   {DomainDay},
	ActionToggleMission: {DomainMission, DomainXP, DomainDay, DomainAchievements},
	ActionAddHabit:      {DomainHabits},
	ActionToggleHabit:   {DomainDay, DomainXP, DomainAchievements},
	ActionDeleteHabit:   {DomainHabits, DomainDay},
	ActionAddTask:       {DomainTasks, DomainDay},
	ActionUpdateTask:    {DomainTasks, DomainDay},
	ActionDeleteTask:    {DomainTasks, DomainDay},
	ActionLogMood:       {DomainMood, DomainXP, DomainDay, DomainAchievements},
	ActionCompleteDay:   {DomainDay, DomainXP, DomainAchievements},
	ActionClaimBonus:    {DomainXP, DomainWeekly},
	ActionAddNote:       {DomainNotes},
	ActionEditNote:      {DomainNotes},
	ActionDeleteNote:    {DomainNotes},
}
