package view

import "pasika/internal/core"

// Badge is a catalog key plus the CSS modifier used to render it.
type Badge struct {
	LabelKey string
	Class    string
}

// TabMeta describes a tab trigger.
type TabMeta struct {
	LabelKey string
	Icon     string
}

const mutedClass = "badge--muted"

// Every core.ApiaryStatus must have an entry; labels_test.go checks this.
var statusBadges = map[core.ApiaryStatus]Badge{
	core.StatusActive:      {LabelKey: "status.active", Class: "badge--active"},
	core.StatusDormant:     {LabelKey: "status.dormant", Class: mutedClass},
	core.StatusMaintenance: {LabelKey: "status.maintenance", Class: "badge--maintenance"},
}

var priorityBadges = map[core.Priority]Badge{
	core.PriorityHigh:   {LabelKey: "priority.high", Class: "badge--primary"},
	core.PriorityMedium: {LabelKey: "priority.medium", Class: mutedClass},
}

var seasonLabels = map[core.Season]string{
	core.Spring: "season.spring",
	core.Summer: "season.summer",
	core.Autumn: "season.autumn",
}

var tabMeta = map[Tab]TabMeta{
	TabApiaries: {LabelKey: "tab.apiaries", Icon: "warehouse"},
	TabHives:    {LabelKey: "tab.hives", Icon: "box"},
	TabHarvest:  {LabelKey: "tab.harvest", Icon: "bar-chart"},
	TabCalendar: {LabelKey: "tab.calendar", Icon: "calendar"},
}

// StatusBadge maps an apiary status to its badge. Unknown statuses show the
// raw value on a muted badge.
func StatusBadge(s core.ApiaryStatus) Badge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return Badge{LabelKey: string(s), Class: mutedClass}
}

// PriorityBadge maps a task priority to its badge.
func PriorityBadge(p core.Priority) Badge {
	if b, ok := priorityBadges[p]; ok {
		return b
	}
	return Badge{LabelKey: string(p), Class: mutedClass}
}

// SeasonLabelKey returns the catalog key of a season.
func SeasonLabelKey(s core.Season) string {
	if k, ok := seasonLabels[s]; ok {
		return k
	}
	return string(s)
}

// TabInfo returns the label key and icon of a tab.
func TabInfo(t Tab) TabMeta {
	if m, ok := tabMeta[t]; ok {
		return m
	}
	return TabMeta{LabelKey: string(t)}
}
