package view

import (
	"pasika/internal/core"
	"pasika/internal/i18n"
)

type (
	// Page is the complete model the dashboard template renders.
	Page struct {
		L         *i18n.Localizer
		State     State
		Cards     []SummaryCard
		Tabs      []TabTrigger
		Apiaries  []ApiaryCard
		Hives     []HiveCard
		Seasons   []SeasonRow
		Recent    []HarvestRow
		Tasks     []TaskRow
		Dialog    Dialog
		Languages []LanguageOption
	}

	SummaryCard struct {
		Icon   string
		Title  string
		Value  string
		Note   string
		Accent string
	}

	TabTrigger struct {
		Tab         Tab
		Label       string
		Icon        string
		Active      bool
		Href        string // full page URL
		PartialHref string // tab panel fragment URL
	}

	ApiaryCard struct {
		ID          int
		Name        string
		Location    string
		StatusLabel string
		StatusClass string
		HiveCount   int
		TotalHoney  string
		AvgPerHive  string
	}

	HiveCard struct {
		ID             int
		Number         string
		ApiaryName     string // empty when the apiary cannot be resolved
		QueenAge       string
		Strength       int
		StrengthLabel  string
		LastInspection string
		HoneyCollected string
	}

	SeasonRow struct {
		Season   core.Season
		Label    string
		Total    string
		Count    string
		Progress int
	}

	HarvestRow struct {
		HiveNumber  string // empty when the hive cannot be resolved
		Date        string
		Amount      string
		SeasonLabel string
	}

	TaskRow struct {
		Title         string
		Window        string
		Done          bool
		PriorityLabel string
		PriorityClass string
	}

	Dialog struct {
		Open        bool
		Tab         Tab
		OpenHref    string // full page URL with the dialog open
		PartialHref string // dialog fragment URL, also the DELETE target
		CloseHref   string // full page URL with the dialog closed
		Form        ApiaryForm
		Errors      map[string]string
	}

	LanguageOption struct {
		Locale string
		Label  string
		Active bool
		Href   string
	}
)

// Build joins the dataset, derived statistics and UI state into a Page. It
// only reads ds.
func Build(ds core.Dataset, st State, l *i18n.Localizer) Page {
	apiaries := ds.Apiaries()
	hives := ds.Hives()
	harvests := ds.Harvests()
	totals := core.ComputeFleetTotals(apiaries)

	p := Page{
		L:     l,
		State: st,
		Cards: []SummaryCard{
			{
				Icon:   "warehouse",
				Title:  l.T("card.apiaries"),
				Value:  l.Number(float64(len(apiaries))),
				Note:   l.T(i18n.KeyActiveApiaries, totals.ActiveCount),
				Accent: "primary",
			},
			{
				Icon:   "box",
				Title:  l.T("card.hives"),
				Value:  l.Number(float64(totals.TotalHives)),
				Note:   l.T(i18n.KeyInApiaries, len(apiaries)),
				Accent: "secondary",
			},
			{
				Icon:   "droplet",
				Title:  l.T("card.honey"),
				Value:  l.Number(totals.TotalHoney),
				Note:   l.T("card.honey.note"),
				Accent: "accent",
			},
		},
	}

	for _, t := range Tabs() {
		meta := TabInfo(t)
		next, _ := Transition(st, SelectTab(t))
		p.Tabs = append(p.Tabs, TabTrigger{
			Tab:         t,
			Label:       l.T(meta.LabelKey),
			Icon:        meta.Icon,
			Active:      st.Tab == t,
			Href:        next.Href(),
			PartialHref: next.TabPartialHref(),
		})
	}

	for _, a := range apiaries {
		badge := StatusBadge(a.Status)
		p.Apiaries = append(p.Apiaries, ApiaryCard{
			ID:          a.ID,
			Name:        a.Name,
			Location:    a.Location,
			StatusLabel: l.T(badge.LabelKey),
			StatusClass: badge.Class,
			HiveCount:   a.HiveCount,
			TotalHoney:  l.Kg(a.TotalHoney),
			AvgPerHive:  l.KgPerHive(a.AvgPerHive),
		})
	}

	for _, h := range hives {
		var apiaryName string
		if a, ok := core.ResolveApiaryForHive(h, apiaries); ok {
			apiaryName = a.Name
		}
		strength := clampPercent(h.Strength)
		p.Hives = append(p.Hives, HiveCard{
			ID:             h.ID,
			Number:         h.Number,
			ApiaryName:     apiaryName,
			QueenAge:       l.T(i18n.KeyQueenAge, h.QueenAge),
			Strength:       strength,
			StrengthLabel:  l.Percent(strength),
			LastInspection: l.Date(h.LastInspection),
			HoneyCollected: l.Kg(h.HoneyCollected),
		})
	}

	for _, s := range core.ComputeSeasonStats(harvests, core.Seasons()) {
		p.Seasons = append(p.Seasons, SeasonRow{
			Season:   s.Season,
			Label:    l.T(SeasonLabelKey(s.Season)),
			Total:    l.Kg(s.Total),
			Count:    l.T(i18n.KeyExtractions, s.Count),
			Progress: core.SeasonProgress(s.Total, core.SeasonScaleKg),
		})
	}

	for _, r := range core.RecentHarvests(harvests, core.RecentHarvestLimit) {
		var number string
		if h, ok := core.ResolveHiveForRecord(r, hives); ok {
			number = h.Number
		}
		p.Recent = append(p.Recent, HarvestRow{
			HiveNumber:  number,
			Date:        l.Date(r.Date),
			Amount:      l.Kg(r.Amount),
			SeasonLabel: l.T(SeasonLabelKey(r.Season)),
		})
	}

	for _, t := range ds.Tasks() {
		badge := PriorityBadge(t.Priority)
		p.Tasks = append(p.Tasks, TaskRow{
			Title:         t.Title,
			Window:        t.Window,
			Done:          t.Done,
			PriorityLabel: l.T(badge.LabelKey),
			PriorityClass: badge.Class,
		})
	}

	opened, _ := Transition(st, OpenCreateDialog())
	closed, _ := Transition(st, CloseCreateDialog())
	p.Dialog = Dialog{
		Open:        st.CreateDialogOpen,
		Tab:         st.Tab,
		OpenHref:    opened.Href(),
		PartialHref: st.DialogPartialHref(),
		CloseHref:   closed.Href(),
	}

	return p
}

// WithLanguages fills the language switcher from b.
func (p Page) WithLanguages(b *i18n.Bundle) Page {
	p.Languages = nil
	for _, loc := range b.Locales() {
		q := p.State.Query()
		q.Set(i18n.LangParam, loc)
		p.Languages = append(p.Languages, LanguageOption{
			Locale: loc,
			Label:  b.LanguageName(loc),
			Active: p.L != nil && p.L.Locale() == loc,
			Href:   "/?" + q.Encode(),
		})
	}
	return p
}

// IsTab reports whether tab is the selected one; templates switch on it.
func (p Page) IsTab(tab string) bool {
	return string(p.State.Tab) == tab
}

// WithForm shows the dialog open with the submitted values and their errors.
func (p Page) WithForm(f ApiaryForm, errs map[string]FieldError) Page {
	p.State.CreateDialogOpen = true
	p.Dialog.Open = true
	p.Dialog.Form = f
	p.Dialog.Errors = LocalizeErrors(errs, p.L)
	return p
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > core.MaxStrength {
		return core.MaxStrength
	}
	return v
}
