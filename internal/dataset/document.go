// Package dataset defines how the dashboard dataset is loaded and the YAML
// document format shared by the file-based sources.
package dataset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"pasika/internal/core"
)

// Document is the on-disk YAML shape of a dataset.
type Document struct {
	Apiaries []ApiaryDoc  `yaml:"apiaries"`
	Hives    []HiveDoc    `yaml:"hives"`
	Harvests []HarvestDoc `yaml:"harvests"`
	Tasks    []TaskDoc    `yaml:"tasks"`
}

type ApiaryDoc struct {
	ID         int     `yaml:"id"`
	Name       string  `yaml:"name"`
	Location   string  `yaml:"location"`
	HiveCount  int     `yaml:"hive_count"`
	TotalHoney float64 `yaml:"total_honey"`
	AvgPerHive float64 `yaml:"avg_per_hive"`
	Status     string  `yaml:"status"`
}

type HiveDoc struct {
	ID             int     `yaml:"id"`
	ApiaryID       int     `yaml:"apiary_id"`
	Number         string  `yaml:"number"`
	QueenAge       int     `yaml:"queen_age"`
	Strength       int     `yaml:"strength"`
	LastInspection string  `yaml:"last_inspection"`
	HoneyCollected float64 `yaml:"honey_collected"`
}

type HarvestDoc struct {
	Date   string  `yaml:"date"`
	Amount float64 `yaml:"amount"`
	HiveID int     `yaml:"hive_id"`
	Season string  `yaml:"season"`
}

type TaskDoc struct {
	Title    string `yaml:"title"`
	Window   string `yaml:"window"`
	Priority string `yaml:"priority"`
	Done     bool   `yaml:"done"`
}

// Decode reads a YAML document and converts it into a validated Dataset.
func Decode(r io.Reader) (core.Dataset, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return core.Dataset{}, fmt.Errorf("decode dataset yaml: %w", err)
	}
	ds, err := doc.ToDataset()
	if err != nil {
		return core.Dataset{}, err
	}
	if err := ds.Validate(); err != nil {
		return core.Dataset{}, fmt.Errorf("validate dataset: %w", err)
	}
	return ds, nil
}

// ToDataset converts the document into domain types. Dates are parsed here;
// semantic checks are left to Dataset.Validate.
func (d Document) ToDataset() (core.Dataset, error) {
	apiaries := make([]core.Apiary, 0, len(d.Apiaries))
	for _, a := range d.Apiaries {
		apiaries = append(apiaries, core.Apiary{
			ID:         a.ID,
			Name:       a.Name,
			Location:   a.Location,
			HiveCount:  a.HiveCount,
			TotalHoney: a.TotalHoney,
			AvgPerHive: a.AvgPerHive,
			Status:     core.ApiaryStatus(a.Status),
		})
	}

	hives := make([]core.Hive, 0, len(d.Hives))
	for _, h := range d.Hives {
		var inspected core.Date
		if h.LastInspection != "" {
			parsed, err := core.ParseDate(h.LastInspection)
			if err != nil {
				return core.Dataset{}, fmt.Errorf("hive %d last_inspection: %w", h.ID, err)
			}
			inspected = parsed
		}
		hives = append(hives, core.Hive{
			ID:             h.ID,
			ApiaryID:       h.ApiaryID,
			Number:         h.Number,
			QueenAge:       h.QueenAge,
			Strength:       h.Strength,
			LastInspection: inspected,
			HoneyCollected: h.HoneyCollected,
		})
	}

	harvests := make([]core.HarvestRecord, 0, len(d.Harvests))
	for i, r := range d.Harvests {
		var date core.Date
		if r.Date != "" {
			parsed, err := core.ParseDate(r.Date)
			if err != nil {
				return core.Dataset{}, fmt.Errorf("harvest[%d] date: %w", i, err)
			}
			date = parsed
		}
		harvests = append(harvests, core.HarvestRecord{
			Date:   date,
			Amount: r.Amount,
			HiveID: r.HiveID,
			Season: core.Season(r.Season),
		})
	}

	tasks := make([]core.Task, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		tasks = append(tasks, core.Task{
			Title:    t.Title,
			Window:   t.Window,
			Priority: core.Priority(t.Priority),
			Done:     t.Done,
		})
	}

	return core.NewDataset(apiaries, hives, harvests, tasks), nil
}
