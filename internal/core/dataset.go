package core

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Dataset.Validate when two entities of the
// same kind share an ID.
var ErrDuplicateID = errors.New("duplicate id")

// Dataset is the immutable entity store behind the dashboard. It is built
// once by a dataset source and passed explicitly to everything that reads it;
// accessors hand out copies so callers cannot mutate the shared collections.
type Dataset struct {
	apiaries []Apiary
	hives    []Hive
	harvests []HarvestRecord
	tasks    []Task
}

// NewDataset copies the given collections into a new Dataset.
func NewDataset(apiaries []Apiary, hives []Hive, harvests []HarvestRecord, tasks []Task) Dataset {
	return Dataset{
		apiaries: append([]Apiary(nil), apiaries...),
		hives:    append([]Hive(nil), hives...),
		harvests: append([]HarvestRecord(nil), harvests...),
		tasks:    append([]Task(nil), tasks...),
	}
}

func (d Dataset) Apiaries() []Apiary {
	return append([]Apiary(nil), d.apiaries...)
}

func (d Dataset) Hives() []Hive {
	return append([]Hive(nil), d.hives...)
}

func (d Dataset) Harvests() []HarvestRecord {
	return append([]HarvestRecord(nil), d.harvests...)
}

func (d Dataset) Tasks() []Task {
	return append([]Task(nil), d.tasks...)
}

// Validate checks every entity and rejects duplicate IDs. Foreign keys are not
// checked: hives pointing at a missing apiary (or records at a missing hive)
// render with an empty label instead.
func (d Dataset) Validate() error {
	var errs []error

	seenApiary := make(map[int]struct{}, len(d.apiaries))
	for i, a := range d.apiaries {
		if err := a.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("apiary[%d]: %w", i, err))
		}
		if _, dup := seenApiary[a.ID]; dup {
			errs = append(errs, fmt.Errorf("apiary[%d] id=%d: %w", i, a.ID, ErrDuplicateID))
		}
		seenApiary[a.ID] = struct{}{}
	}

	seenHive := make(map[int]struct{}, len(d.hives))
	for i, h := range d.hives {
		if err := h.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("hive[%d]: %w", i, err))
		}
		if _, dup := seenHive[h.ID]; dup {
			errs = append(errs, fmt.Errorf("hive[%d] id=%d: %w", i, h.ID, ErrDuplicateID))
		}
		seenHive[h.ID] = struct{}{}
	}

	for i, r := range d.harvests {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("harvest[%d]: %w", i, err))
		}
	}

	for i, t := range d.tasks {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("task[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
