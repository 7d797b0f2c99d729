package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetAccessorsReturnCopies(t *testing.T) {
	apiaries := []Apiary{{ID: 1, Name: "A", Status: StatusActive}}
	d := NewDataset(apiaries, nil, nil, nil)

	apiaries[0].Name = "mutated input"
	assert.Equal(t, "A", d.Apiaries()[0].Name)

	got := d.Apiaries()
	got[0].Name = "mutated output"
	assert.Equal(t, "A", d.Apiaries()[0].Name)

	assert.Empty(t, d.Hives())
	assert.Empty(t, d.Harvests())
	assert.Empty(t, d.Tasks())
}

func TestDatasetValidate(t *testing.T) {
	t.Run("dangling references are allowed", func(t *testing.T) {
		d := NewDataset(
			[]Apiary{{ID: 1, Name: "A", Status: StatusActive}},
			[]Hive{{ID: 1, ApiaryID: 77, Strength: 50}},
			[]HarvestRecord{{HiveID: 99, Amount: 3, Season: Autumn}},
			nil,
		)
		require.NoError(t, d.Validate())
	})

	t.Run("duplicate ids", func(t *testing.T) {
		d := NewDataset(
			[]Apiary{{ID: 1, Name: "A", Status: StatusActive}, {ID: 1, Name: "B", Status: StatusDormant}},
			[]Hive{{ID: 2, ApiaryID: 1}, {ID: 2, ApiaryID: 1}},
			nil, nil,
		)
		err := d.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateID))
	})

	t.Run("entity errors are aggregated", func(t *testing.T) {
		d := NewDataset(
			[]Apiary{{ID: 1, Name: "A", Status: "unknown"}},
			nil,
			[]HarvestRecord{{HiveID: 1, Amount: -1, Season: Spring}},
			[]Task{{Title: "", Priority: PriorityHigh}},
		)
		err := d.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownStatus)
		assert.ErrorIs(t, err, ErrNegativeHoney)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})
}
