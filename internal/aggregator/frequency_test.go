package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/model"
)

func withBowler(d model.Delivery, bowler string) model.Delivery {
	d.Bowler = bowler
	return d
}

func dismissals() []model.Delivery {
	return []model.Delivery{
		withBowler(ball(0, "Caught", ""), "B1"),
		withBowler(ball(0, "RunOut", ""), "B1"),
		withBowler(ball(1, "", ""), "B1"),
		withBowler(ball(4, "", ""), "B1"),
		withBowler(ball(0, "Bowled", ""), "B2"),
		withBowler(ball(2, "", ""), "B2"),
	}
}

func TestFrequencyKeepsZeroCells(t *testing.T) {
	rows := Frequency(dismissals(), model.ColBowler, model.ColDismissalType, FrequencyOptions{})
	require.Len(t, rows, 2)

	b1 := rows[0]
	assert.Equal(t, "B1", b1.Group)
	assert.Equal(t, 4, b1.Total)
	require.Len(t, b1.Cells, 3)
	assert.Equal(t, "Caught Out", b1.Cells[0].Category)
	assert.Equal(t, "25.00%", b1.Cells[0].String())
	assert.Equal(t, "Bowled", b1.Cells[2].Category)
	assert.Equal(t, "0.00%", b1.Cells[2].String())

	b2 := rows[1]
	require.Len(t, b2.Cells, 3)
	assert.Equal(t, 50.0, b2.Cells[2].Pct)
}

func TestFrequencySuppressAndExclude(t *testing.T) {
	opts := FrequencyOptions{SuppressZero: true, Exclude: []string{"Run Out"}}
	rows := Frequency(dismissals(), model.ColBowler, model.ColDismissalType, opts)
	require.Len(t, rows, 2)

	require.Len(t, rows[0].Cells, 1)
	assert.Equal(t, "Caught Out", rows[0].Cells[0].Category)
	require.Len(t, rows[1].Cells, 1)
	assert.Equal(t, "Bowled", rows[1].Cells[0].Category)
}

func TestFrequencyNoCategories(t *testing.T) {
	subset := []model.Delivery{ball(1, "", "Drive")}
	assert.Nil(t, Frequency(subset, model.ColShotType, model.ColFoot, FrequencyOptions{}))
}

func TestLineLengthFrequency(t *testing.T) {
	a := pitched("short", "off", 0)
	a.Foot = "Back"
	b := pitched("short", "off", 1)
	b.Foot = "Front"
	c := pitched("full toss", "leg", 1)
	c.Foot = "Back"

	rows := LineLengthFrequency([]model.Delivery{a, b, c}, model.ColFoot, FrequencyOptions{})
	require.Len(t, rows, 2)
	assert.Equal(t, "short", rows[0].Length)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, []model.FrequencyCell{
		{Category: "Back", Count: 1, Pct: 50},
		{Category: "Front", Count: 1, Pct: 50},
	}, rows[0].Cells)
	assert.Equal(t, "0.00%", rows[1].Cells[1].String())
}
