package catalog

import (
	"rockbot/internal/models"
	"rockbot/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetCSV = `id,name,aliases,images,hardness,luster,streak,category,density
1,Bornite,Peacock ore,https://img/bornite.jpg,3,Metallic,Gray-black,Sulfide,5.1
,Rose Quartz,Rock crystal | ,https://img/rq1.jpg|https://img/rq2.jpg,7,Vitreous,White,,
x7,Obsidian,,https://img/obs.jpg,,,,,
,,,,,,,,
9,Galena,,,2.5,Metallic,Lead-gray,Sulfide,
`

func TestParseCSV_Rows(t *testing.T) {
	logger := &testutil.MockLogger{}
	entries, err := ParseCSV([]byte(sheetCSV), logger)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	bornite := entries[0]
	assert.Equal(t, 1, bornite.ID)
	assert.Equal(t, "Bornite", bornite.Name)
	assert.Equal(t, []string{"Peacock ore"}, bornite.Aliases)
	assert.Equal(t, []string{"https://img/bornite.jpg"}, bornite.Images)
	assert.Equal(t, "5.1", bornite.Property(models.PropDensity))

	rq := entries[1]
	assert.Equal(t, 2, rq.ID, "missing id falls back to position")
	assert.Equal(t, []string{"Rock crystal"}, rq.Aliases)
	assert.Len(t, rq.Images, 2)
	assert.Equal(t, models.UnknownProperty, rq.Properties[models.PropCategory])

	obs := entries[2]
	assert.Equal(t, 3, obs.ID, "malformed id falls back to position")
	assert.Empty(t, obs.Aliases)
	assert.NotNil(t, obs.Aliases)
	assert.Equal(t, models.UnknownProperty, obs.Properties[models.PropHardness])
	_, hasDensity := obs.Properties[models.PropDensity]
	assert.False(t, hasDensity)

	assert.True(t, logger.Contains("warn", "Galena"), "entry without images is dropped with a warning")
}

func TestParseCSV_Empty(t *testing.T) {
	entries, err := ParseCSV(nil, &testutil.MockLogger{})
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	entries, err := ParseCSV([]byte("id,name,images\n"), &testutil.MockLogger{})
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseCSV_HeaderCaseAndBOM(t *testing.T) {
	data := "\ufeffID, Name ,IMAGES\n4,Pyrite,https://img/p.jpg\n"
	entries, err := ParseCSV([]byte(data), &testutil.MockLogger{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].ID)
	assert.Equal(t, "Pyrite", entries[0].Name)
}

func TestParseJSON_Items(t *testing.T) {
	data := `[
		{"id": 10, "name": "Pyrite", "aliases": ["Fool's gold"], "images": ["https://img/p1.jpg", "https://img/p2.jpg"], "hardness": "6"},
		{"name": "Halite", "aliases": "Rock salt|Salt", "images": "https://img/h.jpg"},
		{"name": "Nope", "images": []},
		"garbage"
	]`
	logger := &testutil.MockLogger{}
	entries, err := ParseJSON([]byte(data), logger)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 10, entries[0].ID)
	assert.Equal(t, []string{"Fool's gold"}, entries[0].Aliases)
	assert.Len(t, entries[0].Images, 2)
	assert.Equal(t, "6", entries[0].Property(models.PropHardness))

	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, []string{"Rock salt", "Salt"}, entries[1].Aliases)
	assert.Equal(t, models.UnknownProperty, entries[1].Property(models.PropLuster))

	assert.Equal(t, 2, logger.Count("warn"))
}

func TestParseJSON_NotArray(t *testing.T) {
	_, err := ParseJSON([]byte(`{"name":"x"}`), &testutil.MockLogger{})
	assert.ErrorIs(t, err, ErrFeedUnavailable)

	_, err = ParseJSON([]byte(`not json`), &testutil.MockLogger{})
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestParseCSV_LeadingZeroIdsAreDecimal(t *testing.T) {
	data := "id,name,images\n010,Galena,https://img/g.jpg\n08,Pyrite,https://img/p.jpg\n 7 ,Quartz,https://img/q.jpg\n"
	entries, err := ParseCSV([]byte(data), &testutil.MockLogger{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 10, entries[0].ID)
	assert.Equal(t, 8, entries[1].ID)
	assert.Equal(t, 7, entries[2].ID)
}
