package rename

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/archive"
	"github.com/garyjia/badge-intake/internal/metrics"
)

var jpeg = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

func mappingWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseMapping(t *testing.T) {
	t.Run("columns are found by header regardless of order", func(t *testing.T) {
		data := mappingWorkbook(t, [][]any{
			{"Last Name", "HFYC Number", "First Name"},
			{"Hassan", "HFYC-0007", "Ali"},
			{"Karim", " HFYC-0012 ", "Sara"},
			{"Nobody", "", "Ghost"},
		})

		m, err := ParseMapping(data)

		require.NoError(t, err)
		assert.Equal(t, Mapping{
			"HFYC-0007": "Ali+Hassan",
			"HFYC-0012": "Sara+Karim",
		}, m)
	})

	t.Run("missing column", func(t *testing.T) {
		data := mappingWorkbook(t, [][]any{{"HFYC Number", "First Name"}, {"HFYC-0001", "Ali"}})

		_, err := ParseMapping(data)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := ParseMapping([]byte("csv,data"))
		assert.Error(t, err)
	})
}

func TestRename(t *testing.T) {
	mapping := Mapping{"HFYC-0007": "Ali+Hassan"}
	images := []Image{
		{OriginalName: "scan HFYC-0007 front.jpg", Data: jpeg},
		{OriginalName: "HFYC-0099.jpg", Data: jpeg},
		{OriginalName: "IMG_2041.jpg", Data: jpeg},
	}

	out := Rename(images, mapping)

	require.Len(t, out, 3)
	assert.Equal(t, "Ali+Hassan_HFYC0007.jpg", out[0].NewName)
	assert.False(t, out[1].Renamed(), "unmapped identifier passes through")
	assert.False(t, out[2].Renamed(), "no identifier passes through")
	assert.Equal(t, "IMG_2041.jpg", out[2].OriginalName)
	assert.Empty(t, images[0].NewName, "input is not mutated")
}

func TestRenamer_Package(t *testing.T) {
	m := metrics.New()
	r := NewRenamer(zap.NewNop(), m)
	r.now = func() time.Time { return time.UnixMilli(1700000000123) }

	result, err := r.Package([]Image{
		{OriginalName: "HFYC-0007.jpg", Data: []byte("\xff\xd8\xffa")},
		{OriginalName: "holiday.jpg", Data: jpeg},
		{OriginalName: "HFYC-0012 badge.jpg", Data: []byte("\xff\xd8\xffb")},
	}, Mapping{"HFYC-0007": "Ali+Hassan", "HFYC-0012": "Sara+Karim"})

	require.NoError(t, err)
	assert.Equal(t, "renamed_images1700000000123.zip", result.Name)
	assert.Equal(t, []string{"Ali+Hassan_HFYC0007.jpg", "Sara+Karim_HFYC0012.jpg"}, result.Renamed)
	assert.Equal(t, []string{"holiday.jpg"}, result.Skipped)

	zr, err := archive.NewReader(result.Data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ali+Hassan_HFYC0007.jpg", "Sara+Karim_HFYC0012.jpg"}, zr.Names())

	data, err := zr.ReadFile("Sara+Karim_HFYC0012.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("\xff\xd8\xffb"), data)

	t.Run("images mapping to the same name keep the last upload", func(t *testing.T) {
		result, err := r.Package([]Image{
			{OriginalName: "HFYC-0007 front.jpg", Data: []byte("\xff\xd8\xfffront")},
			{OriginalName: "HFYC-0007 back.jpg", Data: []byte("\xff\xd8\xffback")},
		}, Mapping{"HFYC-0007": "Ali+Hassan"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Ali+Hassan_HFYC0007.jpg"}, result.Renamed)
		assert.Equal(t, []string{"HFYC-0007 front.jpg"}, result.Skipped)

		zr, err := archive.NewReader(result.Data)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ali+Hassan_HFYC0007.jpg"}, zr.Names())
		data, err := zr.ReadFile("Ali+Hassan_HFYC0007.jpg")
		require.NoError(t, err)
		assert.Equal(t, []byte("\xff\xd8\xffback"), data)
	})

	t.Run("nothing matched yields an empty archive, not an error", func(t *testing.T) {
		result, err := r.Package([]Image{{OriginalName: "x.jpg", Data: jpeg}}, Mapping{})
		require.NoError(t, err)

		zr, err := archive.NewReader(result.Data)
		require.NoError(t, err)
		assert.Empty(t, zr.Names())
		assert.Equal(t, []string{"x.jpg"}, result.Skipped)
	})
}
