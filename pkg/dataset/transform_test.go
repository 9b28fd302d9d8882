package dataset

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanColumnNames(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"First Name", "LAST NAME", "age"},
		{"alice", "smith", "30"},
	})

	t.Run("lowercase and underscores", func(t *testing.T) {
		cleaned := CleanColumnNames(df, true, true)
		assert.Equal(t, []string{"first_name", "last_name", "age"}, cleaned.Names())
	})

	t.Run("underscores only", func(t *testing.T) {
		cleaned := CleanColumnNames(df, false, true)
		assert.Equal(t, []string{"First_Name", "LAST_NAME", "age"}, cleaned.Names())
	})

	t.Run("original is untouched", func(t *testing.T) {
		CleanColumnNames(df, true, true)
		assert.Equal(t, []string{"First Name", "LAST NAME", "age"}, df.Names())
	})
}

func TestRenameColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"id", "name"},
		{"1", "alice"},
	})

	renamed, err := RenameColumns(df, map[string]string{"id": "ID"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "name"}, renamed.Names())

	_, err = RenameColumns(df, map[string]string{"missing": "x"})
	assert.ErrorContains(t, err, "column not found")
}

func TestSelectColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"id", "name", "score"},
		{"1", "alice", "9.5"},
	})

	selected, err := SelectColumns(df, []string{"name", "id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, selected.Names())

	_, err = SelectColumns(df, []string{"missing"})
	assert.Error(t, err)
}

func TestSelectPattern(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"id", "price_min", "price_max", "name"},
		{"1", "2.5", "4.0", "widget"},
	})

	selected, err := SelectPattern(df, "price_*")
	require.NoError(t, err)
	assert.Equal(t, []string{"price_min", "price_max"}, selected.Names())

	_, err = SelectPattern(df, "qty_*")
	assert.ErrorContains(t, err, "no columns match")
}

func TestFilterByValues(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"id", "status"},
		{"1", "active"},
		{"2", "done"},
		{"3", "pending"},
		{"4", "active"},
	})

	filtered, err := FilterByValues(df, "status", "active", "pending")
	require.NoError(t, err)
	assert.Equal(t, 3, filtered.Nrow())

	_, err = FilterByValues(df, "missing", "x")
	assert.Error(t, err)
}

func TestDropDuplicates(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"id", "name"},
		{"1", "alice"},
		{"2", "bob"},
		{"1", "alice"},
		{"1", "other"},
	})

	t.Run("whole rows", func(t *testing.T) {
		deduped, err := DropDuplicates(df)
		require.NoError(t, err)
		assert.Equal(t, 3, deduped.Nrow())
	})

	t.Run("subset keeps first occurrence", func(t *testing.T) {
		deduped, err := DropDuplicates(df, "id")
		require.NoError(t, err)
		assert.Equal(t, 2, deduped.Nrow())
		assert.Equal(t, []string{"alice", "bob"}, deduped.Col("name").Records())
	})

	t.Run("unknown subset column errors", func(t *testing.T) {
		_, err := DropDuplicates(df, "missing")
		assert.Error(t, err)
	})
}

// missingFrame has a float column with holes at rows 0 and 2.
func missingFrame() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"id", "score"},
		{"1", ""},
		{"2", "3.5"},
		{"3", ""},
		{"4", "5.0"},
	}, dataframe.WithTypes(map[string]series.Type{
		"id":    series.Int,
		"score": series.Float,
	}))
}

func TestFillMissing(t *testing.T) {
	filled := FillMissing(missingFrame(), "0")

	col := filled.Col("score")
	assert.False(t, col.HasNaN())
	values := col.Float()
	assert.Equal(t, 0.0, values[0])
	assert.Equal(t, 3.5, values[1])
	assert.Equal(t, 0.0, values[2])
}

func TestFillForward(t *testing.T) {
	filled := FillForward(missingFrame())

	col := filled.Col("score")
	values := col.Float()
	// Leading hole has nothing to propagate
	assert.True(t, col.IsNaN()[0])
	assert.Equal(t, 3.5, values[1])
	assert.Equal(t, 3.5, values[2])
	assert.Equal(t, 5.0, values[3])
}

func TestFillBackward(t *testing.T) {
	filled := FillBackward(missingFrame())

	col := filled.Col("score")
	values := col.Float()
	assert.Equal(t, 3.5, values[0])
	assert.Equal(t, 5.0, values[2])
	assert.False(t, col.HasNaN())
}

func TestCastColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"count", "label"},
		{"1", "abc"},
		{"2", "def"},
	}, dataframe.DetectTypes(false))

	cast, failures := CastColumns(df, map[string]Type{
		"count": TypeInt,
		"label": TypeInt,
	})

	// The valid column converted, the invalid one is reported and left
	// unchanged, and no error reached the caller
	require.Len(t, failures, 1)
	assert.Equal(t, "label", failures[0].Column)

	assert.Equal(t, TypeInt, cast.Col("count").Type())
	assert.Equal(t, TypeString, cast.Col("label").Type())
	assert.Equal(t, []string{"abc", "def"}, cast.Col("label").Records())
}

func TestCastColumnsDoesNotTruncate(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"score"},
		{"9.5"},
		{"7.0"},
	})
	require.Equal(t, TypeFloat, df.Col("score").Type())

	// Fractional floats do not narrow to int; the cast is reported as a
	// failure and the column keeps its values
	cast, failures := CastColumns(df, map[string]Type{"score": TypeInt})
	require.Len(t, failures, 1)
	assert.Equal(t, "score", failures[0].Column)
	assert.Equal(t, TypeFloat, cast.Col("score").Type())
	assert.Equal(t, []float64{9.5, 7.0}, cast.Col("score").Float())
}

func TestCastColumnsSkipsUnknown(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"count"},
		{"1"},
	}, dataframe.DetectTypes(false))

	cast, failures := CastColumns(df, map[string]Type{"missing": TypeInt})
	assert.Empty(t, failures)
	assert.Equal(t, df.Names(), cast.Names())
}

func TestMerge(t *testing.T) {
	left := dataframe.LoadRecords([][]string{
		{"id", "name"},
		{"1", "alice"},
		{"2", "bob"},
	})
	right := dataframe.LoadRecords([][]string{
		{"id", "score"},
		{"1", "9.5"},
		{"3", "4.0"},
	})

	t.Run("inner", func(t *testing.T) {
		merged, err := Merge([]dataframe.DataFrame{left, right}, JoinInner, "id")
		require.NoError(t, err)
		assert.Equal(t, 1, merged.Nrow())
	})

	t.Run("left", func(t *testing.T) {
		merged, err := Merge([]dataframe.DataFrame{left, right}, JoinLeft, "id")
		require.NoError(t, err)
		assert.Equal(t, 2, merged.Nrow())
	})

	t.Run("outer", func(t *testing.T) {
		merged, err := Merge([]dataframe.DataFrame{left, right}, JoinOuter, "id")
		require.NoError(t, err)
		assert.Equal(t, 3, merged.Nrow())
	})

	t.Run("requires key columns", func(t *testing.T) {
		_, err := Merge([]dataframe.DataFrame{left, right}, JoinInner)
		assert.Error(t, err)
	})

	t.Run("rejects unknown join kind", func(t *testing.T) {
		_, err := Merge([]dataframe.DataFrame{left, right}, JoinKind("cross-ish"), "id")
		assert.Error(t, err)
	})
}

func TestConcat(t *testing.T) {
	first := dataframe.LoadRecords([][]string{
		{"id", "name"},
		{"1", "alice"},
	})
	second := dataframe.LoadRecords([][]string{
		{"id", "name"},
		{"2", "bob"},
	})

	t.Run("stacks rows", func(t *testing.T) {
		combined, err := Concat([]dataframe.DataFrame{first, second})
		require.NoError(t, err)
		assert.Equal(t, 2, combined.Nrow())
	})

	t.Run("unions columns", func(t *testing.T) {
		extra := dataframe.LoadRecords([][]string{
			{"id", "city"},
			{"3", "lisbon"},
		})
		combined, err := Concat([]dataframe.DataFrame{first, extra})
		require.NoError(t, err)
		assert.Equal(t, 2, combined.Nrow())
		assert.Equal(t, 3, combined.Ncol())
	})

	t.Run("empty input errors", func(t *testing.T) {
		_, err := Concat(nil)
		assert.Error(t, err)
	})
}
