package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func formulaRows() []Row {
	return []Row{
		{"x": "1", "label": "aa"},
		{"x": "2", "label": "b"},
		{"x": "3", "label": "ccc"},
	}
}

var formulaColumns = []string{"x", "label"}

func applyOne(t *testing.T, formula string) []interface{} {
	t.Helper()
	rows := ApplyFormula(formulaRows(), FormulaConfig{Name: "out", Formula: formula}, formulaColumns)
	values := make([]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row["out"]
	}
	return values
}

func TestFormulaRunningSum(t *testing.T) {
	assert.Equal(t, []interface{}{1.0, 3.0, 6.0}, applyOne(t, "SUM(x)"))
}

func TestFormulaRunningAverage(t *testing.T) {
	assert.Equal(t, []interface{}{1.0, 1.5, 2.0}, applyOne(t, "AVG(x)"))
}

func TestFormulaRunningAverageSkipsUnparseable(t *testing.T) {
	rows := []Row{{"x": "junk"}, {"x": "4"}}
	got := ApplyFormula(rows, FormulaConfig{Name: "out", Formula: "AVG(x)"}, []string{"x"})
	assert.Equal(t, 0.0, got[0]["out"]) // nothing parses yet
	assert.Equal(t, 4.0, got[1]["out"])
}

func TestFormulaLen(t *testing.T) {
	assert.Equal(t, []interface{}{2.0, 1.0, 3.0}, applyOne(t, "LEN(label)"))
}

func TestFormulaLenMissingColumn(t *testing.T) {
	// A missing field reads as the empty string, so its length is 0.
	assert.Equal(t, []interface{}{0.0, 0.0, 0.0}, applyOne(t, "LEN(ghost)"))
}

func TestFormulaRow(t *testing.T) {
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0}, applyOne(t, "ROW()"))
}

func TestFormulaIf(t *testing.T) {
	assert.Equal(t, []interface{}{"small", "small", "big"}, applyOne(t, `IF(x >= 3, 'big', 'small')`))
}

func TestFormulaIfConditionFailureTakesFalseBranch(t *testing.T) {
	// ghost is not a declared column; the condition fails, which selects the
	// false branch rather than poisoning the row.
	assert.Equal(t, []interface{}{"no", "no", "no"}, applyOne(t, `IF(ghost > 1, 'yes', 'no')`))
}

func TestFormulaArithmetic(t *testing.T) {
	assert.Equal(t, []interface{}{3.0, 5.0, 7.0}, applyOne(t, "x * 2 + 1"))
	assert.Equal(t, []interface{}{-1.0, -2.0, -3.0}, applyOne(t, "-x"))
	assert.Equal(t, []interface{}{1.0, 4.0, 9.0}, applyOne(t, "(x) * (x)"))
}

func TestFormulaStringConcatenation(t *testing.T) {
	assert.Equal(t, []interface{}{"aa!", "b!", "ccc!"}, applyOne(t, `label + '!'`))
}

func TestFormulaUnknownIdentifierIsRowLocalNull(t *testing.T) {
	got := applyOne(t, "ghost + 1")
	assert.Equal(t, []interface{}{nil, nil, nil}, got)
}

func TestFormulaBadSyntaxYieldsNulls(t *testing.T) {
	got := applyOne(t, "x +")
	assert.Equal(t, []interface{}{nil, nil, nil}, got)
}

func TestFormulaFailureIsolation(t *testing.T) {
	// One row's evaluation failure must not disturb the others: division by
	// a column that is zero on a single row.
	rows := []Row{{"x": "2"}, {"x": "0"}, {"x": "4"}}
	got := ApplyFormula(rows, FormulaConfig{Name: "out", Formula: "10 / x"}, []string{"x"})
	assert.Equal(t, 5.0, got[0]["out"])
	assert.Nil(t, got[1]["out"])
	assert.Equal(t, 2.5, got[2]["out"])
}

func TestFormulaChaining(t *testing.T) {
	rows := ApplyFormula(formulaRows(), FormulaConfig{Name: "double", Formula: "x * 2"}, formulaColumns)
	rows = ApplyFormula(rows, FormulaConfig{Name: "quad", Formula: "double * 2"}, append(formulaColumns, "double"))
	assert.Equal(t, 4.0, rows[0]["quad"])
	assert.Equal(t, 12.0, rows[2]["quad"])
}

func TestFormulaDoesNotMutateInput(t *testing.T) {
	rows := formulaRows()
	ApplyFormula(rows, FormulaConfig{Name: "out", Formula: "x"}, formulaColumns)
	for _, row := range rows {
		if _, ok := row["out"]; ok {
			t.Fatal("ApplyFormula mutated its input rows")
		}
	}
}

func TestValidateFormula(t *testing.T) {
	existing := []FormulaConfig{{Name: "a", Formula: "x"}}

	assert.Error(t, ValidateFormula(FormulaConfig{Name: "", Formula: "x"}, nil))
	assert.Error(t, ValidateFormula(FormulaConfig{Name: "b", Formula: "  "}, nil))
	assert.Error(t, ValidateFormula(FormulaConfig{Name: "a", Formula: "x"}, existing))
	assert.Error(t, ValidateFormula(FormulaConfig{Name: "b", Formula: "x ~ 1"}, nil))
	assert.NoError(t, ValidateFormula(FormulaConfig{Name: "b", Formula: "SUM(x)"}, existing))
}

func TestParseFormulaErrors(t *testing.T) {
	bad := []string{"", "1 +", "(x", "'open", "IF(x > 1, 'a'", "1 2", "x ! 2"}
	for _, src := range bad {
		if _, err := ParseFormula(src); err == nil {
			t.Errorf("ParseFormula(%q) accepted invalid input", src)
		}
	}
}
