package dataset

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	csv := `outlook,temperature,play
sunny,30.5,no
rainy,?,yes
overcast,12.0,yes
sunny,25.0,no
`
	table, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if table.Len() != 4 {
		t.Errorf("Len = %d, expected 4", table.Len())
	}
	if table.Domain.Attributes[0].Type != AttrDiscrete {
		t.Error("outlook should be discrete")
	}
	if table.Domain.Attributes[1].Type != AttrContinuous {
		t.Error("temperature should be continuous")
	}
	if table.Domain.Class.Name != "play" || table.Domain.Class.NumValues() != 2 {
		t.Errorf("class = %v", table.Domain.Class)
	}

	if !table.Examples[1].Values[1].IsMissing() {
		t.Error("? cell should be missing")
	}
	if table.Examples[2].Values[1].Num != 12.0 {
		t.Errorf("temperature of row 3 = %v, expected 12.0", table.Examples[2].Values[1])
	}
	if got := table.Domain.Class.ValueName(table.Examples[0].Class); got != "no" {
		t.Errorf("class of row 1 = %q, expected no", got)
	}
}

func TestReadCSVNumericLookingClassStaysDiscrete(t *testing.T) {
	csv := "a,c\n1.5,0\n2.5,1\n"
	table, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if table.Domain.Class.Type != AttrDiscrete {
		t.Error("class column must stay discrete")
	}
	if table.Domain.Attributes[0].Type != AttrContinuous {
		t.Error("numeric attribute should be continuous")
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no rows", "a,c\n"},
		{"single column", "c\nx\n"},
		{"empty input", ""},
	}
	for _, tc := range tests {
		if _, err := ReadCSV(strings.NewReader(tc.csv)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
