package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDefaultOperators(t *testing.T) {
	tests := []struct {
		fieldType FieldType
		expected  []string
	}{
		{FieldTypeString, []string{"eq", "neq", "contains", "startswith", "endswith", "regex"}},
		{FieldTypeNumber, []string{"eq", "neq", "gt", "gte", "lt", "lte"}},
		{FieldTypeBoolean, []string{"eq", "neq"}},
		{FieldTypeSelect, []string{"eq", "neq"}},
		{FieldType("date"), []string{"eq", "neq", "contains", "startswith", "endswith", "regex"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			got := DefaultOperators(tt.fieldType)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDefaultOperatorsReturnsCopy(t *testing.T) {
	ops := DefaultOperators(FieldTypeBoolean)
	ops[0] = "mutated"
	if DefaultOperators(FieldTypeBoolean)[0] != "eq" {
		t.Error("expected catalog to be unaffected by caller mutation")
	}
}

func TestEffectiveOperators(t *testing.T) {
	f := FilterDescriptor{Type: FieldTypeNumber}
	if got := f.EffectiveOperators(); len(got) != 6 {
		t.Errorf("expected number defaults, got %v", got)
	}

	f.Operators = []string{"gt"}
	if got := f.EffectiveOperators(); !reflect.DeepEqual(got, []string{"gt"}) {
		t.Errorf("expected explicit operators, got %v", got)
	}
}

func TestOperatorCatalogHasLabels(t *testing.T) {
	catalog := NewOperatorCatalog()
	if len(catalog) != len(FieldTypes) {
		t.Fatalf("expected %d types, got %d", len(FieldTypes), len(catalog))
	}
	for fieldType, infos := range catalog {
		for _, info := range infos {
			if info.Label == "" {
				t.Errorf("missing label for %s/%s", fieldType, info.ID)
			}
		}
	}
	if catalog[FieldTypeString][5].Label != "Matches regex" {
		t.Errorf("expected regex label, got %s", catalog[FieldTypeString][5].Label)
	}
}

func TestNewFilterTemplates(t *testing.T) {
	templates := NewFilterTemplates()
	if !reflect.DeepEqual(templates.Types, FieldTypes) {
		t.Errorf("expected types %v, got %v", FieldTypes, templates.Types)
	}
	if len(templates.Operators[FieldTypeSelect]) != 2 {
		t.Errorf("expected 2 select operators, got %v", templates.Operators[FieldTypeSelect])
	}
}

func TestOperatorInfoWireShape(t *testing.T) {
	data, err := json.Marshal(OperatorInfo{ID: "gte", Label: "Greater or equal"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"id":"gte","label":"Greater or equal"}`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
