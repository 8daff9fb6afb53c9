package editor

import (
	"reflect"
	"strings"
	"testing"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

func sampleDescriptor() domain.SourceDescriptor {
	rate := 1.5
	d := domain.NewSourceDescriptor()
	d.Name = "CoinAPI"
	d.Description = "Crypto asset prices"
	d.Endpoint = "https://rest.coinapi.io/v1/assets?filter=a&b=c"
	d.AuthRequired = true
	d.APIKey = "secret"
	d.RateLimit = &rate
	d.SupportsPagination = true
	d.PaginationStyle = domain.PaginationPageLimit
	d.Mapping["$.asset_id"] = "symbol"
	d.Headers["Accept"] = "application/json"
	d.APIFilters = append(d.APIFilters, domain.QueryParamDescriptor{
		Key: "quote", Type: domain.FieldTypeSelect, Label: "Quote", Default: "usd",
		Required: true, UserEditable: false, Hidden: true,
		Options: []string{"usd", "eur"}, APIParam: "quote_currency",
	})
	d.BackendFilters = append(d.BackendFilters, domain.FilterDescriptor{
		Key: "price", Type: domain.FieldTypeNumber, Label: "Price", Filterable: false,
		Options: []string{}, Path: "$.price_usd", Operators: []string{"gt", "lt"},
	})
	return d
}

func TestSerializeParseRoundTrip(t *testing.T) {
	models := map[string]domain.SourceDescriptor{
		"defaults": domain.NewSourceDescriptor(),
		"sample":   sampleDescriptor(),
		"zero":     {},
		"one item": func() domain.SourceDescriptor {
			d, _ := AddItem(domain.NewSourceDescriptor(), ListAPIFilters)
			return d
		}(),
	}

	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			parsed, err := Parse(Serialize(m))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(parsed, m) {
				t.Errorf("round trip mismatch:\nwant %#v\ngot  %#v", m, parsed)
			}
		})
	}
}

func TestSerializeFormat(t *testing.T) {
	text := Serialize(sampleDescriptor())

	if !strings.HasPrefix(text, "{\n  \"name\": \"CoinAPI\"") {
		t.Errorf("expected two-space indented output, got:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Error("expected no trailing newline")
	}
	if !strings.Contains(text, "filter=a&b=c") {
		t.Error("expected ampersands to be written literally")
	}
	if !strings.Contains(text, `"request_timeout": 30`) {
		t.Errorf("expected request_timeout in output, got:\n%s", text)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"truncated", "{not json"},
		{"empty", ""},
		{"array", "[]"},
		{"null", "null"},
		{"string", `"CoinAPI"`},
		{"wrong type", `{"name": 42}`},
		{"wrong nested type", `{"api_filters": [{"options": "usd"}]}`},
		{"trailing garbage", `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !IsInvalidJSON(err) {
				t.Errorf("expected ErrInvalidJSON, got %v", err)
			}
		})
	}
}

func TestParseIsVerbatim(t *testing.T) {
	d, err := Parse(`{"name": "CoinAPI", "api_filters": [{"key": "q"}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "CoinAPI" {
		t.Errorf("expected name CoinAPI, got %q", d.Name)
	}
	if d.Method != "" {
		t.Errorf("expected absent method to stay empty, got %q", d.Method)
	}
	if d.RequestTimeout != nil {
		t.Errorf("expected absent request_timeout, got %v", *d.RequestTimeout)
	}
	if !d.APIFilters[0].UserEditable {
		t.Error("expected user_editable to default to true")
	}
}
