package msgfmt

import "testing"

func TestNumeralSpecFormat(t *testing.T) {
	western := NumeralSpec{DecimalSep: ",", GroupSep: "."}
	arabic := NumeralSpec{Digits: "٠١٢٣٤٥٦٧٨٩", DecimalSep: "٫", GroupSep: "٬"}

	tests := []struct {
		name string
		spec NumeralSpec
		in   string
		want string
	}{
		{name: "zero value identity", spec: NumeralSpec{}, in: "1234.5", want: "1234.5"},
		{name: "grouped decimal comma", spec: western, in: "987654321.654321", want: "987.654.321,654321"},
		{name: "no group under four digits", spec: western, in: "999", want: "999"},
		{name: "four digits grouped", spec: western, in: "1000", want: "1.000"},
		{name: "negative", spec: western, in: "-1234567", want: "-1.234.567"},
		{name: "arabic digits", spec: arabic, in: "12345.67", want: "١٢٬٣٤٥٫٦٧"},
		{name: "non numeric unchanged", spec: western, in: "twelve", want: "twelve"},
		{name: "trailing dot unchanged", spec: western, in: "12.", want: "12."},
		{name: "empty unchanged", spec: western, in: "", want: ""},
	}

	for _, tc := range tests {
		if got := tc.spec.Format(tc.in); got != tc.want {
			t.Fatalf("%s: Format(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNumeralSpecParse(t *testing.T) {
	western := NumeralSpec{DecimalSep: ",", GroupSep: "."}
	arabic := NumeralSpec{Digits: "٠١٢٣٤٥٦٧٨٩", DecimalSep: "٫", GroupSep: "٬"}

	tests := []struct {
		name string
		spec NumeralSpec
		in   string
		want string
	}{
		{name: "separators undone", spec: western, in: "987.654.321,654321", want: "987654321.654321"},
		{name: "arabic digits back to ascii", spec: arabic, in: "١٢٬٣٤٥٫٦٧", want: "12345.67"},
		{name: "foreign runes pass through", spec: western, in: "ca. 1,5 km", want: "ca 1.5 km"},
		{name: "ascii digits untouched", spec: arabic, in: "42", want: "42"},
	}

	for _, tc := range tests {
		if got := tc.spec.Parse(tc.in); got != tc.want {
			t.Fatalf("%s: Parse(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNumeralSpecRoundTrip(t *testing.T) {
	specs := []NumeralSpec{
		{},
		{DecimalSep: ",", GroupSep: "."},
		{DecimalSep: ",", GroupSep: " "},
		{Digits: "۰۱۲۳۴۵۶۷۸۹", DecimalSep: "٫", GroupSep: "٬"},
	}
	values := []string{"0", "7", "1234", "987654321.654321", "-250000.5"}

	for _, spec := range specs {
		for _, value := range values {
			if got := spec.Parse(spec.Format(value)); got != value {
				t.Fatalf("spec %+v: round trip of %q = %q", spec, value, got)
			}
		}
	}
}
