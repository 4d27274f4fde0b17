package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "12.50", want: "12.5"},
		{in: "-3", want: "-3"},
		{in: "0", want: "0"},
		{in: "0.1", want: "0.1"},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "0e-1000000", want: "0"},
		{in: "1e400", wantErr: true},
		{in: "-1e400", wantErr: true},
		{in: "1e-400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewAmount(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("NewAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountFromFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := AmountFromFloat(f); err == nil {
			t.Errorf("AmountFromFloat(%v) expected error", f)
		}
	}
	a, err := AmountFromFloat(10.25)
	if err != nil {
		t.Fatalf("AmountFromFloat(10.25) failed: %v", err)
	}
	if !a.Equal(MustAmount("10.25")) {
		t.Errorf("AmountFromFloat(10.25) = %s", a)
	}
}

func TestAmountRepeatedAdditionIsExact(t *testing.T) {
	// 0.1 added ten times is exactly 1, which float64 cannot guarantee.
	sum := Zero
	for i := 0; i < 10; i++ {
		sum = sum.Add(MustAmount("0.1"))
	}
	if !sum.Equal(AmountFromInt(1)) {
		t.Errorf("sum = %s, want 1", sum)
	}
}

func TestAmountDivInt(t *testing.T) {
	third := AmountFromInt(100).DivInt(3)
	back := third.Add(third).Add(third)
	diff := AmountFromInt(100).Sub(back).Abs()
	if diff.GreaterThan(MustAmount("0.000000001")) {
		t.Errorf("100/3*3 differs from 100 by %s", diff)
	}
	if got := AmountFromInt(90).DivInt(3); !got.Equal(AmountFromInt(30)) {
		t.Errorf("90/3 = %s, want 30", got)
	}
}

func TestAmountJSON(t *testing.T) {
	t.Run("encodes as bare number", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Amount Amount `json:"amount"`
		}{MustAmount("-60.5")})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != `{"amount":-60.5}` {
			t.Errorf("Marshal = %s", data)
		}
	})

	t.Run("decodes numbers strings and null", func(t *testing.T) {
		tests := map[string]string{
			`90`:      "90",
			`33.33`:   "33.33",
			`"12.10"`: "12.1",
			`-0.5`:    "-0.5",
			`null`:    "0",
		}
		for in, want := range tests {
			var a Amount
			if err := json.Unmarshal([]byte(in), &a); err != nil {
				t.Errorf("Unmarshal(%s) failed: %v", in, err)
				continue
			}
			if a.String() != want {
				t.Errorf("Unmarshal(%s) = %s, want %s", in, a, want)
			}
		}
	})

	t.Run("bounded by the float64 range", func(t *testing.T) {
		for _, in := range []string{`1e2000000`, `-1e309`, `"1e50000000"`, `1e-2000000`} {
			var a Amount
			if err := json.Unmarshal([]byte(in), &a); err == nil {
				t.Errorf("Unmarshal(%s) expected out of range error", in)
			}
		}
		for _, in := range []string{`1.7e308`, `-1.7e308`, `5e-324`} {
			var a Amount
			if err := json.Unmarshal([]byte(in), &a); err != nil {
				t.Errorf("Unmarshal(%s) failed: %v", in, err)
			}
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var a Amount
		if err := json.Unmarshal([]byte(`"twelve"`), &a); err == nil {
			t.Error("expected error for non-numeric amount")
		}
	})
}

func TestAmountFixed2(t *testing.T) {
	if got := MustAmount("33.3333").Fixed2(); got != "33.33" {
		t.Errorf("Fixed2 = %s, want 33.33", got)
	}
	if got := AmountFromInt(-30).Fixed2(); got != "-30.00" {
		t.Errorf("Fixed2 = %s, want -30.00", got)
	}
}
