package codec

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mmynk/gatherings/internal/models"
)

func sample() models.AppData {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return models.AppData{
		GlobalMembers: []models.GlobalMember{
			{ID: "global-1", Name: "Zoë"},
			{ID: "global-2", Name: "李雷"},
		},
		Gatherings: []models.Gathering{{
			ID:          "Camping 🏕",
			Description: "Lakeside, weekend",
			Status:      models.StatusClosed,
			CreatedAt:   created,
			Members: []models.GatheringMember{
				{
					MemberID: "global-1",
					Expenses: []models.Expense{{ID: "exp-1", Amount: models.MustAmount("42.10"), CreatedAt: created}},
					Payments: []models.Payment{{ID: "settle-1", Amount: models.MustAmount("-21.05"), CreatedAt: created, Source: models.PaymentSourceSettlement}},
				},
				{
					MemberID: "global-2",
					Payments: []models.Payment{
						{ID: "pay-1", Amount: models.MustAmount("1"), CreatedAt: created, Source: models.PaymentSourceUser},
						{ID: "settle-2", Amount: models.MustAmount("20.05"), CreatedAt: created, Source: models.PaymentSourceSettlement},
					},
				},
			},
		}},
	}
}

var amountComparer = cmp.Comparer(func(a, b models.Amount) bool { return a.Equal(b) })

func TestRoundTrip(t *testing.T) {
	want := sample()

	token, err := Export(want)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got, err := Import(token)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(want, got, amountComparer, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	token, err := Export(models.AppData{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if want := base64.StdEncoding.EncodeToString([]byte(`{"gatherings":[],"globalMembers":[]}`)); token != want {
		t.Errorf("token = %s, want %s", token, want)
	}
	data, err := Import(token)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if data.Gatherings == nil || data.GlobalMembers == nil {
		t.Error("expected empty lists")
	}
}

func TestImportLegacyToken(t *testing.T) {
	// Written by an older release: fractional float amounts, no payment source,
	// millisecond timestamps.
	doc := `{"gatherings":[{"id":"Trip","description":"Café","status":"open","createdAt":"2024-05-01T10:00:00.000Z",` +
		`"members":[{"memberId":"global-1","expenses":[{"id":"exp-1","amount":19.99,"createdAt":"2024-05-01T11:00:00.000Z"}],"payments":[]}]}],` +
		`"globalMembers":[{"id":"global-1","name":"Renée"}]}`
	token := "  \n" + base64.StdEncoding.EncodeToString([]byte(doc)) + "\n"

	data, err := Import(token)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if data.GlobalMembers[0].Name != "Renée" || data.Gatherings[0].Description != "Café" {
		t.Errorf("unicode text not preserved: %+v", data)
	}
	e := data.Gatherings[0].Members[0].Expenses[0]
	if !e.Amount.Equal(models.MustAmount("19.99")) {
		t.Errorf("amount = %s, want 19.99", e.Amount)
	}
}

func TestImportInvalid(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"not json", enc("hello")},
		{"json array", enc("[]")},
		{"missing globalMembers", enc(`{"gatherings":[]}`)},
		{"missing gatherings", enc(`{"globalMembers":[]}`)},
		{"gatherings not a list", enc(`{"gatherings":{},"globalMembers":[]}`)},
		{"amount beyond float range", enc(`{"gatherings":[{"id":"g","members":[{"memberId":"m","expenses":[{"amount":1e2000000}]}]}],"globalMembers":[]}`)},
		{"amount with huge negative exponent", enc(`{"gatherings":[{"id":"g","members":[{"memberId":"m","payments":[{"amount":"1e-50000000"}]}]}],"globalMembers":[]}`)},
		{"bad amount", enc(`{"gatherings":[{"id":"g","members":[{"memberId":"m","expenses":[{"amount":"x"}]}]}],"globalMembers":[]}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.token)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Import(%q) error = %v, want ErrInvalidFormat", tt.token, err)
			}
		})
	}
}
