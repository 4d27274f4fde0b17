package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GlobalMember represents a person across the entire store.
type GlobalMember struct {
	// ID is allocated by the repository and never reused.
	ID string `json:"id"`

	// Name is unique among global members, compared case-insensitively.
	Name string `json:"name"`
}

// AppData is the root of the persisted store. It is always read and written whole.
type AppData struct {
	Gatherings    []Gathering    `json:"gatherings"`
	GlobalMembers []GlobalMember `json:"globalMembers"`
}

// NewAppData returns the empty default store.
func NewAppData() AppData {
	return AppData{
		Gatherings:    []Gathering{},
		GlobalMembers: []GlobalMember{},
	}
}

// Normalize replaces nil lists with empty ones so that the encoded document
// always carries arrays, never nulls.
func (d *AppData) Normalize() {
	if d.Gatherings == nil {
		d.Gatherings = []Gathering{}
	}
	if d.GlobalMembers == nil {
		d.GlobalMembers = []GlobalMember{}
	}
	for i := range d.Gatherings {
		g := &d.Gatherings[i]
		if g.Members == nil {
			g.Members = []GatheringMember{}
		}
		for j := range g.Members {
			m := &g.Members[j]
			if m.Expenses == nil {
				m.Expenses = []Expense{}
			}
			if m.Payments == nil {
				m.Payments = []Payment{}
			}
		}
	}
}

// Gathering returns the gathering with the given ID, or nil if absent.
// The pointer aliases d.Gatherings and is valid until the slice is modified.
func (d *AppData) Gathering(id string) *Gathering {
	for i := range d.Gatherings {
		if d.Gatherings[i].ID == id {
			return &d.Gatherings[i]
		}
	}
	return nil
}

// GlobalMember returns the global member with the given ID.
func (d *AppData) GlobalMember(id string) (GlobalMember, bool) {
	for _, m := range d.GlobalMembers {
		if m.ID == id {
			return m, true
		}
	}
	return GlobalMember{}, false
}

// GlobalMemberByName returns the global member whose name matches
// case-insensitively. Names are compared lower-cased, so "Straße" and
// "Strasse" stay distinct.
func (d *AppData) GlobalMemberByName(name string) (GlobalMember, bool) {
	lower := cases.Lower(language.Und)
	want := lower.String(name)
	for _, m := range d.GlobalMembers {
		if lower.String(m.Name) == want {
			return m, true
		}
	}
	return GlobalMember{}, false
}

// MemberNames indexes global member names by ID.
func (d *AppData) MemberNames() map[string]string {
	names := make(map[string]string, len(d.GlobalMembers))
	for _, m := range d.GlobalMembers {
		names[m.ID] = m.Name
	}
	return names
}
