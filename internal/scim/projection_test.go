package scim_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mase3206/nextcloud-scim-connector/internal/scim"
)

func TestProjectionFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		has      []string
		hasNot   []string
	}{
		{
			name:     "no parameters means all attributes",
			rawQuery: "",
			has:      []string{"displayName", "emails", "active"},
		},
		{
			name:     "comma-separated include",
			rawQuery: "attributes=displayName,emails",
			has:      []string{"displayName", "emails"},
			hasNot:   []string{"active", "phoneNumbers"},
		},
		{
			name:     "repeated parameter include",
			rawQuery: "attributes=displayName&attributes=emails",
			has:      []string{"displayName", "emails"},
			hasNot:   []string{"active"},
		},
		{
			name:     "exclusion wins over the default",
			rawQuery: "excludedAttributes=emails",
			has:      []string{"displayName"},
			hasNot:   []string{"emails"},
		},
		{
			name:     "exclusion wins over an explicit include",
			rawQuery: "attributes=emails&excludedAttributes=emails",
			hasNot:   []string{"emails"},
		},
		{
			name:     "attribute names are case-insensitive",
			rawQuery: "attributes=DISPLAYNAME",
			has:      []string{"displayName"},
			hasNot:   []string{"emails"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.rawQuery)
			assert.NoError(t, err)

			p := scim.ProjectionFromQuery(query)

			for _, attr := range tt.has {
				assert.True(t, p.Has(attr), "expected %s to be materialized", attr)
			}

			for _, attr := range tt.hasNot {
				assert.False(t, p.Has(attr), "expected %s to be suppressed", attr)
			}
		})
	}
}

func TestProjectionExplicitOnly(t *testing.T) {
	// Relation attributes never materialize by the all-attributes default.
	all := scim.ProjectionFromQuery(url.Values{})
	assert.True(t, all.Has("groups"))
	assert.False(t, all.Explicit("groups"))

	requested := scim.ProjectionFromQuery(url.Values{"attributes": {"groups"}})
	assert.True(t, requested.Explicit("groups"))

	excluded := scim.ProjectionFromQuery(url.Values{
		"attributes":         {"groups"},
		"excludedAttributes": {"groups"},
	})
	assert.False(t, excluded.Explicit("groups"))
}

func TestProjectionIncluding(t *testing.T) {
	// Forcing a relation attribute must not narrow the all-attributes default.
	p := scim.ProjectionFromQuery(url.Values{}).Including("groups")

	assert.True(t, p.Explicit("groups"))
	assert.True(t, p.Has("displayName"))
	assert.True(t, p.Has("emails"))
}

func TestGroupsOnly(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     bool
	}{
		{name: "just groups", rawQuery: "attributes=groups", want: true},
		{name: "groups plus the id", rawQuery: "attributes=userName,groups", want: true},
		{name: "groups plus a record attribute", rawQuery: "attributes=groups,emails", want: false},
		{name: "default projection", rawQuery: "", want: false},
		{name: "groups not requested", rawQuery: "attributes=userName", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.rawQuery)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, scim.ProjectionFromQuery(query).GroupsOnly())
		})
	}
}

func TestNeedsUserRecord(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     bool
	}{
		{name: "default needs the record", rawQuery: "", want: true},
		{name: "userName only needs just the id", rawQuery: "attributes=userName", want: false},
		{name: "groups need the record", rawQuery: "attributes=userName,groups", want: true},
		{name: "emails need the record", rawQuery: "attributes=emails", want: true},
		{name: "everything scalar excluded", rawQuery: "excludedAttributes=displayName,name,active,emails,phoneNumbers,addresses", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.rawQuery)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, scim.ProjectionFromQuery(query).NeedsUserRecord())
		})
	}
}
