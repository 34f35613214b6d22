package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"page size below min clamps to 3", PageRequest{Page: 1, PageSize: 1}, PageRequest{Page: 1, PageSize: 3}},
		{"page size above max clamps to 30", PageRequest{Page: 1, PageSize: 100}, PageRequest{Page: 1, PageSize: 30}},
		{"negative page size clamps to 3", PageRequest{Page: 2, PageSize: -5}, PageRequest{Page: 2, PageSize: 3}},
		{"missing page size uses default", PageRequest{Page: 1}, PageRequest{Page: 1, PageSize: 9}},
		{"page zero becomes 1", PageRequest{Page: 0, PageSize: 9}, PageRequest{Page: 1, PageSize: 9}},
		{"negative page becomes 1", PageRequest{Page: -3, PageSize: 12}, PageRequest{Page: 1, PageSize: 12}},
		{"in range untouched", PageRequest{Page: 4, PageSize: 30}, PageRequest{Page: 4, PageSize: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, PageSize: 9}.Offset())
	assert.Equal(t, 18, PageRequest{Page: 3, PageSize: 9}.Offset())
	assert.Equal(t, 0, PageRequest{Page: 0, PageSize: 9}.Offset())
}

func TestParseEventType(t *testing.T) {
	assert.Equal(t, EventTypeVirtual, ParseEventType("virtual"))
	assert.Equal(t, EventTypePresencial, ParseEventType(" Presencial "))
	assert.Equal(t, EventTypeAll, ParseEventType("all"))
	assert.Equal(t, EventTypeAll, ParseEventType("hybrid"))
	assert.Equal(t, EventTypeAll, ParseEventType(""))

	assert.Nil(t, EventTypeAll.VirtualFilter())
	if v := EventTypeVirtual.VirtualFilter(); assert.NotNil(t, v) {
		assert.True(t, *v)
	}
	if v := EventTypePresencial.VirtualFilter(); assert.NotNil(t, v) {
		assert.False(t, *v)
	}
}

func TestParseEventPhase(t *testing.T) {
	assert.Equal(t, EventPhaseUpcoming, ParseEventPhase("proximos"))
	assert.Equal(t, EventPhasePast, ParseEventPhase("past"))
	assert.Equal(t, EventPhaseAuto, ParseEventPhase(""))
}

func TestRolePredicates(t *testing.T) {
	assert.False(t, RoleParticipant.IsOrganizer())
	assert.False(t, RoleParticipant.IsAdmin())

	assert.True(t, RoleOrganizer.IsOrganizer())
	assert.False(t, RoleOrganizer.IsAdmin())

	assert.True(t, RoleAdmin.IsOrganizer())
	assert.True(t, RoleAdmin.IsAdmin())

	assert.False(t, Role("owner").IsValid())
}

func TestParseResourceType(t *testing.T) {
	rt, ok := ParseResourceType("Article")
	assert.True(t, ok)
	assert.Equal(t, ResourceTypeArticle, rt)

	_, ok = ParseResourceType("all")
	assert.False(t, ok)
}

func TestProfile_Matches(t *testing.T) {
	name := "Ada Lovelace"
	company := "Analytical Engines"
	p := &Profile{FullName: &name, Company: &company, Skills: []string{"Go", "Product Discovery"}}

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("ada"))
	assert.True(t, p.Matches("engines"))
	assert.True(t, p.Matches("discovery"))
	assert.False(t, p.Matches("rust"))
}
