package mcp

import (
	"strings"

	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
)

type IDParams struct {
	ID int64 `json:"id" jsonschema:"numeric id of the record"`
}

type ReplaceParams[In any] struct {
	ID     int64 `json:"id" jsonschema:"numeric id of the record to overwrite"`
	Record In    `json:"record" jsonschema:"the complete new record"`
}

type PatchParams struct {
	ID    int64  `json:"id" jsonschema:"numeric id of the record"`
	Field string `json:"field" jsonschema:"name of the field to replace"`
	Value string `json:"value,omitempty" jsonschema:"new value as text; blank clears an optional field"`
}

type ListOutbreaksParams struct {
	Query  string `json:"query,omitempty" jsonschema:"case-insensitive text matched against facility name and outbreak type"`
	Status string `json:"status,omitempty" jsonschema:"all, active or resolved (default all)"`
}

type ListFacilitiesParams struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive text matched against name, address and setting"`
}

type ListCaseStatsParams struct {
	OutbreakID int64 `json:"outbreakId,omitempty" jsonschema:"only return statistics for this outbreak"`
}

type OverviewParams struct{}

type OutbreakInput struct {
	FacilityID       int64  `json:"facilityId" jsonschema:"id of the facility where the outbreak occurs"`
	OutbreakType     string `json:"outbreakType" jsonschema:"outbreak type, e.g. Respiratory or Enteric"`
	CausativeAgent1  string `json:"causativeAgent1,omitempty" jsonschema:"primary causative agent"`
	CausativeAgent2  string `json:"causativeAgent2,omitempty" jsonschema:"secondary causative agent"`
	DateBegan        string `json:"dateBegan" jsonschema:"YYYY-MM-DD or an RFC 3339 instant"`
	DateDeclaredOver string `json:"dateDeclaredOver,omitempty" jsonschema:"YYYY-MM-DD or an RFC 3339 instant; omit while ongoing"`
	IsActive         bool   `json:"isActive" jsonschema:"whether the outbreak is active"`
}

func (in OutbreakInput) payload() outbreak.Payload {
	return outbreak.Payload{
		FacilityID:       in.FacilityID,
		OutbreakType:     in.OutbreakType,
		CausativeAgent1:  optional(in.CausativeAgent1),
		CausativeAgent2:  optional(in.CausativeAgent2),
		DateBegan:        in.DateBegan,
		DateDeclaredOver: optional(in.DateDeclaredOver),
		IsActive:         in.IsActive,
	}
}

type FacilityInput struct {
	Name    string `json:"name" jsonschema:"facility name"`
	Address string `json:"address" jsonschema:"street address"`
	Setting string `json:"setting" jsonschema:"care setting, e.g. Long-term care"`
}

func (in FacilityInput) payload() facility.Payload {
	return facility.Payload{Name: in.Name, Address: in.Address, Setting: in.Setting}
}

type CaseStatInput struct {
	OutbreakID    int64 `json:"outbreakId" jsonschema:"id of the outbreak the counts belong to"`
	ResidentCases int   `json:"residentCases" jsonschema:"resident case count"`
	StaffCases    int   `json:"staffCases" jsonschema:"staff case count"`
	Deaths        int   `json:"deaths" jsonschema:"fatality count"`
}

func (in CaseStatInput) payload() casestat.Payload {
	return casestat.Payload{
		OutbreakID:    in.OutbreakID,
		ResidentCases: in.ResidentCases,
		StaffCases:    in.StaffCases,
		Deaths:        in.Deaths,
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
