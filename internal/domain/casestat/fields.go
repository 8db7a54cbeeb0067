package casestat

import "github.com/rpggio/outbreakwatch/internal/patch"

// PatchFields lists the fields a single-field PATCH may target.
var PatchFields = patch.NewSchema(
	patch.Field{Name: "outbreakId", Label: "Outbreak ID", Kind: patch.KindInteger, Min: patch.AtLeast(1)},
	patch.Field{Name: "residentCases", Label: "Resident cases", Kind: patch.KindInteger, Min: patch.AtLeast(0)},
	patch.Field{Name: "staffCases", Label: "Staff cases", Kind: patch.KindInteger, Min: patch.AtLeast(0)},
	patch.Field{Name: "deaths", Label: "Deaths", Kind: patch.KindInteger, Min: patch.AtLeast(0)},
)
