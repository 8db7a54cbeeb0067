package facility

import "github.com/rpggio/outbreakwatch/internal/patch"

// PatchFields lists the fields a single-field PATCH may target.
var PatchFields = patch.NewSchema(
	patch.Field{Name: "name", Label: "Name", Kind: patch.KindText},
	patch.Field{Name: "address", Label: "Address", Kind: patch.KindText},
	patch.Field{Name: "setting", Label: "Setting", Kind: patch.KindText},
)
