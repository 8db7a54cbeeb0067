package outbreak

import "github.com/rpggio/outbreakwatch/internal/patch"

// PatchFields lists the fields a single-field PATCH may target.
var PatchFields = patch.NewSchema(
	patch.Field{Name: "outbreakType", Label: "Outbreak type", Kind: patch.KindText},
	patch.Field{Name: "facilityId", Label: "Facility ID", Kind: patch.KindInteger, Min: patch.AtLeast(1)},
	patch.Field{Name: "causativeAgent1", Label: "Causative agent 1", Kind: patch.KindText, Nullable: true},
	patch.Field{Name: "causativeAgent2", Label: "Causative agent 2", Kind: patch.KindText, Nullable: true},
	patch.Field{Name: "dateBegan", Label: "Date began", Kind: patch.KindDate},
	patch.Field{Name: "dateDeclaredOver", Label: "Date declared over", Kind: patch.KindDate, Nullable: true},
	patch.Field{Name: "isActive", Label: "Is active", Kind: patch.KindBoolean},
)
