package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/outbreakwatch/internal/patch"
)

const serverInstructions = `outbreakwatch manages outbreak records at care facilities through the OutbreakWatch API.

Records:
- Facility: name, address, care setting.
- Outbreak: a facility, an outbreak type, up to two causative agents, a begin date, an optional declared-over date and an active flag.
- Case stat: resident cases, staff cases and deaths for one outbreak.

Workflow:
1) Orient with get_overview, then list_outbreaks (filter with query and status).
2) Use get_* for full records. Ids are numeric.
3) Prefer patch_* for single-field edits; replace_* overwrites every field.
4) Dates accept YYYY-MM-DD (midnight local) or RFC 3339 instants and are stored in UTC.
5) Deleting a facility or outbreak that is still referenced fails.

The patchable fields of each resource are listed at outbreakwatch://docs/fields.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     func() string
}

func registerDocResources(server *sdkmcp.Server, svcs Services) {
	docs := []docResource{
		{
			URI:         "outbreakwatch://docs/fields",
			Name:        "docs_fields",
			Title:       "Patchable fields",
			Description: "Fields each patch tool accepts, with their kinds and whether they can be cleared.",
			Content: func() string {
				var sections []string
				if svcs.Outbreaks != nil {
					sections = append(sections, fieldTable("Outbreaks (patch_outbreak)", svcs.Outbreaks.Fields()))
				}
				if svcs.Facilities != nil {
					sections = append(sections, fieldTable("Facilities (patch_facility)", svcs.Facilities.Fields()))
				}
				if svcs.CaseStats != nil {
					sections = append(sections, fieldTable("Case stats (patch_case_stat)", svcs.CaseStats.Fields()))
				}
				return "# Patchable fields\n\n" + strings.Join(sections, "\n")
			},
		},
	}

	for _, doc := range docs {
		content := doc.Content()

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     content,
				}},
			}, nil
		})
	}
}

func fieldTable(title string, schema patch.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n| Field | Label | Kind | Clearable |\n|---|---|---|---|\n", title)
	for _, f := range schema.Fields() {
		clearable := "no"
		if f.Nullable {
			clearable = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Name, f.Label, f.Kind, clearable)
	}
	return b.String()
}
