package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
)

func registerTools(server *sdkmcp.Server, svcs Services) {
	if svcs.Outbreaks != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "list_outbreaks",
			Description: "List outbreaks, optionally filtered by text and by active or resolved status",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListOutbreaksParams) (*sdkmcp.CallToolResult, any, error) {
			status, err := outbreak.ParseStatus(in.Status)
			if err != nil {
				return nil, nil, toolError(err)
			}
			items, err := svcs.Outbreaks.List(ctx)
			if err != nil {
				return nil, nil, toolError(err)
			}
			return jsonResult(outbreak.Filter(items, outbreak.ListFilter{Query: in.Query, Status: status}))
		})
		registerResourceTools(server, resourceTools[outbreak.ListItem, outbreak.Detail, outbreak.Payload, OutbreakInput]{
			singular:  "outbreak",
			svc:       svcs.Outbreaks,
			toPayload: OutbreakInput.payload,
		})
	}

	if svcs.Facilities != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "list_facilities",
			Description: "List facilities, optionally filtered by text in name, address or setting",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListFacilitiesParams) (*sdkmcp.CallToolResult, any, error) {
			items, err := svcs.Facilities.List(ctx)
			if err != nil {
				return nil, nil, toolError(err)
			}
			return jsonResult(facility.Filter(items, in.Query))
		})
		registerResourceTools(server, resourceTools[facility.Facility, facility.Facility, facility.Payload, FacilityInput]{
			singular:  "facility",
			svc:       svcs.Facilities,
			toPayload: FacilityInput.payload,
		})
	}

	if svcs.CaseStats != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "list_case_stats",
			Description: "List case statistics, optionally only those of one outbreak",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListCaseStatsParams) (*sdkmcp.CallToolResult, any, error) {
			items, err := svcs.CaseStats.List(ctx)
			if err != nil {
				return nil, nil, toolError(err)
			}
			if in.OutbreakID != 0 {
				items = casestat.ForOutbreak(items, in.OutbreakID)
			}
			return jsonResult(items)
		})
		registerResourceTools(server, resourceTools[casestat.CaseStat, casestat.CaseStat, casestat.Payload, CaseStatInput]{
			singular:  "case_stat",
			svc:       svcs.CaseStats,
			toPayload: CaseStatInput.payload,
		})
	}

	if svcs.Dashboard != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "get_overview",
			Description: "Headline figures: outbreak counts, impacted facilities and case totals",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ OverviewParams) (*sdkmcp.CallToolResult, any, error) {
			overview, err := svcs.Dashboard.Overview(ctx)
			if err != nil {
				return nil, nil, toolError(err)
			}
			return jsonResult(overview)
		})
	}
}

// resourceTools describes the get, create, replace, patch and delete tools
// of one resource. In is the tool-facing input converted to payload P.
type resourceTools[L, D, P, In any] struct {
	singular  string
	svc       ResourceService[L, D, P]
	toPayload func(In) P
}

func registerResourceTools[L, D, P, In any](server *sdkmcp.Server, rt resourceTools[L, D, P, In]) {
	label := strings.ReplaceAll(rt.singular, "_", " ")

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_" + rt.singular,
		Description: fmt.Sprintf("Get one %s by id", label),
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
		item, err := rt.svc.Get(ctx, in.ID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return jsonResult(item)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_" + rt.singular,
		Description: fmt.Sprintf("Create a %s and return it with its new id", label),
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		item, err := rt.svc.Create(ctx, rt.toPayload(in))
		if err != nil {
			return nil, nil, toolError(err)
		}
		return jsonResult(item)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "replace_" + rt.singular,
		Description: fmt.Sprintf("Overwrite every field of a %s", label),
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ReplaceParams[In]) (*sdkmcp.CallToolResult, any, error) {
		if err := rt.svc.Replace(ctx, in.ID, rt.toPayload(in.Record)); err != nil {
			return nil, nil, toolError(err)
		}
		return textResult(fmt.Sprintf("%s %d replaced", label, in.ID)), nil, nil
	})

	fields := rt.svc.Fields().Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, fmt.Sprintf("%s (%s)", f.Name, f.Kind))
	}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: "patch_" + rt.singular,
		Description: fmt.Sprintf("Replace one field of a %s. Fields: %s",
			label, strings.Join(names, ", ")),
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in PatchParams) (*sdkmcp.CallToolResult, any, error) {
		op, err := rt.svc.PatchField(ctx, in.ID, in.Field, in.Value)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return jsonResult(op)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_" + rt.singular,
		Description: fmt.Sprintf("Delete a %s", label),
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
		if err := rt.svc.Delete(ctx, in.ID); err != nil {
			return nil, nil, toolError(err)
		}
		return textResult(fmt.Sprintf("%s %d deleted", label, in.ID)), nil, nil
	})
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return textResult(string(data)), nil, nil
}
