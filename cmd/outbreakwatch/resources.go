package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rpggio/outbreakwatch/internal/apiclient"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/spf13/cobra"
)

// resourceService is what the resource subcommands need from a domain
// service.
type resourceService[L, D, P any] interface {
	List(ctx context.Context) ([]L, error)
	Get(ctx context.Context, id int64) (*D, error)
	Create(ctx context.Context, payload P) (*D, error)
	Replace(ctx context.Context, id int64, payload P) error
	PatchField(ctx context.Context, id int64, field, raw string) (patch.Operation, error)
	Delete(ctx context.Context, id int64) error
	Fields() patch.Schema
}

// resourceCmd describes one resource command group.
type resourceCmd[L, D, P any] struct {
	use      string
	short    string
	singular string
	service  func(*apiclient.Client) resourceService[L, D, P]
	// listFlags registers list filters and returns the filter to apply.
	listFlags func(cmd *cobra.Command) func(items []L) ([]L, error)
}

func newResourceCmd[L, D, P any](a *app, rc resourceCmd[L, D, P]) *cobra.Command {
	group := &cobra.Command{
		Use:   rc.use,
		Short: rc.short,
	}

	withService := func(run func(cmd *cobra.Command, svc resourceService[L, D, P], args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			return run(cmd, rc.service(client), args)
		}
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + rc.use,
		Args:  cobra.NoArgs,
	}
	filter := func(items []L) ([]L, error) { return items, nil }
	if rc.listFlags != nil {
		filter = rc.listFlags(listCmd)
	}
	listCmd.RunE = withService(func(cmd *cobra.Command, svc resourceService[L, D, P], _ []string) error {
		items, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		items, err = filter(items)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), items)
	})

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get one " + rc.singular,
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc resourceService[L, D, P], args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		}),
	}

	var createData string
	createCmd := &cobra.Command{
		Use:   "create --data JSON|@file|-",
		Short: "Create a " + rc.singular,
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc resourceService[L, D, P], _ []string) error {
			var payload P
			if err := readPayload(cmd.InOrStdin(), createData, &payload); err != nil {
				return err
			}
			item, err := svc.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		}),
	}
	createCmd.Flags().StringVar(&createData, "data", "", "record as JSON, @file, or - for stdin")
	_ = createCmd.MarkFlagRequired("data")

	var replaceData string
	replaceCmd := &cobra.Command{
		Use:   "replace ID --data JSON|@file|-",
		Short: "Overwrite every field of a " + rc.singular,
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc resourceService[L, D, P], args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var payload P
			if err := readPayload(cmd.InOrStdin(), replaceData, &payload); err != nil {
				return err
			}
			if err := svc.Replace(cmd.Context(), id, payload); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), actionResult{ID: id, Result: "replaced"})
		}),
	}
	replaceCmd.Flags().StringVar(&replaceData, "data", "", "record as JSON, @file, or - for stdin")
	_ = replaceCmd.MarkFlagRequired("data")

	var field, value string
	patchCmd := &cobra.Command{
		Use:   "patch ID --field NAME --value TEXT",
		Short: "Replace one field of a " + rc.singular,
		Long: `Replace one field. The value is coerced to the field's kind: numbers,
true/false for booleans, YYYY-MM-DD or RFC 3339 for dates. An empty value
clears an optional field. Run "fields" to list patchable fields.`,
		Args: cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc resourceService[L, D, P], args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			op, err := svc.PatchField(cmd.Context(), id, field, value)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), op)
		}),
	}
	patchCmd.Flags().StringVar(&field, "field", "", "field to replace")
	patchCmd.Flags().StringVar(&value, "value", "", "new value as text")
	_ = patchCmd.MarkFlagRequired("field")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + rc.singular,
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc resourceService[L, D, P], args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), actionResult{ID: id, Result: "deleted"})
		}),
	}

	// fields needs no API access.
	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields patch accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), rc.service(nil).Fields().Fields())
		},
	}

	group.AddCommand(listCmd, getCmd, createCmd, replaceCmd, patchCmd, deleteCmd, fieldsCmd)
	return group
}

func newOutbreaksCmd(a *app) *cobra.Command {
	return newResourceCmd(a, resourceCmd[outbreak.ListItem, outbreak.Detail, outbreak.Payload]{
		use:      "outbreaks",
		short:    "Manage outbreaks",
		singular: "outbreak",
		service: func(c *apiclient.Client) resourceService[outbreak.ListItem, outbreak.Detail, outbreak.Payload] {
			return outbreak.NewService(c)
		},
		listFlags: func(cmd *cobra.Command) func([]outbreak.ListItem) ([]outbreak.ListItem, error) {
			var query, status string
			cmd.Flags().StringVar(&query, "query", "", "match facility name or outbreak type")
			cmd.Flags().StringVar(&status, "status", "all", "all, active or resolved")
			return func(items []outbreak.ListItem) ([]outbreak.ListItem, error) {
				s, err := outbreak.ParseStatus(status)
				if err != nil {
					return nil, err
				}
				return outbreak.Filter(items, outbreak.ListFilter{Query: query, Status: s}), nil
			}
		},
	})
}

func newFacilitiesCmd(a *app) *cobra.Command {
	return newResourceCmd(a, resourceCmd[facility.Facility, facility.Facility, facility.Payload]{
		use:      "facilities",
		short:    "Manage facilities",
		singular: "facility",
		service: func(c *apiclient.Client) resourceService[facility.Facility, facility.Facility, facility.Payload] {
			return facility.NewService(c)
		},
		listFlags: func(cmd *cobra.Command) func([]facility.Facility) ([]facility.Facility, error) {
			var query string
			cmd.Flags().StringVar(&query, "query", "", "match name, address or setting")
			return func(items []facility.Facility) ([]facility.Facility, error) {
				return facility.Filter(items, query), nil
			}
		},
	})
}

func newCaseStatsCmd(a *app) *cobra.Command {
	return newResourceCmd(a, resourceCmd[casestat.CaseStat, casestat.CaseStat, casestat.Payload]{
		use:      "casestats",
		short:    "Manage case statistics",
		singular: "case statistic",
		service: func(c *apiclient.Client) resourceService[casestat.CaseStat, casestat.CaseStat, casestat.Payload] {
			return casestat.NewService(c)
		},
		listFlags: func(cmd *cobra.Command) func([]casestat.CaseStat) ([]casestat.CaseStat, error) {
			var outbreakID int64
			cmd.Flags().Int64Var(&outbreakID, "outbreak-id", 0, "only statistics of this outbreak")
			return func(items []casestat.CaseStat) ([]casestat.CaseStat, error) {
				if outbreakID == 0 {
					return items, nil
				}
				return casestat.ForOutbreak(items, outbreakID), nil
			}
		},
	})
}

type actionResult struct {
	ID     int64  `json:"id"`
	Result string `json:"result"`
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

// readPayload decodes --data: inline JSON, @path for a file, or - for stdin.
func readPayload(stdin io.Reader, data string, out any) error {
	var raw []byte
	switch {
	case data == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = b
	case strings.HasPrefix(data, "@"):
		b, err := os.ReadFile(strings.TrimPrefix(data, "@"))
		if err != nil {
			return fmt.Errorf("read data file: %w", err)
		}
		raw = b
	default:
		raw = []byte(data)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return usageError("invalid --data JSON: %v", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
