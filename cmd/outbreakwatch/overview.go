package main

import (
	"github.com/rpggio/outbreakwatch/internal/dashboard"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/spf13/cobra"
)

func newOverviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Print the dashboard headline figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			svc := dashboard.NewService(
				outbreak.NewService(client),
				facility.NewService(client),
				casestat.NewService(client),
				a.logger,
			)
			overview, err := svc.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), overview)
		},
	}
}
