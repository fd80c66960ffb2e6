package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/modules/community/infrastructure/persistence"
	"github.com/commverse/community-sdk/modules/community/services"
	"github.com/commverse/community-sdk/pkg/composables"
	"github.com/commverse/community-sdk/pkg/configuration"
	"github.com/commverse/community-sdk/pkg/eventbus"
)

func newSeedCmd() *cobra.Command {
	var name, slug string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a project group with its default activity configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), name, slug)
		},
	}
	cmd.Flags().StringVar(&name, "name", "Demo Community", "project group name")
	cmd.Flags().StringVar(&slug, "slug", "demo-community", "project group slug")
	return cmd
}

func runSeed(ctx context.Context, name, slug string) error {
	conf := configuration.Use()

	poolCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(poolCtx, conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	ctx = composables.WithPool(ctx, pool)
	repo := persistence.NewSegmentRepository()
	publisher := eventbus.NewEventPublisher(conf.Logger())
	segmentSvc := services.NewSegmentService(repo, composables.NewPgxTransactor(), publisher)
	settingsSvc := services.NewActivitySettingsService(repo, publisher)

	group, err := segmentSvc.CreateProjectGroup(ctx, segment.New(name, slug, segment.LevelProjectGroup))
	if err != nil {
		return withCode(exitDB, err)
	}

	seedTypes := []struct{ typeName, platform string }{
		{"Joined", "discord"},
		{"Message", "discord"},
		{"Star", "github"},
	}
	for _, seed := range seedTypes {
		if _, err := settingsSvc.CreateActivityType(ctx, group.ID(), seed.typeName, seed.platform); err != nil {
			return withCode(exitDB, err)
		}
	}

	fmt.Printf("seeded project group %q (%s)\n", group.Name(), group.ID())
	return nil
}
