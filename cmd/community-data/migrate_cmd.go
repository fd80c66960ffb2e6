package main

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/commverse/community-sdk/modules/community"
	"github.com/commverse/community-sdk/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Apply or roll back the community schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(args[0])
		},
	}
	return cmd
}

func runMigrate(direction string) error {
	conf := configuration.Use()

	db, err := sql.Open("pgx", conf.Database.ConnectionString())
	if err != nil {
		return withCode(exitDB, err)
	}
	defer func() { _ = db.Close() }()

	schema, err := fs.Sub(community.MigrationFiles, "infrastructure/persistence/schema")
	if err != nil {
		return err
	}
	goose.SetBaseFS(schema)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch direction {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return withCode(exitValidation, fmt.Errorf("unknown migrate direction %q", direction))
	}
	if err != nil {
		return withCode(exitDB, err)
	}
	return nil
}
