package models

import (
	"database/sql"
	"time"
)

type Segment struct {
	ID                  string
	Level               string
	Name                string
	Slug                string
	ParentID            sql.NullString
	ParentSlug          sql.NullString
	ParentName          sql.NullString
	GrandparentSlug     sql.NullString
	GrandparentName     sql.NullString
	CustomActivityTypes []byte
	ActivityChannels    []byte
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
