package entity

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Photos is an ordered list of photo URLs stored as a native text[] on
// Postgres and as the same array literal in a text column elsewhere. Order,
// duplicates and whitespace are preserved exactly.
type Photos []string

func (p Photos) Value() (driver.Value, error) {
	if p == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(p).Value()
}

func (p *Photos) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*p = Photos(arr)
	return nil
}

func (Photos) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
