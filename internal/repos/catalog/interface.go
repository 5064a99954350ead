package catalog

import (
	"database/sql"
	"errors"
)

var ErrPhoneNotFound = errors.New("phone not found")

type Phone struct {
	ID            int64
	Name          string
	Brand         string
	ModelCode     string
	Rarity        string
	Value         int64
	ImageFilename string
}

type Catalog interface {
	GetByName(tx *sql.Tx, name string) (Phone, error)
}
