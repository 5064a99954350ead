package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonegame/market/internal/repos/catalog"
)

var _ catalog.Catalog = (*catalogRepo)(nil)

type catalogRepo struct{ db *sql.DB }

func New(db *sql.DB) *catalogRepo {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) GetByName(tx *sql.Tx, name string) (catalog.Phone, error) {
	var p catalog.Phone

	err := tx.QueryRow(`
		SELECT id, name, brand, COALESCE(model_code, ''), rarity, value, COALESCE(image_filename, '')
		FROM phones
		WHERE name = $1
	`, name).Scan(&p.ID, &p.Name, &p.Brand, &p.ModelCode, &p.Rarity, &p.Value, &p.ImageFilename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Phone{}, catalog.ErrPhoneNotFound
		}

		return catalog.Phone{}, fmt.Errorf("get phone by name: %w", err)
	}

	return p, nil
}
