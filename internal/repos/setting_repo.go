package repos

import (
	"github.com/jmoiron/sqlx"

	"resortshare/internal/domain"
)

type SettingRepo struct{ db *sqlx.DB }

func NewSettingRepo(db *sqlx.DB) *SettingRepo { return &SettingRepo{db: db} }

const settingCols = `key, value, category, description, COALESCE(updated_at,'') AS updated_at`

func (r *SettingRepo) Get(key string) (domain.SiteSetting, error) {
	var out domain.SiteSetting
	err := r.db.Get(&out, `SELECT `+settingCols+` FROM site_settings WHERE key=?`, key)
	return out, err
}

func (r *SettingRepo) ByCategory(category string) ([]domain.SiteSetting, error) {
	var out []domain.SiteSetting
	err := r.db.Select(&out, `SELECT `+settingCols+` FROM site_settings WHERE category=? ORDER BY key`, category)
	return out, err
}

func (r *SettingRepo) All() ([]domain.SiteSetting, error) {
	var out []domain.SiteSetting
	err := r.db.Select(&out, `SELECT `+settingCols+` FROM site_settings ORDER BY category, key`)
	return out, err
}

// Set upserts a setting by key.
func (r *SettingRepo) Set(in domain.SiteSetting) (domain.SiteSetting, error) {
	if in.Category == "" {
		in.Category = "general"
	}
	_, err := r.db.Exec(`
	  INSERT INTO site_settings(key,value,category,description,updated_at)
	  VALUES(?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(key) DO UPDATE SET value=excluded.value, category=excluded.category,
	    description=excluded.description, updated_at=CURRENT_TIMESTAMP`,
		in.Key, in.Value, in.Category, in.Description)
	if err != nil {
		return domain.SiteSetting{}, err
	}
	return r.Get(in.Key)
}

func (r *SettingRepo) Delete(key string) error {
	res, err := r.db.Exec(`DELETE FROM site_settings WHERE key=?`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
