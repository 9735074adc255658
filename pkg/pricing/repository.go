package pricing

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Get(ctx context.Context) (PriceConfig, error)
	// Update replaces the whole configuration atomically and returns the
	// stored state.
	Update(ctx context.Context, cfg PriceConfig) (PriceConfig, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context) (PriceConfig, error) {
	var cfg PriceConfig

	query := `SELECT default_workshop_base, default_workshop_plus, weekend_surcharge,
                     character_price, pinata_price, extension_30_price, extension_60_price
              FROM pricing_config WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&cfg.DefaultWorkshopBase,
		&cfg.DefaultWorkshopPlus,
		&cfg.WeekendSurcharge,
		&cfg.CharacterPrice,
		&cfg.PinataPrice,
		&cfg.Extension30Price,
		&cfg.Extension60Price,
	)
	if err != nil {
		err := fmt.Errorf("could not read pricing config: %w", err)
		log.Error(err)
		return PriceConfig{}, err
	}

	if cfg.Menus, err = r.readMenus(ctx); err != nil {
		return PriceConfig{}, err
	}
	if cfg.AdultItems, err = r.readAdultItems(ctx); err != nil {
		return PriceConfig{}, err
	}
	if cfg.Workshops, err = r.readWorkshops(ctx); err != nil {
		return PriceConfig{}, err
	}

	return cfg, nil
}

func (r *RepositoryImpl) readMenus(ctx context.Context) ([]MenuPrice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM menu_price ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query menu prices: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var menus []MenuPrice
	for rows.Next() {
		var m MenuPrice
		if err := rows.Scan(&m.ID, &m.Name, &m.Price); err != nil {
			err := fmt.Errorf("could not scan menu price: %w", err)
			log.Error(err)
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (r *RepositoryImpl) readAdultItems(ctx context.Context) ([]AdultItemPrice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM adult_item_price ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query adult item prices: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []AdultItemPrice
	for rows.Next() {
		var i AdultItemPrice
		if err := rows.Scan(&i.ID, &i.Name, &i.Price); err != nil {
			err := fmt.Errorf("could not scan adult item price: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *RepositoryImpl) readWorkshops(ctx context.Context) ([]WorkshopPrice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_base, price_plus FROM workshop_price ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query workshop prices: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var workshops []WorkshopPrice
	for rows.Next() {
		var w WorkshopPrice
		if err := rows.Scan(&w.ID, &w.Name, &w.PriceBase, &w.PricePlus); err != nil {
			err := fmt.Errorf("could not scan workshop price: %w", err)
			log.Error(err)
			return nil, err
		}
		workshops = append(workshops, w)
	}
	return workshops, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, cfg PriceConfig) (PriceConfig, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin pricing update transaction: %w", err)
		log.Error(err)
		return PriceConfig{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE pricing_config SET
             default_workshop_base = $1,
             default_workshop_plus = $2,
             weekend_surcharge = $3,
             character_price = $4,
             pinata_price = $5,
             extension_30_price = $6,
             extension_60_price = $7
         WHERE id = 1`,
		cfg.DefaultWorkshopBase,
		cfg.DefaultWorkshopPlus,
		cfg.WeekendSurcharge,
		cfg.CharacterPrice,
		cfg.PinataPrice,
		cfg.Extension30Price,
		cfg.Extension60Price,
	)
	if err != nil {
		err := fmt.Errorf("could not update pricing config: %w", err)
		log.Error(err)
		return PriceConfig{}, err
	}

	// Replace-all semantics: the administrative UI always submits the full
	// price lists.
	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_price`); err != nil {
		return PriceConfig{}, fmt.Errorf("could not clear menu prices: %w", err)
	}
	for _, m := range cfg.Menus {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO menu_price (id, name, price) VALUES ($1, $2, $3)`,
			m.ID, m.Name, m.Price,
		); err != nil {
			return PriceConfig{}, fmt.Errorf("could not insert menu price %q: %w", m.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM adult_item_price`); err != nil {
		return PriceConfig{}, fmt.Errorf("could not clear adult item prices: %w", err)
	}
	for _, i := range cfg.AdultItems {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO adult_item_price (id, name, price) VALUES ($1, $2, $3)`,
			i.ID, i.Name, i.Price,
		); err != nil {
			return PriceConfig{}, fmt.Errorf("could not insert adult item price %q: %w", i.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM workshop_price`); err != nil {
		return PriceConfig{}, fmt.Errorf("could not clear workshop prices: %w", err)
	}
	for _, w := range cfg.Workshops {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workshop_price (id, name, price_base, price_plus) VALUES ($1, $2, $3, $4)`,
			w.ID, w.Name, w.PriceBase, w.PricePlus,
		); err != nil {
			return PriceConfig{}, fmt.Errorf("could not insert workshop price %q: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit pricing update: %w", err)
		log.Error(err)
		return PriceConfig{}, err
	}

	return cfg, nil
}
