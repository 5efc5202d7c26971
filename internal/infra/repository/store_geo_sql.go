package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	domain "github.com/goofitre/carcare-api/internal/domain/store"
)

// Spherical law of cosines, mirrored by domain.Distance. The cosine is
// clamped so rounding never pushes acos out of its domain.
const distanceSQL = `6371 * acos(least(1, greatest(-1,
	cos(radians(?)) * cos(radians(lat)) * cos(radians(lng) - radians(?))
	+ sin(radians(?)) * sin(radians(lat)))))`

var storeColumns = []any{
	"id", "name", "address", "phone", "image_url", "hours",
	"lat", "lng", "is_open", "rating", "reviews_count", "created_at",
}

// StoreGeoSearch ranks stores by great-circle distance from the requester
// and keeps those inside the radius.
type StoreGeoSearch struct {
	db *sqlx.DB
	pg goqu.DialectWrapper
}

func NewStoreGeoSearch(db *sqlx.DB) *StoreGeoSearch {
	return &StoreGeoSearch{db: db, pg: goqu.Dialect("postgres")}
}

type geoRow struct {
	domain.Item
	TotalCount int64 `db:"total_count"`
}

func (s *StoreGeoSearch) Find(ctx context.Context, c domain.Criteria) (*domain.Result, error) {
	query, args, err := s.build(c)
	if err != nil {
		return nil, fmt.Errorf("build geo query: %w", err)
	}

	var rows []geoRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}

	res := &domain.Result{Items: make([]domain.Item, 0, len(rows))}
	for _, r := range rows {
		res.Items = append(res.Items, r.Item)
		res.Total = r.TotalCount
	}

	// The window total only rides on emitted rows; a page past the end
	// needs its own count.
	if len(rows) == 0 && c.Skip > 0 {
		total, err := s.count(ctx, c)
		if err != nil {
			return nil, err
		}
		res.Total = total
	}
	return res, nil
}

func (s *StoreGeoSearch) count(ctx context.Context, c domain.Criteria) (int64, error) {
	query, args, err := s.pg.From(s.inner(c).As("s")).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("distance").Lte(*c.Distance)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build geo count: %w", err)
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("geo count: %w", err)
	}
	return total, nil
}

// build produces a bound-parameter query. No caller value is ever
// interpolated into the SQL text.
func (s *StoreGeoSearch) build(c domain.Criteria) (string, []any, error) {
	outer := s.pg.From(s.inner(c).As("s")).
		Select(goqu.Star(), goqu.L("COUNT(*) OVER ()").As("total_count")).
		Where(goqu.C("distance").Lte(*c.Distance)).
		Order(geoOrder(c.Sort)...).
		Limit(uint(c.Take))
	if c.Skip > 0 {
		outer = outer.Offset(uint(c.Skip))
	}

	return outer.Prepared(true).ToSQL()
}

// inner selects candidate stores with their distance. The radius applies
// outside, once distance exists as a column.
func (s *StoreGeoSearch) inner(c domain.Criteria) *goqu.SelectDataset {
	lat, lng := *c.UserLat, *c.UserLng

	cols := append([]any{}, storeColumns...)
	cols = append(cols, goqu.L(distanceSQL, lat, lng, lat).As("distance"))

	inner := s.pg.From("stores").
		Select(cols...).
		Where(
			goqu.C("lat").IsNotNull(),
			goqu.C("lng").IsNotNull(),
			goqu.C("rating").Gte(c.MinRating),
		)
	if c.OnlyOpen {
		inner = inner.Where(goqu.C("is_open").IsTrue())
	}
	if c.Q != "" {
		like := "%" + c.Q + "%"
		inner = inner.Where(goqu.Or(
			goqu.C("name").Like(like),
			goqu.C("address").Like(like),
		))
	}
	return inner
}

func geoOrder(sort domain.SortKey) []exp.OrderedExpression {
	var primary exp.OrderedExpression
	switch sort {
	case domain.SortRatingDesc:
		primary = goqu.C("rating").Desc()
	case domain.SortRatingAsc:
		primary = goqu.C("rating").Asc()
	default:
		primary = goqu.C("distance").Asc()
	}
	return []exp.OrderedExpression{primary, goqu.C("id").Asc()}
}

var _ domain.Strategy = (*StoreGeoSearch)(nil)
