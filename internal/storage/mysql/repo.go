package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"travel_ideas/internal/adapters/observability"
	"travel_ideas/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo stores the reference tables. It satisfies domain.DatasetLoader.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Tables lists the reference tables in load order.
var Tables = []string{"regions", "countries", "spots", "cost_baselines", "airfare_cache"}

// UpsertRegions stores region names in catalog order, including regions
// that have no countries.
func (r *Repo) UpsertRegions(ctx context.Context, regions []domain.Region) (int, error) {
	for i, rg := range regions {
		if _, err := r.db.ExecContext(ctx, upsertRegionSQL, i, rg.Name); err != nil {
			return i, fmt.Errorf("upsert region %q: %w", rg.Name, err)
		}
	}
	return len(regions), nil
}

func (r *Repo) UpsertCountries(ctx context.Context, regions []domain.Region) (int, error) {
	seq := 0
	for _, rg := range regions {
		for _, c := range rg.Countries {
			if _, err := r.db.ExecContext(ctx, upsertCountrySQL, seq, rg.Name, c.ISO2, c.NameJA, c.NameEN, c.Flag); err != nil {
				return seq, fmt.Errorf("upsert country %s: %w", c.ISO2, err)
			}
			seq++
		}
	}
	return seq, nil
}

func (r *Repo) UpsertSpots(ctx context.Context, spots []domain.Spot) (int, error) {
	for i, s := range spots {
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, _ := json.Marshal(tags)
		if _, err := r.db.ExecContext(ctx, upsertSpotSQL,
			i,
			s.Name,
			s.CountryISO2,
			valStr(s.CountryName),
			string(tagsJSON),
			valStr(s.BestMonths),
			s.Lat,
			s.Lng,
			valStr(s.Summary),
			valStr(s.Type),
		); err != nil {
			return i, fmt.Errorf("upsert spot %q: %w", s.Name, err)
		}
	}
	return len(spots), nil
}

func (r *Repo) UpsertCosts(ctx context.Context, rows []domain.CostBaseline) (int, error) {
	for i, c := range rows {
		if _, err := r.db.ExecContext(ctx, upsertCostSQL,
			i, c.CountryISO2, valStr(string(c.DailyLow)), valStr(string(c.DailyMed)), valStr(string(c.DailyHigh)),
		); err != nil {
			return i, fmt.Errorf("upsert cost baseline %s: %w", c.CountryISO2, err)
		}
	}
	return len(rows), nil
}

func (r *Repo) UpsertAirfares(ctx context.Context, rows []domain.AirfareRecord) (int, error) {
	for i, a := range rows {
		if _, err := r.db.ExecContext(ctx, upsertAirfareSQL,
			i, a.Origin, a.CountryISO2, valStr(a.Month), valStr(string(a.MedianPrice)), valStr(string(a.MinPrice)),
		); err != nil {
			return i, fmt.Errorf("upsert airfare %s-%s: %w", a.Origin, a.CountryISO2, err)
		}
	}
	return len(rows), nil
}

// Trim deletes rows at or past keep so a shorter file does not leave stale rows.
func (r *Repo) Trim(ctx context.Context, table string, keep int) error {
	switch table {
	case "regions", "countries", "spots", "cost_baselines", "airfare_cache":
	default:
		return fmt.Errorf("unknown table %q: %w", table, domain.ErrInvalidInput)
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE seq >= ?", keep)
	return err
}

// LoadDataset reads every table in seq order.
func (r *Repo) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	start := time.Now()
	ds, err := r.load(ctx)
	observability.ObserveDatasetLoad("mysql", err, time.Since(start))
	return ds, err
}

func (r *Repo) load(ctx context.Context) (domain.Dataset, error) {
	var ds domain.Dataset
	var err error
	if ds.Regions, err = r.loadRegions(ctx); err != nil {
		return domain.Dataset{}, err
	}
	if ds.Spots, err = r.loadSpots(ctx); err != nil {
		return domain.Dataset{}, err
	}
	if ds.Costs, err = r.loadCosts(ctx); err != nil {
		return domain.Dataset{}, err
	}
	if ds.Airfares, err = r.loadAirfares(ctx); err != nil {
		return domain.Dataset{}, err
	}
	return ds, nil
}

// loadRegions returns the regions table in order, each with its countries in
// seq order. Countries naming a region missing from the regions table are
// grouped after it in order of first appearance.
func (r *Repo) loadRegions(ctx context.Context) ([]domain.Region, error) {
	var out []domain.Region
	pos := map[string]int{}

	names, err := r.db.QueryContext(ctx, selectRegionsSQL)
	if err != nil {
		return nil, err
	}
	defer names.Close()
	for names.Next() {
		var name string
		if err := names.Scan(&name); err != nil {
			return nil, err
		}
		if _, dup := pos[name]; dup {
			continue
		}
		pos[name] = len(out)
		out = append(out, domain.Region{Name: name, Countries: []domain.CountryRef{}})
	}
	if err := names.Err(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, selectCountriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.CountryRef
		if err := rows.Scan(&c.Region, &c.ISO2, &c.NameJA, &c.NameEN, &c.Flag); err != nil {
			return nil, err
		}
		i, ok := pos[c.Region]
		if !ok {
			i = len(out)
			pos[c.Region] = i
			out = append(out, domain.Region{Name: c.Region})
		}
		out[i].Countries = append(out[i].Countries, c)
	}
	return out, rows.Err()
}

func (r *Repo) loadSpots(ctx context.Context) ([]domain.Spot, error) {
	rows, err := r.db.QueryContext(ctx, selectSpotsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Spot
	for rows.Next() {
		var s domain.Spot
		var countryName, bestMonths, summary, typ sql.NullString
		var tagsJSON []byte
		if err := rows.Scan(&s.Name, &s.CountryISO2, &countryName, &tagsJSON, &bestMonths, &s.Lat, &s.Lng, &summary, &typ); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tagsJSON, &s.Tags); err != nil {
			return nil, fmt.Errorf("spot %q tags: %w", s.Name, domain.ErrDataIntegrity)
		}
		s.CountryName = countryName.String
		s.BestMonths = bestMonths.String
		s.Summary = summary.String
		s.Type = typ.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) loadCosts(ctx context.Context) ([]domain.CostBaseline, error) {
	rows, err := r.db.QueryContext(ctx, selectCostsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CostBaseline
	for rows.Next() {
		var c domain.CostBaseline
		var low, med, high sql.NullString
		if err := rows.Scan(&c.CountryISO2, &low, &med, &high); err != nil {
			return nil, err
		}
		// NULL reads as "" and fails Amount.Int64 on lookup, not here.
		c.DailyLow, c.DailyMed, c.DailyHigh = domain.Amount(low.String), domain.Amount(med.String), domain.Amount(high.String)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) loadAirfares(ctx context.Context) ([]domain.AirfareRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectAirfaresSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AirfareRecord
	for rows.Next() {
		var a domain.AirfareRecord
		var month, median, lowest sql.NullString
		if err := rows.Scan(&a.Origin, &a.CountryISO2, &month, &median, &lowest); err != nil {
			return nil, err
		}
		a.Month = month.String
		a.MedianPrice, a.MinPrice = domain.Amount(median.String), domain.Amount(lowest.String)
		out = append(out, a)
	}
	return out, rows.Err()
}
