package files

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"travel_ideas/internal/adapters/observability"
	"travel_ideas/internal/domain"
)

// Dataset file names.
const (
	RegionsFile  = "regions_countries.json"
	SpotsFile    = "spots.json"
	CostsFile    = "cost_baselines.csv"
	AirfaresFile = "airfare_cache_mock.csv"
)

var AllFiles = []string{RegionsFile, SpotsFile, CostsFile, AirfaresFile}

// Loader reads the four reference files from a DatasetSource.
type Loader struct {
	src  domain.DatasetSource
	name string // metrics label
}

func NewLoader(src domain.DatasetSource, name string) *Loader {
	return &Loader{src: src, name: name}
}

// LoadDataset parses all files concurrently. Row order is kept as in the files.
func (l *Loader) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	start := time.Now()
	ds, err := l.load(ctx)
	observability.ObserveDatasetLoad(l.name, err, time.Since(start))
	if err != nil {
		return domain.Dataset{}, err
	}
	for _, w := range DuplicateKeys(ds) {
		log.Warn().Str("source", l.name).Msg(w)
	}
	log.Info().
		Str("source", l.name).
		Int("regions", len(ds.Regions)).
		Int("spots", len(ds.Spots)).
		Int("costs", len(ds.Costs)).
		Int("airfares", len(ds.Airfares)).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}

func (l *Loader) load(ctx context.Context) (domain.Dataset, error) {
	var ds domain.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ds.Regions, err = withFile(gctx, l.src, RegionsFile, DecodeRegions)
		return err
	})
	g.Go(func() (err error) {
		ds.Spots, err = withFile(gctx, l.src, SpotsFile, DecodeSpots)
		return err
	})
	g.Go(func() (err error) {
		ds.Costs, err = withFile(gctx, l.src, CostsFile, DecodeCosts)
		return err
	})
	g.Go(func() (err error) {
		ds.Airfares, err = withFile(gctx, l.src, AirfaresFile, DecodeAirfares)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Dataset{}, err
	}
	return ds, nil
}

func withFile[T any](ctx context.Context, src domain.DatasetSource, name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := src.Open(ctx, name)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	v, err := decode(rc)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

// DecodeRegions reads {"region": [country, ...], ...} keeping the object's key order.
func DecodeRegions(r io.Reader) ([]domain.Region, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var out []domain.Region
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var raw []map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		region := domain.Region{Name: name, Countries: make([]domain.CountryRef, 0, len(raw))}
		for _, m := range raw {
			c, err := mapCountry(name, m)
			if err != nil {
				return nil, err
			}
			region.Countries = append(region.Countries, c)
		}
		out = append(out, region)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return out, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v: %w", want, tok, domain.ErrDataIntegrity)
	}
	return nil
}

func DecodeSpots(r io.Reader) ([]domain.Spot, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]domain.Spot, 0, len(raw))
	for i, m := range raw {
		s, err := mapSpot(m)
		if err != nil {
			return nil, fmt.Errorf("spot #%d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func DecodeCosts(r io.Reader) ([]domain.CostBaseline, error) {
	rows, col, err := readCSV(r, "country_iso2", "daily_cost_low", "daily_cost_med", "daily_cost_high")
	if err != nil {
		return nil, err
	}
	out := make([]domain.CostBaseline, 0, len(rows))
	for _, rec := range rows {
		out = append(out, domain.CostBaseline{
			CountryISO2: strings.ToUpper(col(rec, "country_iso2")),
			DailyLow:    domain.Amount(col(rec, "daily_cost_low")),
			DailyMed:    domain.Amount(col(rec, "daily_cost_med")),
			DailyHigh:   domain.Amount(col(rec, "daily_cost_high")),
		})
	}
	return out, nil
}

func DecodeAirfares(r io.Reader) ([]domain.AirfareRecord, error) {
	rows, col, err := readCSV(r, "origin", "country_iso2", "median_price", "min_price")
	if err != nil {
		return nil, err
	}
	out := make([]domain.AirfareRecord, 0, len(rows))
	for _, rec := range rows {
		out = append(out, domain.AirfareRecord{
			Origin:      col(rec, "origin"),
			CountryISO2: strings.ToUpper(col(rec, "country_iso2")),
			Month:       col(rec, "month"),
			MedianPrice: domain.Amount(col(rec, "median_price")),
			MinPrice:    domain.Amount(col(rec, "min_price")),
		})
	}
	return out, nil
}

// readCSV returns the data rows and a column accessor keyed by header name.
// Missing optional columns read as "".
func readCSV(r io.Reader, required ...string) ([][]string, func([]string, string) string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("empty csv: %w", domain.ErrDataIntegrity)
	}
	if err != nil {
		return nil, nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		idx[strings.TrimSpace(h)] = i
	}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, nil, fmt.Errorf("missing column %q: %w", k, domain.ErrDataIntegrity)
		}
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	return rows, col, nil
}

// DuplicateKeys describes rows that share a lookup key with an earlier row.
// Lookups keep the first; the later rows are never read.
func DuplicateKeys(ds domain.Dataset) []string {
	var out []string
	seenCost := map[string]bool{}
	for i, c := range ds.Costs {
		if seenCost[c.CountryISO2] {
			out = append(out, fmt.Sprintf("%s row %d: duplicate country %s ignored", CostsFile, i+1, c.CountryISO2))
		}
		seenCost[c.CountryISO2] = true
	}
	seenFare := map[[3]string]bool{}
	for i, a := range ds.Airfares {
		k := [3]string{a.Origin, a.CountryISO2, a.Month}
		if seenFare[k] {
			out = append(out, fmt.Sprintf("%s row %d: duplicate %s/%s/%q ignored", AirfaresFile, i+1, a.Origin, a.CountryISO2, a.Month))
		}
		seenFare[k] = true
	}
	return out
}
