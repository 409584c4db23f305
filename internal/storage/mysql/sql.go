package mysql

// Every table is keyed by seq, the row's position in the source file.
// Upserts overwrite by position; trim statements drop rows past the new length.

const upsertRegionSQL = `
INSERT INTO regions (seq, name)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  name = VALUES(name)
`

const upsertCountrySQL = `
INSERT INTO countries (seq, region, iso2, name_ja, name_en, flag)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  region  = VALUES(region),
  iso2    = VALUES(iso2),
  name_ja = VALUES(name_ja),
  name_en = VALUES(name_en),
  flag    = VALUES(flag)
`

// Note: `type` is reserved; keep it quoted everywhere.
const upsertSpotSQL = "INSERT INTO spots\n" +
	"  (seq, name, country_iso2, country_name, tags, best_months, lat, lng, summary, `type`)\n" +
	"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)\n" +
	"ON DUPLICATE KEY UPDATE\n" +
	"  name         = VALUES(name),\n" +
	"  country_iso2 = VALUES(country_iso2),\n" +
	"  country_name = VALUES(country_name),\n" +
	"  tags         = VALUES(tags),\n" +
	"  best_months  = VALUES(best_months),\n" +
	"  lat          = VALUES(lat),\n" +
	"  lng          = VALUES(lng),\n" +
	"  summary      = VALUES(summary),\n" +
	"  `type`       = VALUES(`type`)\n"

const upsertCostSQL = `
INSERT INTO cost_baselines (seq, country_iso2, daily_cost_low, daily_cost_med, daily_cost_high)
VALUES (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  country_iso2    = VALUES(country_iso2),
  daily_cost_low  = VALUES(daily_cost_low),
  daily_cost_med  = VALUES(daily_cost_med),
  daily_cost_high = VALUES(daily_cost_high)
`

const upsertAirfareSQL = `
INSERT INTO airfare_cache (seq, origin, country_iso2, month, median_price, min_price)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  origin       = VALUES(origin),
  country_iso2 = VALUES(country_iso2),
  month        = VALUES(month),
  median_price = VALUES(median_price),
  min_price    = VALUES(min_price)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectRegionsSQL = `SELECT name FROM regions ORDER BY seq`

const selectCountriesSQL = `SELECT region, iso2, name_ja, name_en, flag FROM countries ORDER BY seq`

const selectSpotsSQL = "SELECT name, country_iso2, country_name, tags, best_months, lat, lng, summary, `type` FROM spots ORDER BY seq"

const selectCostsSQL = `SELECT country_iso2, daily_cost_low, daily_cost_med, daily_cost_high FROM cost_baselines ORDER BY seq`

const selectAirfaresSQL = `SELECT origin, country_iso2, month, median_price, min_price FROM airfare_cache ORDER BY seq`
