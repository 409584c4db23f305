package files

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"travel_ideas/internal/domain"
)

/********** alias registries **********/

var spotAliases = map[string][]string{
	"name":        {"name", "title"},
	"country":     {"country_iso2", "iso2", "country_code"},
	"country_ja":  {"country_ja", "country_name", "country"},
	"best_months": {"best_months", "best_season", "season"},
	"summary":     {"summary", "description"},
	"type":        {"type", "experience_type", "category"},
}

var countryAliases = map[string][]string{
	"iso2":    {"iso2", "code", "country_iso2"},
	"name_ja": {"name_ja", "name_local", "name"},
	"name_en": {"name_en", "name_intl"},
	"flag":    {"flag", "emoji", "icon"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path, or "".
func lookupStr(m map[string]any, path string) string {
	if s, ok := lookupAny(m, path).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "35,68").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				return f, true
			}
		}
	}
	return 0, false
}

// stringsFlexible: []any of strings, or a single comma/"・"-separated string.
func stringsFlexible(m map[string]any, path string) []string {
	switch v := lookupAny(m, path).(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		var out []string
		for _, p := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '、' || r == '・' }) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

/********** record mappers **********/

func mapSpot(m map[string]any) (domain.Spot, error) {
	s := domain.Spot{
		Name:        firstNonEmptyAlias(m, spotAliases, "name"),
		CountryISO2: strings.ToUpper(firstNonEmptyAlias(m, spotAliases, "country")),
		CountryName: firstNonEmptyAlias(m, spotAliases, "country_ja"),
		Tags:        stringsFlexible(m, "tags"),
		Summary:     firstNonEmptyAlias(m, spotAliases, "summary"),
		Type:        firstNonEmptyAlias(m, spotAliases, "type"),
	}
	if s.Name == "" || s.CountryISO2 == "" {
		return domain.Spot{}, fmt.Errorf("spot without name or country_iso2: %w", domain.ErrDataIntegrity)
	}

	// best_months is free text in most rows and a list in some.
	for _, p := range spotAliases["best_months"] {
		if txt := lookupStr(m, p); txt != "" {
			s.BestMonths = txt
			break
		}
		if list := stringsFlexible(m, p); len(list) > 0 {
			s.BestMonths = strings.Join(list, ", ")
			break
		}
	}

	lat, okLat := getFloatFlexible(m, "lat", "latitude", "location.lat")
	lng, okLng := getFloatFlexible(m, "lng", "lon", "longitude", "location.lng")
	if !okLat || !okLng {
		return domain.Spot{}, fmt.Errorf("spot %q: missing or malformed coordinates: %w", s.Name, domain.ErrDataIntegrity)
	}
	s.Lat, s.Lng = lat, lng
	return s, nil
}

func mapCountry(region string, m map[string]any) (domain.CountryRef, error) {
	c := domain.CountryRef{
		ISO2:   strings.ToUpper(firstNonEmptyAlias(m, countryAliases, "iso2")),
		NameJA: firstNonEmptyAlias(m, countryAliases, "name_ja"),
		NameEN: firstNonEmptyAlias(m, countryAliases, "name_en"),
		Flag:   firstNonEmptyAlias(m, countryAliases, "flag"),
		Region: region,
	}
	if c.ISO2 == "" {
		return domain.CountryRef{}, fmt.Errorf("country in region %q without iso2: %w", region, domain.ErrDataIntegrity)
	}
	return c, nil
}
