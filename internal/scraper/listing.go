package scraper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkarpinski/stadiums/internal/logger"
	"github.com/mkarpinski/stadiums/internal/parse"
	"github.com/mkarpinski/stadiums/internal/stadium"
)

const polishTownsURL = "https://pl.wikipedia.org/wiki/Dane_statystyczne_o_miastach_w_Polsce"

// Countries scrapes the country registry, grouped by confederation on the
// listing site.
func (s *Scraper) Countries() ([]stadium.Country, error) {
	doc, err := s.fetcher.FetchDocument(countriesURL)
	if err != nil || doc == nil {
		return nil, newScrapingError("no page document", "countries", countriesURL)
	}

	var confederations []string
	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		confederations = append(confederations, strings.TrimSpace(h2.Text()))
	})

	var countries []stadium.Country
	doc.Find("ul.country-list").Each(func(idx int, ul *goquery.Selection) {
		ul.Find("li a").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			id := href[strings.LastIndex(href, "/")+1:]
			name, _, _ := strings.Cut(a.Text(), "(")
			confederation := ""
			if idx < len(confederations) {
				confederation = confederations[idx]
			}
			countries = append(countries, stadium.Country{
				Name:          normalize(strings.TrimSpace(name)),
				ID:            id,
				Confederation: confederation,
			})
		})
	})
	return countries, nil
}

// BasicStadiums scrapes one country's listing page into stadium stubs. For
// Poland the town registry is scraped first and town details attached.
func (s *Scraper) BasicStadiums(country stadium.Country) ([]stadium.BasicStadium, error) {
	isPolish := country == stadium.Poland
	url := fmt.Sprintf(listingURL, country.ID)
	if isPolish {
		url = fmt.Sprintf(listingURLPL, country.ID)
	}

	towns := map[string]stadium.Town{}
	if isPolish {
		townList, err := s.PolishTowns()
		if err != nil {
			return nil, err
		}
		for _, t := range townList {
			towns[t.Name] = t
		}
	}

	doc, err := s.fetcher.FetchDocument(url)
	if err != nil || doc == nil {
		return nil, newScrapingError("no page document", "listing", url)
	}

	var leagues []string
	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		leagues = append(leagues, normalize(strings.TrimSpace(h2.Text())))
	})
	hasNational := len(leagues) > 0 &&
		(leagues[0] == "National Stadium" || leagues[0] == "Stadion Narodowy")

	var basics []stadium.BasicStadium
	doc.Find("table").Each(func(tableIdx int, table *goquery.Selection) {
		table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
			if rowIdx == 0 {
				return // header row
			}
			cells := row.Find("td")
			if cells.Length() < 4 {
				return
			}

			nameCell := cells.Eq(0)
			href, ok := nameCell.Find("a").Attr("href")
			if !ok {
				return
			}
			name := normalize(strings.TrimSpace(nameCell.Text()))
			town := normalize(strings.TrimSpace(cells.Eq(1).Text()))
			var townInfo *stadium.Town
			if t, found := towns[town]; found {
				townInfo = &t
			}

			clubs := make([]string, 0)
			for _, club := range strings.Split(cells.Eq(2).Text(), ", ") {
				club = strings.TrimSpace(club)
				if club != "" && club != "-" {
					clubs = append(clubs, normalize(club))
				}
			}

			capacity, err := parse.Int(cells.Eq(3).Text())
			if err != nil {
				logger.Warn("unparseable capacity in listing", logger.Fields{
					"stadium": name,
					"url":     url,
				})
				return
			}

			basics = append(basics, stadium.BasicStadium{
				Name:     name,
				URL:      href,
				Country:  country.Name,
				Town:     town,
				TownInfo: townInfo,
				Clubs:    clubs,
				League:   leagueAt(leagues, tableIdx, hasNational),
				Capacity: capacity,
			})
		})
	})
	return basics, nil
}

// leagueAt maps a listing table index to its league. With a national
// stadium section the first table is tier 0; the catch-all sections carry
// no tier at all.
func leagueAt(leagues []string, idx int, hasNational bool) stadium.League {
	name := ""
	if idx < len(leagues) {
		name = leagues[idx]
	}
	if name == "Other" || name == "Inne" {
		return stadium.League{Name: name}
	}
	tier := idx
	if !hasNational {
		tier = idx + 1
	}
	return stadium.League{Name: name, Tier: &tier}
}

// PolishTowns scrapes the statistical town registry off Wikipedia. Two
// towns with top-flight stadiums are missing from the table and added by
// hand.
func (s *Scraper) PolishTowns() ([]stadium.Town, error) {
	doc, err := s.fetcher.FetchDocument(polishTownsURL)
	if err != nil || doc == nil {
		return nil, newScrapingError("no page document", "towns", polishTownsURL)
	}
	table := doc.Find("table.wikitable").First()
	if table.Length() == 0 {
		return nil, newScrapingError(
			"page contains no 'table' tag of class 'wikitable'", "towns", polishTownsURL)
	}

	var towns []stadium.Town
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}
		population, err := parse.Int(cells.Eq(4).Text())
		if err != nil {
			return
		}
		area, err := parse.Int(cells.Eq(3).Text())
		if err != nil {
			return
		}
		towns = append(towns, stadium.Town{
			Name:       strings.TrimSpace(cells.Eq(0).Text()),
			County:     strings.ReplaceAll(strings.TrimSpace(cells.Eq(1).Text()), "[a]", ""),
			Province:   strings.TrimSpace(cells.Eq(2).Text()),
			Population: population,
			AreaHa:     area,
		})
	})

	towns = append(towns,
		stadium.Town{
			Name: "Nieciecza", County: "tarnowski", Province: "małopolskie",
			Population: 682, AreaHa: 490,
		},
		stadium.Town{
			Name: "Stężyca", County: "kartuski", Province: "pomorskie",
			Population: 2165,
		},
	)
	return towns, nil
}

// ResolveCountries resolves country specifiers (id, name, or confederation)
// against the scraped registry and subtracts the excluded ones. With no
// specifiers the whole registry is returned. Results are sorted by id.
func ResolveCountries(all []stadium.Country, specs, excluded []string) ([]stadium.Country, error) {
	if len(specs) == 0 && len(excluded) == 0 {
		out := append([]stadium.Country(nil), all...)
		sortCountries(out)
		return out, nil
	}

	byID := map[string]stadium.Country{}
	byName := map[string]stadium.Country{}
	byConfederation := map[string][]stadium.Country{}
	for _, c := range all {
		byID[c.ID] = c
		byName[c.Name] = c
		byConfederation[c.Confederation] = append(byConfederation[c.Confederation], c)
	}

	pick := func(specifiers []string) (map[string]stadium.Country, error) {
		picked := map[string]stadium.Country{}
		for _, spec := range specifiers {
			switch {
			case hasKey(byID, spec):
				picked[byID[spec].ID] = byID[spec]
			case hasKey(byName, spec):
				picked[byName[spec].ID] = byName[spec]
			case len(byConfederation[spec]) > 0:
				for _, c := range byConfederation[spec] {
					picked[c.ID] = c
				}
			default:
				logger.Warn("no valid country found", logger.Fields{"specifier": spec})
			}
		}
		if len(picked) == 0 {
			return nil, fmt.Errorf("no valid country found for: %v", specifiers)
		}
		return picked, nil
	}

	countries := map[string]stadium.Country{}
	if len(specs) == 0 {
		for _, c := range all {
			countries[c.ID] = c
		}
	} else {
		picked, err := pick(specs)
		if err != nil {
			return nil, err
		}
		countries = picked
	}

	if len(excluded) > 0 {
		dropped, err := pick(excluded)
		if err != nil {
			return nil, err
		}
		for id := range dropped {
			delete(countries, id)
		}
	}

	out := make([]stadium.Country, 0, len(countries))
	for _, c := range countries {
		out = append(out, c)
	}
	sortCountries(out)
	return out, nil
}

func sortCountries(countries []stadium.Country) {
	sort.Slice(countries, func(i, j int) bool {
		return countries[i].ID < countries[j].ID
	})
}

func hasKey(m map[string]stadium.Country, key string) bool {
	_, ok := m[key]
	return ok
}
