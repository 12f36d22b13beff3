// Package testkit holds the built-in sample datasets offered next to file upload.
package testkit

import (
	"fmt"
	"sort"
	"strings"

	"handchart/adapters/tabular"
	"handchart/domain/chart"
	"handchart/domain/core"
	"handchart/ports"
)

// Sample is one catalog entry, parsed and ready to install into a session
type Sample struct {
	Name    string         `json:"name"`
	Title   string         `json:"title"`
	XColumn chart.Column   `json:"xColumn"`
	YColumn chart.Column   `json:"yColumn"`
	Dataset *chart.Dataset `json:"-"`
}

// SampleInfo describes a catalog entry without its data
type SampleInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	About string `json:"about"`
	Rows  int    `json:"rows"`
}

type sampleSource struct {
	name  string
	title string
	about string // markdown
	csv   string
}

var catalog = []sampleSource{
	{
		name:  "monthly-sales",
		title: "Monthly Sales",
		about: "Twelve months of made-up **sales** figures. A good first look at a *line* chart.",
		csv: `month,sales
Jan,120
Feb,150
Mar,200
Apr,180
May,220
Jun,260
Jul,240
Aug,280
Sep,230
Oct,210
Nov,250
Dec,300
`,
	},
	{
		name:  "global-temperature",
		title: "Global Temperature Anomaly (°C)",
		about: "Yearly global surface temperature **anomaly** in °C, relative to a 20th century baseline. Rounded, illustrative values.",
		csv: `year,anomaly
2000,0.39
2002,0.63
2004,0.54
2006,0.64
2008,0.54
2010,0.72
2012,0.65
2014,0.75
2016,1.01
2018,0.85
2020,1.02
2022,0.89
`,
	},
	{
		name:  "country-population",
		title: "Population by Country (millions)",
		about: "Population of the **eight** most populous countries, in millions. Try it as a *bar* chart.",
		csv: `country,population
India,1428
China,1425
United States,340
Indonesia,277
Pakistan,240
Nigeria,223
Brazil,216
Bangladesh,173
`,
	},
	{
		name:  "programming-languages",
		title: "Programming Language Popularity (%)",
		about: "Share of developers using each language, in percent. Rounded, illustrative values.",
		csv: `language,popularity
Python,28.1
JavaScript,16.4
Java,12.2
C#,7.1
C/C++,6.8
PHP,4.9
TypeScript,3.6
Go,2.3
Rust,1.9
`,
	},
	{
		name:  "coffee-consumption",
		title: "Coffee Consumption (kg per capita)",
		about: "Coffee consumed per person per year, in **kg**. Works well as a *pie* chart.",
		csv: `country,kg per capita
Finland,12.0
Norway,9.9
Iceland,9.0
Denmark,8.7
Netherlands,8.4
Sweden,8.2
Switzerland,7.9
Belgium,6.8
`,
	},
	{
		name:  "website-traffic",
		title: "Website Visits by Weekday",
		about: "Visits to a small website by **weekday**.",
		csv: `weekday,visits
Mon,1820
Tue,2140
Wed,2310
Thu,2050
Fri,1760
Sat,980
Sun,1120
`,
	},
}

// Catalog lists the available samples in catalog order
func Catalog() []SampleInfo {
	infos := make([]SampleInfo, len(catalog))
	for i, s := range catalog {
		infos[i] = SampleInfo{
			Name:  s.name,
			Title: s.title,
			About: s.about,
			Rows:  strings.Count(strings.TrimSpace(s.csv), "\n"),
		}
	}
	return infos
}

// Names returns the sample names sorted alphabetically
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.name
	}
	sort.Strings(names)
	return names
}

// LoadSample returns the named sample, or a uniformly random one when name is
// empty. Samples go through the same parser as uploaded files.
func LoadSample(name string, rng ports.RNGPort) (Sample, error) {
	src, err := pick(name, rng)
	if err != nil {
		return Sample{}, err
	}

	ds := tabular.ParseString(src.csv, src.name+".csv")
	if len(ds.Columns) < 2 {
		return Sample{}, fmt.Errorf("sample %q has %d columns", src.name, len(ds.Columns))
	}
	return Sample{
		Name:    src.name,
		Title:   src.title,
		XColumn: ds.Columns[0],
		YColumn: ds.Columns[1],
		Dataset: ds,
	}, nil
}

// SampleCSV returns the raw CSV text of a sample
func SampleCSV(name string) (string, error) {
	src, err := pick(name, nil)
	if err != nil {
		return "", err
	}
	return src.csv, nil
}

func pick(name string, rng ports.RNGPort) (sampleSource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if rng == nil {
			return sampleSource{}, fmt.Errorf("%w: no name given", core.ErrSampleNotFound)
		}
		return catalog[rng.Intn(len(catalog))], nil
	}
	for _, s := range catalog {
		if s.name == name {
			return s, nil
		}
	}
	return sampleSource{}, fmt.Errorf("%w: %q", core.ErrSampleNotFound, name)
}
