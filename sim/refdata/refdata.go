// Package refdata loads the zip code reference tables (coordinates,
// median household income, population) and merges them into a
// sim.ReferenceDataSet.
package refdata

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/petstore-sim/petstore-sim/sim"
)

// File names of the three tables inside a reference data directory.
const (
	CoordinatesFile = "zipcode_coordinates.csv" // zipcode,city,state,latitude,longitude
	IncomesFile     = "zipcode_incomes.csv"     // zipcode,median_household_income
	PopulationFile  = "zipcode_population.csv"  // zipcode,population
)

//go:embed data/*.csv
var defaultData embed.FS

// Reader merges the three tables. Each input must start with a header row.
type Reader struct {
	Coordinates io.Reader
	Incomes     io.Reader
	Population  io.Reader
}

// ReadData parses all three tables and joins them on zip code, in the
// order of the coordinates table. Zip codes missing from the income or
// population table are dropped with a warning.
func (r *Reader) ReadData() ([]sim.ZipcodeRecord, error) {
	if r.Coordinates == nil || r.Incomes == nil || r.Population == nil {
		return nil, errors.New("refdata: coordinates, incomes and population tables are all required")
	}
	incomes, err := readKeyedColumn(r.Incomes, "income", parseIncome)
	if err != nil {
		return nil, err
	}
	population, err := readKeyedColumn(r.Population, "population", parsePopulation)
	if err != nil {
		return nil, err
	}

	rows, err := readTable(r.Coordinates, "coordinates", 5)
	if err != nil {
		return nil, err
	}
	records := make([]sim.ZipcodeRecord, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	dropped := 0
	for i, row := range rows {
		zip := strings.TrimSpace(row[0])
		if seen[zip] {
			return nil, fmt.Errorf("reading coordinates table: row %d: duplicate zipcode %q", i+2, zip)
		}
		seen[zip] = true
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("reading coordinates table: row %d: latitude: %w", i+2, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("reading coordinates table: row %d: longitude: %w", i+2, err)
		}
		income, okIncome := incomes[zip]
		pop, okPop := population[zip]
		if !okIncome || !okPop {
			dropped++
			logrus.Debugf("refdata: zipcode %s has no income or population row; dropped", zip)
			continue
		}
		records = append(records, sim.ZipcodeRecord{
			Zipcode:      zip,
			City:         strings.TrimSpace(row[1]),
			State:        strings.TrimSpace(row[2]),
			Latitude:     lat,
			Longitude:    lon,
			Population:   pop,
			MedianIncome: income,
		})
	}
	if dropped > 0 {
		logrus.Warnf("refdata: dropped %d of %d zipcodes missing income or population data", dropped, len(rows))
	}
	return records, nil
}

// readTable reads a CSV table, skipping its header row.
func readTable(r io.Reader, name string, columns int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columns
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s table: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading %s table: missing header row", name)
	}
	return rows[1:], nil
}

// readKeyedColumn reads a two-column zipcode,value table. Rows whose value
// fails to parse are skipped, matching how census extracts mark unknown
// values ("-", "N/A").
func readKeyedColumn[T any](r io.Reader, name string, parse func(string) (T, error)) (map[string]T, error) {
	rows, err := readTable(r, name, 2)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(rows))
	skipped := 0
	for _, row := range rows {
		v, err := parse(strings.TrimSpace(row[1]))
		if err != nil {
			skipped++
			continue
		}
		out[strings.TrimSpace(row[0])] = v
	}
	if skipped > 0 {
		logrus.Warnf("refdata: skipped %d unparseable rows in %s table", skipped, name)
	}
	return out, nil
}

func parseIncome(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative income %v", v)
	}
	return v, nil
}

func parsePopulation(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative population %d", v)
	}
	return v, nil
}

// LoadFS reads the three tables from fsys.
func LoadFS(fsys fs.FS) (*sim.ReferenceDataSet, error) {
	open := func(name string) (fs.File, error) {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		return f, nil
	}
	coords, err := open(CoordinatesFile)
	if err != nil {
		return nil, err
	}
	defer coords.Close()
	incomes, err := open(IncomesFile)
	if err != nil {
		return nil, err
	}
	defer incomes.Close()
	pop, err := open(PopulationFile)
	if err != nil {
		return nil, err
	}
	defer pop.Close()

	reader := &Reader{Coordinates: coords, Incomes: incomes, Population: pop}
	records, err := reader.ReadData()
	if err != nil {
		return nil, err
	}
	logrus.Debugf("refdata: loaded %d zipcodes", len(records))
	return sim.NewReferenceDataSet(records)
}

// LoadDir reads the three tables from a directory.
func LoadDir(dir string) (*sim.ReferenceDataSet, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reference data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reference data path %q is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadDefault reads the reference tables bundled with the binary.
func LoadDefault() (*sim.ReferenceDataSet, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}
