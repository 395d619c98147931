package substance

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/gocarina/gocsv"
)

//go:embed elements.csv
var elementsCSV []byte

// Element is one row of the periodic table.
type Element struct {
	Number     int     `csv:"number"`
	Symbol     string  `csv:"symbol"`
	Name       string  `csv:"name"`
	AtomicMass float64 `csv:"atomic_mass"` // g/mol
}

var (
	elementsBySymbol map[string]*Element
	elementsByNumber map[int]*Element
	elementList      []*Element
)

func init() {
	var rows []*Element
	if err := gocsv.UnmarshalBytes(elementsCSV, &rows); err != nil {
		panic(fmt.Sprintf("substance: bad embedded element table: %v", err))
	}

	elementsBySymbol = make(map[string]*Element, len(rows))
	elementsByNumber = make(map[int]*Element, len(rows))
	for _, e := range rows {
		elementsBySymbol[e.Symbol] = e
		elementsByNumber[e.Number] = e
	}
	elementList = rows
	sort.Slice(elementList, func(i, j int) bool {
		return elementList[i].Number < elementList[j].Number
	})
}

// ElementBySymbol returns the element with the given symbol, or false if the
// symbol is not in the table. Symbols are case sensitive ("Co" vs "CO").
func ElementBySymbol(symbol string) (*Element, bool) {
	e, ok := elementsBySymbol[symbol]
	return e, ok
}

// ElementByNumber returns the element with the given atomic number.
func ElementByNumber(number int) (*Element, bool) {
	e, ok := elementsByNumber[number]
	return e, ok
}

// Elements returns all elements ordered by atomic number. The returned slice
// is shared; callers must not modify it.
func Elements() []*Element {
	return elementList
}
