package substance

import (
	"fmt"
)

// ParseFormula parses a chemical formula such as "H2O", "Fe2O3" or "Ca(OH)2"
// into a map from element symbol to atom count. Parenthesized groups may nest
// and carry a trailing multiplier. Unknown symbols and unbalanced parentheses
// are errors.
func ParseFormula(formula string) (map[string]int, error) {
	if formula == "" {
		return nil, fmt.Errorf("empty formula")
	}
	p := &formulaParser{input: formula}
	counts, err := p.parseGroup(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at position %d in %q", p.input[p.pos], p.pos, formula)
	}
	return counts, nil
}

// MolarMass returns the molar mass of a formula in g/mol.
func MolarMass(formula string) (float64, error) {
	counts, err := ParseFormula(formula)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for symbol, n := range counts {
		e, ok := ElementBySymbol(symbol)
		if !ok {
			return 0, fmt.Errorf("unknown element %q in %q", symbol, formula)
		}
		total += e.AtomicMass * float64(n)
	}
	return total, nil
}

type formulaParser struct {
	input string
	pos   int
}

// parseGroup consumes terms until end of input or a closing paren at the
// given nesting depth.
func (p *formulaParser) parseGroup(depth int) (map[string]int, error) {
	counts := make(map[string]int)
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '(':
			p.pos++
			inner, err := p.parseGroup(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.input) || p.input[p.pos] != ')' {
				return nil, fmt.Errorf("unbalanced '(' in %q", p.input)
			}
			p.pos++
			mult := p.parseCount()
			for sym, n := range inner {
				counts[sym] += n * mult
			}
		case c == ')':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced ')' in %q", p.input)
			}
			return counts, nil
		case c >= 'A' && c <= 'Z':
			sym := p.parseSymbol()
			if _, ok := ElementBySymbol(sym); !ok {
				return nil, fmt.Errorf("unknown element %q in %q", sym, p.input)
			}
			counts[sym] += p.parseCount()
		default:
			return nil, fmt.Errorf("unexpected %q at position %d in %q", c, p.pos, p.input)
		}
	}
	if depth > 0 {
		return nil, fmt.Errorf("unbalanced '(' in %q", p.input)
	}
	return counts, nil
}

// parseSymbol reads one uppercase letter followed by any lowercase letters.
func (p *formulaParser) parseSymbol() string {
	start := p.pos
	p.pos++
	for p.pos < len(p.input) && p.input[p.pos] >= 'a' && p.input[p.pos] <= 'z' {
		p.pos++
	}
	return p.input[start:p.pos]
}

// parseCount reads an optional decimal count, defaulting to 1.
func (p *formulaParser) parseCount() int {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 1
	}
	n := 0
	for _, c := range p.input[start:p.pos] {
		n = n*10 + int(c-'0')
	}
	return n
}
