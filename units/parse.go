package units

import (
	"strings"
	"unicode"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

// Parse parses a unit expression. Both human-readable and UCUM notations are
// accepted:
//
//	"A / m", "kA/m", "J / m3", "kg / (A s2)"   (space/slash form)
//	"A.m-1", "J/(m.m2)", "Cel"                 (UCUM form)
//	"m^3", "m**3", "m-1"                       (explicit exponents)
//
// The empty string (and "1") parse to the dimensionless unit.
func Parse(s string) (Unit, error) {
	return ParseWithAliases(s, nil)
}

// ParseWithAliases parses a unit expression, replacing whole symbol tokens
// according to aliases first. An alias value may carry an exponent of its
// own (e.g. "har" -> "m2").
func ParseWithAliases(s string, aliases map[string]string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimensionless, nil
	}
	p := &parser{input: s, aliases: aliases}
	factors, err := p.parseFactors(false)
	if err != nil {
		return Unit{}, err
	}
	if !p.eof() {
		return Unit{}, errors.Newf("invalid unit %q: unexpected %q", s, p.rest())
	}
	return fromFactors(factors)
}

// MustParse parses a unit expression known to be valid at compile time.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

type parser struct {
	input   string
	pos     int
	aliases map[string]string
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && p.peek() == ' ' {
		p.pos++
	}
}

// parseFactors parses a sequence of primaries joined by multiplication
// (space, '.', '*') and division ('/'). A '/' flips the sign of exactly the
// next primary, so "m / s / kg" is m s-1 kg-1 and "kg / (A s2)" divides by
// the whole group.
func (p *parser) parseFactors(inGroup bool) ([]factor, error) {
	var out []factor
	sign := 1
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		c := p.peek()
		switch {
		case c == ')':
			if !inGroup {
				return nil, errors.Newf("invalid unit %q: unbalanced ')'", p.input)
			}
			return out, nil
		case c == '/':
			if sign == -1 {
				return nil, errors.Newf("invalid unit %q: consecutive '/'", p.input)
			}
			p.pos++
			sign = -1
		case c == '.' || c == '*':
			p.pos++
			if !p.eof() && p.peek() == '*' { // "**" exponent operator handled in parsePrimary
				return nil, errors.Newf("invalid unit %q: unexpected '**'", p.input)
			}
		case c == '(':
			p.pos++
			group, err := p.parseFactors(true)
			if err != nil {
				return nil, err
			}
			if p.eof() || p.peek() != ')' {
				return nil, errors.Newf("invalid unit %q: missing ')'", p.input)
			}
			p.pos++
			exp := p.parseExponent()
			for _, f := range group {
				f.exp *= sign * exp
				out = append(out, f)
			}
			sign = 1
		case c == '1':
			// bare "1" as numerator placeholder, e.g. "1 / m"
			p.pos++
			sign = 1
		default:
			f, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			f.exp *= sign
			out = append(out, f)
			sign = 1
		}
	}
	return out, nil
}

// parsePrimary parses one symbol token with its optional exponent.
func (p *parser) parsePrimary() (factor, error) {
	start := p.pos
	for !p.eof() && isSymbolRune(rune(p.peek())) {
		p.pos++
	}
	token := p.input[start:p.pos]
	if token == "" {
		return factor{}, errors.Newf("invalid unit %q: unexpected %q", p.input, p.rest())
	}
	exp := p.parseExponent()
	if alias, ok := p.aliases[token]; ok {
		token, exp = applyAlias(alias, exp)
	}
	prefix, symbol, err := splitSymbol(token)
	if err != nil {
		return factor{}, errors.Wrapf(err, "invalid unit %q", p.input)
	}
	return factor{prefix: prefix, symbol: symbol, exp: exp}, nil
}

// parseExponent parses an optional exponent: "3", "-1", "^3", "^-1", "**3".
// Returns 1 when no exponent follows.
func (p *parser) parseExponent() int {
	pos := p.pos
	if !p.eof() && p.peek() == '^' {
		p.pos++
	} else if p.pos+1 < len(p.input) && p.input[p.pos] == '*' && p.input[p.pos+1] == '*' {
		p.pos += 2
	}
	neg := false
	if !p.eof() && (p.peek() == '-' || p.peek() == '+') {
		neg = p.peek() == '-'
		p.pos++
	}
	digits := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == digits {
		// nothing numeric; rewind any consumed operator or sign
		p.pos = pos
		return 1
	}
	exp := 0
	for _, c := range p.input[digits:p.pos] {
		exp = exp*10 + int(c-'0')
	}
	if neg {
		exp = -exp
	}
	return exp
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || r == 'µ' || r == '%'
}

// applyAlias splits an alias replacement like "m2" into symbol and exponent
// and folds it with the exponent already parsed for the aliased token.
func applyAlias(alias string, exp int) (string, int) {
	i := len(alias)
	for i > 0 && alias[i-1] >= '0' && alias[i-1] <= '9' {
		i--
	}
	if i == len(alias) {
		return alias, exp
	}
	aliasExp := 0
	for _, c := range alias[i:] {
		aliasExp = aliasExp*10 + int(c-'0')
	}
	return alias[:i], exp * aliasExp
}

// splitSymbol resolves a token to (prefix, symbol). Whole-symbol matches win
// over prefix splits so that "T" is tesla, never tera.
func splitSymbol(token string) (string, string, error) {
	if _, ok := symbols[token]; ok {
		return "", token, nil
	}
	// two-character prefix first ("da")
	if len(token) > 2 {
		if _, ok := prefixes[token[:2]]; ok && token[:2] == "da" {
			if _, ok := symbols[token[2:]]; ok {
				return token[:2], token[2:], nil
			}
		}
	}
	if len(token) > 1 {
		prefix := string(token[0])
		rest := token[1:]
		if strings.HasPrefix(token, "µ") {
			prefix = "µ"
			rest = strings.TrimPrefix(token, "µ")
		}
		if _, ok := prefixes[prefix]; ok {
			if _, ok := symbols[rest]; ok {
				return prefix, rest, nil
			}
		}
	}
	return "", "", errors.Newf("unknown unit symbol %q", token)
}
