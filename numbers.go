// Number Reader (§4.3). Structured the way
// go-json-experiment-json/decode.go scans a number token — sign, integer
// digits, optional fraction, optional exponent — then relaxed per the
// spec's tolerant extensions (leading/trailing dot, incomplete exponent)
// and its leading-zero and suspicious-trailing-garbage policies.
package jsonrepair

import "strings"

// tryNumber attempts to read a number token at the cursor. ok is false
// (with the cursor unmoved) when the input does not start a number at all,
// letting the caller fall through to the keyword reader (for bare
// "-Infinity"). needMore is true only when more chunks are required to
// know whether the token continues (non-final streaming only).
func (p *parser) tryNumber() (ok bool, needMore bool, err error) {
	start := p.cur.position()
	i := 0
	peek := func(off int) (byte, bool) { return p.cur.peekAt(i + off) }

	b, has := peek(0)
	if !has {
		return false, false, nil
	}
	if b == '-' || b == '+' {
		i++
	}
	b, has = peek(0)
	hasIntDigits := has && b >= '0' && b <= '9'
	leadingDot := has && b == '.' && p.opts.NumberToleranceLeadingDot
	if !hasIntDigits && !leadingDot {
		return false, false, nil
	}

	intStart := i
	for {
		b, has = peek(0)
		if !has || b < '0' || b > '9' {
			break
		}
		i++
	}
	intEnd := i

	if b, has = peek(0); has && b == '.' {
		i++
		fracStart := i
		for {
			b, has = peek(0)
			if !has || b < '0' || b > '9' {
				break
			}
			i++
		}
		if i == fracStart && !p.opts.NumberToleranceTrailingDot {
			// A lone "." with no digits on either side isn't a number.
			if intEnd == intStart {
				return false, false, nil
			}
			i = fracStart - 1 // leave the dot out of the number token
		}
	}

	if b, has = peek(0); has && (b == 'e' || b == 'E') {
		j := i + 1
		if bb, ok := peek(j - i); ok && (bb == '+' || bb == '-') {
			j++
		}
		digitsStart := j
		for {
			bb, ok := peek(j - i)
			if !ok || bb < '0' || bb > '9' {
				break
			}
			j++
		}
		if j > digitsStart || p.opts.NumberToleranceIncompleteExponent {
			i = j
		}
	}

	raw := p.cur.slice(start, start+i)
	if raw == "" || raw == "-" || raw == "+" || raw == "." || raw == "-." {
		return false, false, nil
	}

	// Suspicious trailing garbage: a number token directly followed by a
	// byte that is neither EOF nor a recognized delimiter.
	if nb, has := peek(0); has && p.opts.NumberQuoteSuspicious && !isDelimiter(nb) && nb != '/' {
		garbageStart := start + i
		j := i
		for {
			bb, ok := peek(j - i)
			if !ok || isDelimiter(bb) {
				break
			}
			j++
		}
		if !p.cur.atEOFAt(start + j) && !p.final {
			return false, true, nil
		}
		full := p.cur.slice(start, start+j)
		p.cur.pos = start + j
		p.logEntry(garbageStart, CategoryNumberQuoted, "number followed by non-delimiter garbage, quoted as string")
		p.emit.writeString(full)
		return true, false, nil
	}

	if !p.final && p.cur.atEOFAt(start+i) {
		// The token may still be extending (more digits/exponent) in the
		// next chunk.
		return false, true, nil
	}

	p.cur.pos = start + i
	normalized := normalizeNumber(raw, p.opts)
	if normalized.quoted {
		p.logEntry(start, CategoryNumberQuoted, "leading zero quoted as string per LeadingZeroPolicy")
		p.emit.writeString(normalized.text)
	} else {
		p.emit.writeRaw(normalized.text)
	}
	return true, false, nil
}

type normalizedNumber struct {
	text   string
	quoted bool
}

// normalizeNumber rewrites a tolerant raw token into canonical JSON number
// text (or flags it to be quoted as a string under QuoteAsString).
func normalizeNumber(raw string, opts Options) normalizedNumber {
	sign := ""
	rest := raw
	if len(rest) > 0 && (rest[0] == '-' || rest[0] == '+') {
		if rest[0] == '-' {
			sign = "-"
		}
		rest = rest[1:]
	}

	intPart, fracExp := splitIntPart(rest)

	if intPart == "" {
		intPart = "0" // leading-dot case, e.g. ".5" -> "0.5"
	} else if len(intPart) > 1 && intPart[0] == '0' {
		stripped := strings.TrimLeft(intPart, "0")
		if stripped == "" {
			stripped = "0"
		}
		if opts.LeadingZeroPolicy == QuoteAsString {
			return normalizedNumber{text: raw, quoted: true}
		}
		intPart = stripped
	}

	if fracExp == "." {
		fracExp = "" // trailing dot, e.g. "5." -> "5"
	} else if strings.HasPrefix(fracExp, ".") && len(fracExp) == 1 {
		fracExp = ""
	}

	// Incomplete exponent, e.g. "1e" or "1e+" -> "1".
	fracExp = trimIncompleteExponent(fracExp)

	// A dot with no fraction digits after it, e.g. "5.e3" -> "5e3".
	if strings.HasPrefix(fracExp, ".") && (len(fracExp) == 1 || fracExp[1] < '0' || fracExp[1] > '9') {
		fracExp = fracExp[1:]
	}

	return normalizedNumber{text: sign + intPart + fracExp}
}

// splitIntPart splits raw (sign already removed) into its leading integer
// digit run and everything after (fraction + exponent, verbatim).
func splitIntPart(rest string) (intPart, fracExp string) {
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	return rest[:i], rest[i:]
}

func trimIncompleteExponent(fracExp string) string {
	i := strings.IndexAny(fracExp, "eE")
	if i < 0 {
		return fracExp
	}
	frac, exp := fracExp[:i], fracExp[i+1:]
	j := 0
	if j < len(exp) && (exp[j] == '+' || exp[j] == '-') {
		j++
	}
	digitsStart := j
	for j < len(exp) && exp[j] >= '0' && exp[j] <= '9' {
		j++
	}
	if j == digitsStart {
		return frac // no exponent digits at all: drop "e"/"e+" entirely
	}
	return frac + "e" + exp[:j]
}
