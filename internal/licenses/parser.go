package licenses

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fields holds the attributes recognized in license text.
// A nil pointer means the pattern never matched, not "blank in the source".
type Fields struct {
	ProtocolNumber   *string
	DocumentNumber   *string
	TaxID            *string
	CorporateName    *string
	SpecificActivity *string
	Validity         *string
	Conditions       *string
}

var (
	// Protocol numbers look like "18.284.536-1".
	protocolPattern = regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}-\d\b`)

	// Document numbers are bare six-digit runs.
	documentNumberPattern = regexp.MustCompile(`\b\d{6}\b`)

	// CNPJ-style tax ids look like "76.098.219/0021-80".
	taxIDPattern = regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}\b`)

	datePattern = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)

	conditionsHeaderPattern = regexp.MustCompile(`^(\d{1,3})\.\s*CONDICIONANTES\b`)
)

const (
	identificationHeader = "IDENTIFICAÇÃO DO EMPREENDEDOR"
	validityHeader       = "VALIDADE DA LICENÇA"
	activityHeader       = "ATIVIDADE ESPECÍFICA"

	conditionsTerminator = "Assinatura"
	conditionsBlankMark  = "EM BRANCO"

	defaultConditionsSections = 10
)

// fieldMatcher is an unconditional per-line matcher. It fills its field the
// first time the pattern matches; later matches are ignored.
type fieldMatcher struct {
	name    string
	pattern *regexp.Regexp
	assign  func(f *Fields, match string)
}

// sectionRule fires on a section-header line. Its apply reads ahead from the
// header index and returns the index of the last line it consumed.
type sectionRule struct {
	name  string
	match func(p *Parser, line string) bool
	apply func(p *Parser, f *Fields, lines []string, i int) int
}

// Parser scans extracted license text line-by-line with a fixed rule table.
// Rule order is the precedence order; the zero-cost way to audit "first
// match wins" is to read the tables top to bottom.
type Parser struct {
	conditionsSections int
}

// NewParser returns a Parser accepting conditions headers numbered
// 1 through sections. Non-positive values fall back to the default bound.
func NewParser(sections int) *Parser {
	if sections <= 0 {
		sections = defaultConditionsSections
	}
	return &Parser{conditionsSections: sections}
}

var fieldMatchers = []fieldMatcher{
	{
		name:    "protocol_number",
		pattern: protocolPattern,
		assign:  func(f *Fields, m string) { setIfUnset(&f.ProtocolNumber, m) },
	},
	{
		name:    "document_number",
		pattern: documentNumberPattern,
		assign:  func(f *Fields, m string) { setIfUnset(&f.DocumentNumber, m) },
	},
	{
		name:    "tax_id",
		pattern: taxIDPattern,
		assign:  func(f *Fields, m string) { setIfUnset(&f.TaxID, m) },
	},
}

var sectionRules = []sectionRule{
	{
		name: "validity",
		match: func(_ *Parser, line string) bool {
			return strings.Contains(line, validityHeader)
		},
		apply: func(_ *Parser, f *Fields, lines []string, i int) int {
			if next, ok := nextLine(lines, i); ok {
				setIfUnset(&f.Validity, next)
			}
			return i
		},
	},
	{
		name: "identification",
		match: func(_ *Parser, line string) bool {
			return strings.Contains(line, identificationHeader)
		},
		apply: func(_ *Parser, f *Fields, lines []string, i int) int {
			next, ok := nextLine(lines, i)
			if !ok {
				return i
			}
			rest := next
			if taxID := taxIDPattern.FindString(next); taxID != "" {
				setIfUnset(&f.TaxID, taxID)
				rest = strings.Replace(next, taxID, "", 1)
			}
			if name := strings.Trim(rest, " \t-"); name != "" {
				setIfUnset(&f.CorporateName, name)
			}
			return i
		},
	},
	{
		name: "specific_activity",
		match: func(_ *Parser, line string) bool {
			return strings.Contains(line, activityHeader)
		},
		apply: func(_ *Parser, f *Fields, lines []string, i int) int {
			if next, ok := nextLine(lines, i); ok {
				setIfUnset(&f.SpecificActivity, next)
			}
			return i
		},
	},
	{
		name: "conditions",
		match: func(p *Parser, line string) bool {
			m := conditionsHeaderPattern.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			n, err := strconv.Atoi(m[1])
			return err == nil && n >= 1 && n <= p.conditionsSections
		},
		apply: func(_ *Parser, f *Fields, lines []string, i int) int {
			var captured []string
			j := i + 1
			for ; j < len(lines); j++ {
				line := lines[j]
				if strings.HasPrefix(line, conditionsTerminator) {
					break
				}
				if line == "" || strings.Contains(line, conditionsBlankMark) {
					continue
				}
				captured = append(captured, line)
			}
			if len(captured) > 0 {
				setIfUnset(&f.Conditions, strings.TrimSpace(strings.Join(captured, "\n")))
			}
			if j >= len(lines) {
				return len(lines) - 1
			}
			return j
		},
	},
}

// Parse scans text in a single pass and returns the recognized fields.
// Deterministic and pure: identical input always yields identical output.
// Empty text yields an all-absent result, not an error.
func (p *Parser) Parse(text string) Fields {
	var fields Fields
	if strings.TrimSpace(text) == "" {
		return fields
	}

	lines := splitLines(text)
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		for _, m := range fieldMatchers {
			if match := m.pattern.FindString(line); match != "" {
				m.assign(&fields, match)
			}
		}

		for _, rule := range sectionRules {
			if rule.match(p, line) {
				i = rule.apply(p, &fields, lines, i)
				break
			}
		}
	}
	return fields
}

// Parse runs the default parser over text.
func Parse(text string) Fields {
	return NewParser(0).Parse(text)
}

// ParseExpiration converts a verbatim validity capture (dd/mm/yyyy somewhere
// in the line) to a UTC date. Unparseable input yields nil rather than an
// error: the extracted record keeps the field absent.
func ParseExpiration(validity *string) *time.Time {
	if validity == nil {
		return nil
	}
	raw := datePattern.FindString(*validity)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("02/01/2006", raw)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func nextLine(lines []string, i int) (string, bool) {
	if i+1 >= len(lines) {
		return "", false
	}
	if lines[i+1] == "" {
		return "", false
	}
	return lines[i+1], true
}

func setIfUnset(dst **string, value string) {
	if *dst != nil || value == "" {
		return
	}
	v := value
	*dst = &v
}

// String renders a short debug form, useful in logs.
func (f Fields) String() string {
	show := func(p *string) string {
		if p == nil {
			return "<absent>"
		}
		return *p
	}
	return fmt.Sprintf("protocol=%s document=%s taxid=%s name=%s",
		show(f.ProtocolNumber), show(f.DocumentNumber), show(f.TaxID), show(f.CorporateName))
}
