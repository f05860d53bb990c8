// Package analyzer derives Findings from README content with a fixed set of
// table-driven heuristics. Analysis is pure: the same content always yields
// the same Findings.
package analyzer

import (
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/UnitVectorY-Labs/repoexplain/internal/readme"
	"golang.org/x/text/cases"
)

// DefaultPurposeMaxLength bounds the purpose guess, in runes.
const DefaultPurposeMaxLength = 240

// extensionRegex finds file names such as main.py or app.tsx in prose.
var extensionRegex = regexp.MustCompile(`[\p{L}\p{N}_-]+\.([a-z0-9+]+)\b`)

// Analyzer runs the README heuristics.
type Analyzer struct {
	purposeMaxLength int
	stack            []compiledRule
	runHeadings      []*regexp.Regexp
	testMatchers     []*regexp.Regexp
	badgeMatchers    []*regexp.Regexp
	licenseMatchers  []*regexp.Regexp
}

type compiledRule struct {
	technology string
	matchers   []*regexp.Regexp
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPurposeMaxLength sets the purpose truncation bound. Values below 1
// are ignored.
func WithPurposeMaxLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.purposeMaxLength = n
		}
	}
}

// WithStackRules appends keyword rules to the built-in stack table.
func WithStackRules(rules ...StackRule) Option {
	return func(a *Analyzer) {
		for _, r := range rules {
			if r.Technology == "" || len(r.Keywords) == 0 {
				continue
			}
			a.stack = append(a.stack, compileRule(r))
		}
	}
}

// New creates an Analyzer with the built-in tables.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		purposeMaxLength: DefaultPurposeMaxLength,
		testMatchers:     wordMatchers(testKeywords),
		badgeMatchers:    wordMatchers(testBadgeMarkers),
		licenseMatchers:  wordMatchers(licenseKeywords),
	}
	for _, r := range stackRules {
		a.stack = append(a.stack, compileRule(r))
	}
	for _, trigger := range runHeadingTriggers {
		a.runHeadings = append(a.runHeadings, regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:`+trigger+`)(?:$|[^\p{L}\p{N}])`))
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// signals collects what the risk checklist looks at.
type signals struct {
	tests   bool
	license bool
	run     bool
	purpose bool
}

// Analyze derives Findings from content. A nil or blank README yields the
// "README missing or empty" Findings regardless of any metadata.
func (a *Analyzer) Analyze(content *models.ReadmeContent) models.Findings {
	if content == nil || strings.TrimSpace(content.Text) == "" {
		return models.Findings{
			Purpose:         UnknownPurpose,
			Stack:           []string{},
			RunInstructions: []string{},
			Risks:           []string{RiskReadmeMissing},
		}
	}

	doc := readme.Parse([]byte(content.Text))
	blocks := content.Blocks
	if blocks == nil {
		blocks = doc.Blocks
	}
	badges := content.Badges
	if badges == nil {
		badges = doc.Badges
	}

	folded := cases.Fold().String(content.Text)

	findings := models.Findings{
		Purpose:         a.purpose(doc, content.Description),
		Stack:           a.detectStack(folded, blocks, content),
		RunInstructions: a.runInstructions(blocks),
	}

	s := &signals{
		tests:   anyMatch(a.testMatchers, folded) || a.testBadge(badges) || hasTestPath(content.Paths),
		license: content.License != "" || anyMatch(a.licenseMatchers, folded) || licenseBadge(badges) || hasLicensePath(content.Paths),
		run:     len(findings.RunInstructions) > 0,
		purpose: findings.Purpose != UnknownPurpose,
	}

	findings.Risks = []string{}
	for _, check := range riskChecks {
		if check.missing(s) {
			findings.Risks = append(findings.Risks, check.risk)
		}
	}

	return findings
}

// purpose returns the first paragraph that carries any prose.
func (a *Analyzer) purpose(doc *readme.Document, description string) string {
	for _, p := range doc.Paragraphs {
		if hasProse(p) {
			return truncate(p, a.purposeMaxLength)
		}
	}
	if d := strings.Join(strings.Fields(description), " "); d != "" {
		return truncate(d, a.purposeMaxLength)
	}
	return UnknownPurpose
}

func (a *Analyzer) detectStack(folded string, blocks []models.CodeBlock, content *models.ReadmeContent) []string {
	found := make(map[string]struct{})

	topics := cases.Fold().String(strings.Join(content.Topics, " "))
	for _, rule := range a.stack {
		if anyMatch(rule.matchers, folded) || anyMatch(rule.matchers, topics) {
			found[rule.technology] = struct{}{}
		}
	}

	for _, b := range blocks {
		if tech, ok := languageTags[b.Language]; ok {
			found[tech] = struct{}{}
		}
	}

	for _, m := range extensionRegex.FindAllStringSubmatch(folded, -1) {
		if tech, ok := extensionLanguages[m[1]]; ok {
			found[tech] = struct{}{}
		}
	}

	for _, p := range content.Paths {
		lower := strings.ToLower(p)
		if tech, ok := fileSignals[path.Base(lower)]; ok {
			found[tech] = struct{}{}
		}
		for suffix, tech := range fileSuffixSignals {
			if strings.HasSuffix(lower, suffix) {
				found[tech] = struct{}{}
			}
		}
	}

	if content.Language != "" {
		if tech, ok := languageTags[cases.Fold().String(content.Language)]; ok {
			found[tech] = struct{}{}
		} else {
			found[content.Language] = struct{}{}
		}
	}

	stack := make([]string, 0, len(found))
	for tech := range found {
		stack = append(stack, tech)
	}
	sort.Strings(stack)
	return stack
}

// runInstructions keeps shell-like blocks inside an install/usage section,
// in source order.
func (a *Analyzer) runInstructions(blocks []models.CodeBlock) []string {
	run := []string{}
	for _, b := range blocks {
		if !shellLanguages[b.Language] || strings.TrimSpace(b.Body) == "" {
			continue
		}
		if a.inRunSection(b.Section) {
			run = append(run, b.Body)
		}
	}
	return run
}

func (a *Analyzer) inRunSection(section []string) bool {
	for _, heading := range section {
		folded := cases.Fold().String(heading)
		if anyMatch(a.runHeadings, folded) {
			return true
		}
	}
	return false
}

func (a *Analyzer) testBadge(badges []models.Badge) bool {
	for _, b := range badges {
		s := cases.Fold().String(b.AltText + " " + b.ImageURL + " " + b.TargetURL)
		if anyMatch(a.badgeMatchers, s) {
			return true
		}
	}
	return false
}

func licenseBadge(badges []models.Badge) bool {
	for _, b := range badges {
		s := strings.ToLower(b.AltText + " " + b.ImageURL + " " + b.TargetURL)
		if strings.Contains(s, "license") || strings.Contains(s, "licence") {
			return true
		}
	}
	return false
}

func hasTestPath(paths []string) bool {
	for _, p := range paths {
		lower := strings.ToLower(p)
		base := path.Base(lower)
		switch {
		case strings.HasPrefix(lower, "test/"), strings.HasPrefix(lower, "tests/"),
			strings.Contains(lower, "/test/"), strings.Contains(lower, "/tests/"),
			strings.Contains(lower, "__tests__/"), strings.HasPrefix(lower, "spec/"):
			return true
		case strings.HasSuffix(base, "_test.go"), strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"),
			strings.Contains(base, ".test."), strings.Contains(base, ".spec."):
			return true
		}
	}
	return false
}

func hasLicensePath(paths []string) bool {
	for _, p := range paths {
		base := strings.ToLower(path.Base(p))
		if strings.HasPrefix(base, "license") || strings.HasPrefix(base, "licence") || strings.HasPrefix(base, "copying") {
			return true
		}
	}
	return false
}

func compileRule(r StackRule) compiledRule {
	keywords := make([]string, len(r.Keywords))
	for i, k := range r.Keywords {
		keywords[i] = cases.Fold().String(strings.TrimSpace(k))
	}
	return compiledRule{technology: r.Technology, matchers: wordMatchers(keywords)}
}

// wordMatchers builds regexps that match each keyword with no letter or
// digit on either side, so "React," and "(docker)" match but "reactor" does not.
func wordMatchers(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		out = append(out, regexp.MustCompile(`(?:^|[^\p{L}\p{N}])`+regexp.QuoteMeta(k)+`(?:$|[^\p{L}\p{N}])`))
	}
	return out
}

func anyMatch(matchers []*regexp.Regexp, s string) bool {
	if s == "" {
		return false
	}
	for _, m := range matchers {
		if m.MatchString(s) {
			return true
		}
	}
	return false
}

func hasProse(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
