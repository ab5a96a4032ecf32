// Package heading implements a multi-pass statistical heading analyzer:
// style-mapping and advisory-trust rules, bullet/length exclusions,
// bold+size statistical inference, and numbered-sequence demotion.
package heading

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// DecisionKind tags the outcome of analyzing one paragraph.
type DecisionKind int

const (
	DecisionNone DecisionKind = iota
	DecisionExplicit
	DecisionInferred
	DecisionDemoted
)

// Decision is the analyzer's verdict for one paragraph: whether (and at
// what level) it renders as a heading.
type Decision struct {
	Kind  DecisionKind
	Level model.HeadingLevel
}

// IsHeading reports whether d renders as a heading at all.
func (d Decision) IsHeading() bool {
	return (d.Kind == DecisionExplicit || d.Kind == DecisionInferred) && d.Level != model.HeadingNone
}

// Config holds the analyzer's tunables (set via RenderOptions.heading_config).
type Config struct {
	TrustExplicitStyles bool
	MaxTextLength        int     // default 80
	SizeThresholdRatio   float64 // default 1.2
	MinSequenceCount     int     // default 2
	MaxHeadingLevel      int     // default 4

	// StyleMapping keys are case-insensitive style display names; values
	// are looked up first. StyleMappingByID keys are exact style ids.
	StyleMapping     map[string]model.HeadingLevel
	StyleMappingByID map[string]model.HeadingLevel
}

// DefaultConfig returns the English+Korean default style mapping and the
// spec's default thresholds.
func DefaultConfig() *Config {
	byName := map[string]model.HeadingLevel{
		"title":    model.H1,
		"subtitle": model.H2,
		"chapter":  model.H1,
	}
	for i := 1; i <= 6; i++ {
		lvl := model.HeadingLevel(i)
		byName[strings.ToLower("Heading "+strconv.Itoa(i))] = lvl
		byName[strings.ToLower("제목 "+strconv.Itoa(i))] = lvl
		byName[strings.ToLower("제목"+strconv.Itoa(i))] = lvl
	}
	byID := map[string]model.HeadingLevel{
		"Title":    model.H1,
		"Subtitle": model.H2,
	}
	for i := 1; i <= 6; i++ {
		byID["Heading"+strconv.Itoa(i)] = model.HeadingLevel(i)
	}
	return &Config{
		MaxTextLength:      80,
		SizeThresholdRatio: 1.2,
		MinSequenceCount:   2,
		MaxHeadingLevel:    4,
		StyleMapping:       byName,
		StyleMappingByID:   byID,
	}
}

// bulletLeaders are the markers §4.7 step 3 treats as "this is a bullet
// item, not a heading" exclusions.
var bulletLeaders = []rune("ㅇㆍ○●◎■□▪▫◆◇★☆※•-–—→▶►▷▹◁◀◃◂")

func isBulletLeader(r rune) bool {
	for _, b := range bulletLeaders {
		if r == b {
			return true
		}
	}
	return false
}

// Analyze runs the full three-pass analysis over every paragraph directly
// present in sections' Content blocks (headers/footers/notes and table-cell
// paragraphs keep their advisory heading as-is; they are not candidates for
// the style/statistical inference passes, matching how the reference
// implementation scopes heading detection to flowing body content).
func Analyze(sections []*model.Section, cfg *Config) map[*model.Paragraph]Decision {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var paras []*model.Paragraph
	for _, sec := range sections {
		for i := range sec.Content {
			b := &sec.Content[i]
			if b.Type == model.BlockParagraph && b.Paragraph != nil {
				paras = append(paras, b.Paragraph)
			}
		}
	}

	baseSize := modeSize(paras)

	decisions := make([]Decision, len(paras))
	for i, p := range paras {
		decisions[i] = decideOne(p, cfg, baseSize)
	}

	demoteSequences(paras, decisions, cfg)

	result := make(map[*model.Paragraph]Decision, len(paras))
	for i, p := range paras {
		result[p] = decisions[i]
	}
	return result
}

// modeSize computes the base font size (half-points) as the mode of the
// character-weighted size histogram across every run in every paragraph.
func modeSize(paras []*model.Paragraph) int {
	hist := map[int]int{}
	for _, p := range paras {
		for _, r := range p.Runs {
			hist[r.Style.Size] += len([]rune(r.Text))
		}
	}
	best, bestCount := 0, -1
	for size, count := range hist {
		if count > bestCount || (count == bestCount && size < best) {
			best, bestCount = size, count
		}
	}
	return best
}

func decideOne(p *model.Paragraph, cfg *Config, baseSize int) Decision {
	cap := cfg.MaxHeadingLevel

	// 1. Style mapping.
	if cfg.StyleMapping != nil {
		if lvl, ok := cfg.StyleMapping[strings.ToLower(strings.TrimSpace(p.StyleName))]; ok {
			return Decision{Kind: DecisionExplicit, Level: lvl.Clamp(cap)}
		}
	}
	if cfg.StyleMappingByID != nil {
		if lvl, ok := cfg.StyleMappingByID[p.StyleID]; ok {
			return Decision{Kind: DecisionExplicit, Level: lvl.Clamp(cap)}
		}
	}

	// 2. Advisory heading + trust.
	if cfg.TrustExplicitStyles && p.Heading != model.HeadingNone {
		return Decision{Kind: DecisionExplicit, Level: p.Heading.Clamp(cap)}
	}

	text := paragraphText(p)
	trimmed := strings.TrimSpace(text)

	// 3. Exclusion: bullet leader.
	if runes := []rune(trimmed); len(runes) > 0 && isBulletLeader(runes[0]) {
		if p.Heading != model.HeadingNone {
			return Decision{Kind: DecisionDemoted, Level: p.Heading.Clamp(cap)}
		}
		return Decision{Kind: DecisionNone}
	}

	// 4. Exclusion: length.
	maxLen := cfg.MaxTextLength
	if maxLen <= 0 {
		maxLen = 80
	}
	if len([]rune(trimmed)) > maxLen {
		if p.Heading != model.HeadingNone {
			return Decision{Kind: DecisionDemoted, Level: p.Heading.Clamp(cap)}
		}
		return Decision{Kind: DecisionNone}
	}

	// 5. Statistical inference.
	if allBold(p) {
		ratio := cfg.SizeThresholdRatio
		if ratio <= 0 {
			ratio = 1.2
		}
		dom := dominantSize(p)
		if baseSize > 0 && dom > 0 && float64(dom) >= ratio*float64(baseSize) {
			r := float64(dom) / float64(baseSize)
			var lvl model.HeadingLevel
			switch {
			case r >= 2.0:
				lvl = model.H1
			case r >= 1.5:
				lvl = model.H2
			case r >= 1.2:
				lvl = model.H3
			default:
				lvl = model.H4
			}
			return Decision{Kind: DecisionInferred, Level: lvl.Clamp(cap)}
		}
	}

	// 6. Fallback.
	if p.Heading != model.HeadingNone {
		return Decision{Kind: DecisionExplicit, Level: p.Heading.Clamp(cap)}
	}
	return Decision{Kind: DecisionNone}
}

func paragraphText(p *model.Paragraph) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// allBold reports whether every non-empty run in p is bold.
func allBold(p *model.Paragraph) bool {
	any := false
	for _, r := range p.Runs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		any = true
		if !r.Style.Bold {
			return false
		}
	}
	return any
}

// dominantSize returns the text size (half-points) carrying the most
// characters in p.
func dominantSize(p *model.Paragraph) int {
	hist := map[int]int{}
	for _, r := range p.Runs {
		hist[r.Style.Size] += len([]rune(r.Text))
	}
	best, bestCount := 0, -1
	for size, count := range hist {
		if count > bestCount {
			best, bestCount = size, count
		}
	}
	return best
}

// --------------------------------------------------------------------------
// Pass 3 — numbered-sequence demotion
// --------------------------------------------------------------------------

var koreanOrdered = []rune("가나다라마바사아자차카타파하")

type marker struct {
	family string
	index  int
}

func koreanIndex(r rune) int {
	for i, k := range koreanOrdered {
		if r == k {
			return i
		}
	}
	return -1
}

// parseMarker recognizes the leading marker of trimmed paragraph text, for
// the numbered-sequence demotion pass. Only the bare value (digits, a
// single letter, or a Korean ordering character) is extracted; the
// surrounding punctuation ("N.", "N)", "(N)") is discarded entirely, so a
// sequence may freely mix punctuation styles across items.
func parseMarker(trimmed string) (marker, bool) {
	runes := []rune(trimmed)
	if len(runes) == 0 {
		return marker{}, false
	}

	if runes[0] == '(' {
		end := -1
		for i, r := range runes {
			if r == ')' {
				end = i
				break
			}
		}
		if end <= 1 {
			return marker{}, false
		}
		inner := string(runes[1:end])
		if n, err := strconv.Atoi(inner); err == nil {
			return marker{family: "num", index: n}, true
		}
		ir := []rune(inner)
		if len(ir) == 1 {
			if ir[0] >= 'a' && ir[0] <= 'z' {
				return marker{family: "letter", index: int(ir[0] - 'a')}, true
			}
			if idx := koreanIndex(ir[0]); idx >= 0 {
				return marker{family: "korean", index: idx}, true
			}
		}
		return marker{}, false
	}

	// N. or N)
	i := 0
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	if i > 0 && i < len(runes) && (runes[i] == '.' || runes[i] == ')') {
		n, _ := strconv.Atoi(string(runes[:i]))
		return marker{family: "num", index: n}, true
	}

	// a. / a)
	if len(runes) >= 2 && runes[0] >= 'a' && runes[0] <= 'z' && (runes[1] == '.' || runes[1] == ')') {
		return marker{family: "letter", index: int(runes[0] - 'a')}, true
	}

	// 가. / 가)
	if len(runes) >= 2 {
		if idx := koreanIndex(runes[0]); idx >= 0 && (runes[1] == '.' || runes[1] == ')') {
			return marker{family: "korean", index: idx}, true
		}
	}
	return marker{}, false
}

// nextOf reports whether b is the marker immediately following a in its
// family's sequence. Punctuation style never factors in — only the bare
// value and its family. Letter and Korean families do not wrap past their
// end.
func nextOf(a, b marker) bool {
	if a.family != b.family {
		return false
	}
	return b.index == a.index+1
}

// demoteSequences scans the decision list for runs of consecutive
// paragraphs whose text starts with the next marker in a recognized
// sequence and demotes Explicit/Inferred decisions within runs of length
// >= cfg.MinSequenceCount to Demoted.
func demoteSequences(paras []*model.Paragraph, decisions []Decision, cfg *Config) {
	minCount := cfg.MinSequenceCount
	if minCount <= 0 {
		minCount = 2
	}

	markers := make([]marker, len(paras))
	ok := make([]bool, len(paras))
	for i, p := range paras {
		m, found := parseMarker(strings.TrimSpace(paragraphText(p)))
		markers[i], ok[i] = m, found
	}

	i := 0
	for i < len(paras) {
		if !ok[i] {
			i++
			continue
		}
		j := i + 1
		for j < len(paras) && ok[j] && nextOf(markers[j-1], markers[j]) {
			j++
		}
		runLen := j - i
		if runLen >= minCount {
			for k := i; k < j; k++ {
				if decisions[k].Kind == DecisionExplicit || decisions[k].Kind == DecisionInferred {
					decisions[k] = Decision{Kind: DecisionDemoted, Level: decisions[k].Level}
				}
			}
		}
		i = j
	}
}
