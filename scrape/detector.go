package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/gleanerhq/gleaner"
)

// DefaultProbeTimeout bounds the network probes the detector issues.
const DefaultProbeTimeout = 10 * time.Second

// sniffLimit caps how much of a body the detector inspects. Mere
// classification must not download full pages.
const sniffLimit = 5 * 1024

var _ gleaner.Detector = (*Detector)(nil)

// Platform-specific URL shapes, checked before anything else.
var platformPatterns = []struct {
	re *regexp.Regexp
	st gleaner.SourceType
}{
	{regexp.MustCompile(`(?i)reddit\.com/r/\w+`), gleaner.SourceTypeReddit},
	{regexp.MustCompile(`(?i)reddit\.com/user/\w+`), gleaner.SourceTypeReddit},
	{regexp.MustCompile(`(?i)stackoverflow\.com/questions`), gleaner.SourceTypeStackOverflow},
	{regexp.MustCompile(`(?i)stackoverflow\.com/search`), gleaner.SourceTypeStackOverflow},
	{regexp.MustCompile(`(?i)stackoverflow\.com/questions/tagged`), gleaner.SourceTypeStackOverflow},
}

// Feed indicators in the URL itself.
var feedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/feed/?$`),
	regexp.MustCompile(`(?i)/rss/?$`),
	regexp.MustCompile(`(?i)/atom/?$`),
	regexp.MustCompile(`(?i)\.xml$`),
	regexp.MustCompile(`(?i)\.rss$`),
}

// feedMarkers are feed root markers looked for in the first bytes of a
// body.
var feedMarkers = []string{"<rss", "<feed", "xmlns:atom", `xmlns="http://www.w3.org/2005/Atom`}

// defaultDynamicSelectors identify client-rendered frameworks by their
// hydration payload and version markers.
var defaultDynamicSelectors = []string{
	"script#__NEXT_DATA__",
	"[ng-version]",
}

// defaultDynamicSubstrings are fingerprints cheaper to match as plain
// substrings.
var defaultDynamicSubstrings = []string{"vue-server-renderer"}

// Detector classifies a URL into a source type using layered
// heuristics: cheap local checks first, network probes only when
// necessary.
type Detector struct {
	fetcher gleaner.Fetcher
	logger  *slog.Logger
	timeout time.Duration

	dynamicSelectors  []string
	dynamicSubstrings []string
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithProbeTimeout bounds the detector's HEAD and body-sniff requests.
// Defaults to DefaultProbeTimeout.
func WithProbeTimeout(d time.Duration) DetectorOption {
	return func(det *Detector) {
		det.timeout = d
	}
}

// WithDynamicFingerprints replaces the markers used to recognize
// client-rendered pages. Selectors are CSS selectors; substrings are
// matched verbatim against the sniffed body.
func WithDynamicFingerprints(selectors, substrings []string) DetectorOption {
	return func(det *Detector) {
		det.dynamicSelectors = selectors
		det.dynamicSubstrings = substrings
	}
}

// NewDetector creates a Detector that uses fetcher for network probes.
func NewDetector(fetcher gleaner.Fetcher, logger *slog.Logger, opts ...DetectorOption) *Detector {
	d := &Detector{
		fetcher:           fetcher,
		logger:            logger,
		timeout:           DefaultProbeTimeout,
		dynamicSelectors:  defaultDynamicSelectors,
		dynamicSubstrings: defaultDynamicSubstrings,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect classifies the URL. It never fails: any internal error is
// logged and the safe default SourceTypeStaticHTML is returned.
//
// The checks run in strict order, short-circuiting on first match:
// platform URL shape, feed URL shape, Content-Type header probe, capped
// body sniff, static default.
func (d *Detector) Detect(ctx context.Context, rawURL string) gleaner.SourceType {
	if st, ok := d.matchPlatform(rawURL); ok {
		d.logger.Info("detected via platform URL pattern", "url", rawURL, "type", st)
		return st
	}

	if d.matchFeedURL(rawURL) {
		d.logger.Info("detected feed via URL pattern", "url", rawURL)
		return gleaner.SourceTypeFeed
	}

	if d.probeContentType(ctx, rawURL) {
		d.logger.Info("detected feed via Content-Type", "url", rawURL)
		return gleaner.SourceTypeFeed
	}

	if st, ok := d.sniffBody(ctx, rawURL); ok {
		d.logger.Info("detected via body sniff", "url", rawURL, "type", st)
		return st
	}

	d.logger.Info("defaulting to static HTML", "url", rawURL)
	return gleaner.SourceTypeStaticHTML
}

// IsSupported reports whether the URL has a scheme and a host. It does
// not attempt classification.
func (d *Detector) IsSupported(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func (d *Detector) matchPlatform(rawURL string) (gleaner.SourceType, bool) {
	for _, p := range platformPatterns {
		if p.re.MatchString(rawURL) {
			return p.st, true
		}
	}
	return gleaner.SourceTypeUnknown, false
}

func (d *Detector) matchFeedURL(rawURL string) bool {
	for _, re := range feedPatterns {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// probeContentType issues a header-only request and reports whether the
// Content-Type names a feed format. Network failure is no signal, not
// an error.
func (d *Detector) probeContentType(ctx context.Context, rawURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	contentType, err := d.fetcher.Head(ctx, rawURL)
	if err != nil {
		d.logger.Debug("header probe failed", "url", rawURL, "err", err)
		return false
	}

	for _, marker := range []string{"xml", "rss", "atom"} {
		if strings.Contains(contentType, marker) {
			return true
		}
	}
	return false
}

// sniffBody fetches the first bytes of the body and looks for feed root
// markers and client-rendered-framework fingerprints. Any fetch or
// parse failure is no signal.
func (d *Detector) sniffBody(ctx context.Context, rawURL string) (gleaner.SourceType, bool) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	body, err := d.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		d.logger.Debug("body sniff failed", "url", rawURL, "err", err)
		return gleaner.SourceTypeUnknown, false
	}
	if len(body) > sniffLimit {
		body = body[:sniffLimit]
	}

	for _, marker := range feedMarkers {
		if strings.Contains(body, marker) {
			return gleaner.SourceTypeFeed, true
		}
	}

	if sniffFeedXML(body) {
		return gleaner.SourceTypeFeed, true
	}

	if d.sniffDynamic(body) {
		return gleaner.SourceTypeDynamicHTML, true
	}

	return gleaner.SourceTypeUnknown, false
}

// sniffFeedXML attempts a lenient XML parse and checks for an rss or
// feed root element.
func sniffFeedXML(body string) bool {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return false
	}
	root := doc.Root()
	if root == nil {
		return false
	}
	tag := strings.ToLower(root.Tag)
	return tag == "rss" || tag == "feed"
}

// sniffDynamic checks the body for client-rendered-framework
// fingerprints.
func (d *Detector) sniffDynamic(body string) bool {
	for _, marker := range d.dynamicSubstrings {
		if strings.Contains(body, marker) {
			return true
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return false
	}
	for _, sel := range d.dynamicSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}
