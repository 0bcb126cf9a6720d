package validation

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// PinKind описывает форму ссылки на пин.
type PinKind string

const (
	PinKindPin        PinKind = "pin"
	PinKindProfilePin PinKind = "profile_pin"
	PinKindShortLink  PinKind = "short_link"
)

// Rules - канонический набор правил распознавания ссылок.
// Отдаётся клиентской странице через /api/rules, чтобы правила на клиенте и сервере совпадали.
type Rules struct {
	Schemes        []string `json:"schemes"`
	Domains        []string `json:"domains"`
	ShortLinkHosts []string `json:"shortLinkHosts"`
	PinSegment     string   `json:"pinSegment"`
	ProfileSegment string   `json:"profileSegment"`
}

// Регистрируемые домены Pinterest (eTLD+1).
var pinterestDomains = []string{
	"pinterest.com", "pinterest.co.uk", "pinterest.ca", "pinterest.de", "pinterest.fr",
	"pinterest.it", "pinterest.es", "pinterest.com.au", "pinterest.com.mx", "pinterest.co.kr",
	"pinterest.jp", "pinterest.ph", "pinterest.cl", "pinterest.pt", "pinterest.ie",
	"pinterest.dk", "pinterest.no", "pinterest.se", "pinterest.nz", "pinterest.at",
	"pinterest.be", "pinterest.nl", "pinterest.ch", "pinterest.co.za", "pinterest.in",
	"pinterest.ru", "pinterest.com.br", "pinterest.pl", "pinterest.cz", "pinterest.sk",
	"pinterest.hu", "pinterest.ro", "pinterest.bg", "pinterest.hr", "pinterest.si",
	"pinterest.lt", "pinterest.lv", "pinterest.ee", "pinterest.fi", "pinterest.gr",
	"pinterest.tr", "pinterest.il", "pinterest.ae", "pinterest.eg", "pinterest.ma",
	"pinterest.ng", "pinterest.gh", "pinterest.ke", "pinterest.za", "pinterest.ug",
	"pinterest.tz", "pinterest.mw", "pinterest.zm", "pinterest.zw", "pinterest.bw",
	"pinterest.sz", "pinterest.ls", "pinterest.mu", "pinterest.sc", "pinterest.mg",
	"pinterest.km", "pinterest.dj", "pinterest.so", "pinterest.et", "pinterest.er",
	"pinterest.sd", "pinterest.ss", "pinterest.td", "pinterest.cf", "pinterest.cm",
	"pinterest.gq", "pinterest.ga", "pinterest.cg", "pinterest.cd", "pinterest.ao",
	"pinterest.na", "pinterest.bj", "pinterest.tg", "pinterest.bf", "pinterest.ml",
	"pinterest.ne", "pinterest.sn", "pinterest.gm", "pinterest.gw", "pinterest.cv",
	"pinterest.mr", "pinterest.dz", "pinterest.tn", "pinterest.ly", "pinterest.eh",
}

// DefaultRules возвращает новую копию правил по умолчанию.
func DefaultRules() Rules {
	return Rules{
		Schemes:        []string{"http", "https"},
		Domains:        append([]string(nil), pinterestDomains...),
		ShortLinkHosts: []string{"pin.it"},
		PinSegment:     "pin",
		ProfileSegment: "pins",
	}
}

func (r Rules) clone() Rules {
	return Rules{
		Schemes:        append([]string(nil), r.Schemes...),
		Domains:        append([]string(nil), r.Domains...),
		ShortLinkHosts: append([]string(nil), r.ShortLinkHosts...),
		PinSegment:     r.PinSegment,
		ProfileSegment: r.ProfileSegment,
	}
}

// PinReference - распознанная ссылка на пин. Живёт в пределах одного запроса.
type PinReference struct {
	Kind PinKind `json:"kind"`
	ID   string  `json:"id"`
	Host string  `json:"host"`
	URL  string  `json:"url"`
}

var (
	pinIDPattern = regexp.MustCompile(`^\d+$`)
	tokenPattern = regexp.MustCompile(`^[\w-]+$`)
)

// PinValidator классифицирует строку как ссылку на пин Pinterest.
// Правила копируются при создании и дальше не меняются.
type PinValidator struct {
	rules      Rules
	schemes    map[string]struct{}
	domains    map[string]struct{}
	shortHosts map[string]struct{}
}

// NewPinValidator создаёт валидатор с переданным набором правил.
func NewPinValidator(rules Rules) *PinValidator {
	return &PinValidator{
		rules:      rules.clone(),
		schemes:    toSet(rules.Schemes),
		domains:    toSet(rules.Domains),
		shortHosts: toSet(rules.ShortLinkHosts),
	}
}

// Rules возвращает копию правил валидатора.
func (v *PinValidator) Rules() Rules {
	return v.rules.clone()
}

// Validate сообщает, является ли строка ссылкой на пин.
func (v *PinValidator) Validate(input string) bool {
	_, ok := v.Classify(input)
	return ok
}

// Classify разбирает строку и определяет форму ссылки.
// Никогда не паникует: любой мусор просто невалиден.
func (v *PinValidator) Classify(input string) (PinReference, bool) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return PinReference{}, false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Opaque != "" || u.User != nil {
		return PinReference{}, false
	}
	if _, ok := v.schemes[strings.ToLower(u.Scheme)]; !ok {
		return PinReference{}, false
	}
	if u.Port() != "" {
		return PinReference{}, false
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return PinReference{}, false
	}
	segments := pathSegments(u.EscapedPath())

	if v.isShortLinkHost(host) {
		if len(segments) == 0 || !tokenPattern.MatchString(segments[0]) {
			return PinReference{}, false
		}
		return PinReference{Kind: PinKindShortLink, ID: segments[0], Host: host, URL: raw}, true
	}

	if !v.isPinterestHost(host) {
		return PinReference{}, false
	}

	// pinterest.<tld>/pin/<digits>
	if len(segments) >= 2 && segments[0] == v.rules.PinSegment && pinIDPattern.MatchString(segments[1]) {
		return PinReference{Kind: PinKindPin, ID: segments[1], Host: host, URL: raw}, true
	}

	// pinterest.<tld>/<user...>/pins/<token>
	for i := 1; i+1 < len(segments); i++ {
		if segments[i] == v.rules.ProfileSegment && tokenPattern.MatchString(segments[i+1]) {
			return PinReference{Kind: PinKindProfilePin, ID: segments[i+1], Host: host, URL: raw}, true
		}
	}

	return PinReference{}, false
}

// isShortLinkHost проверяет хост коротких ссылок с учётом www.
func (v *PinValidator) isShortLinkHost(host string) bool {
	_, ok := v.shortHosts[strings.TrimPrefix(host, "www.")]
	return ok
}

// isPinterestHost проверяет, что регистрируемый домен хоста входит в список,
// а перед ним не больше одной метки (www., uk., ...).
func (v *PinValidator) isPinterestHost(host string) bool {
	if _, ok := v.domains[host]; ok {
		return true
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	if _, ok := v.domains[domain]; !ok {
		// Под wildcard-правилом (*.er) сам pinterest.er - публичный суффикс,
		// и www.pinterest.er оказывается регистрируемым доменом.
		suffix, _ := publicsuffix.PublicSuffix(host)
		_, ok := v.domains[suffix]
		return ok && domain == host
	}
	if host == domain {
		return true
	}
	sub := strings.TrimSuffix(host, "."+domain)
	return sub != "" && !strings.Contains(sub, ".")
}

func pathSegments(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
