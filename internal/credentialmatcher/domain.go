package credentialmatcher

import "strings"

// commonTLDs identifies app package names: a search string starting with
// one of these followed by a dot (e.g. "com.coolblue.app") is a reversed
// domain name, not a URL.
var commonTLDs = map[string]struct{}{
	// Generic TLDs
	"com": {}, "net": {}, "org": {}, "edu": {}, "gov": {}, "mil": {}, "int": {},
	// Country code TLDs
	"nl": {}, "de": {}, "uk": {}, "fr": {}, "it": {}, "es": {}, "pl": {}, "be": {}, "ch": {}, "at": {}, "se": {}, "no": {}, "dk": {}, "fi": {},
	"pt": {}, "gr": {}, "cz": {}, "hu": {}, "ro": {}, "bg": {}, "hr": {}, "sk": {}, "si": {}, "lt": {}, "lv": {}, "ee": {}, "ie": {}, "lu": {},
	"us": {}, "ca": {}, "mx": {}, "br": {}, "ar": {}, "cl": {}, "co": {}, "ve": {}, "pe": {}, "ec": {},
	"au": {}, "nz": {}, "jp": {}, "cn": {}, "in": {}, "kr": {}, "tw": {}, "hk": {}, "sg": {}, "my": {}, "th": {}, "id": {}, "ph": {}, "vn": {},
	"za": {}, "eg": {}, "ng": {}, "ke": {}, "ug": {}, "tz": {}, "ma": {},
	"ru": {}, "ua": {}, "by": {}, "kz": {}, "il": {}, "tr": {}, "sa": {}, "ae": {}, "qa": {}, "kw": {},
	// New gTLDs
	"app": {}, "dev": {}, "io": {}, "ai": {}, "tech": {}, "shop": {}, "store": {}, "online": {}, "site": {}, "website": {},
	"blog": {}, "news": {}, "media": {}, "tv": {}, "video": {}, "music": {}, "pro": {}, "info": {}, "biz": {}, "name": {},
}

// twoLevelTLDs are public suffixes spanning two labels (e.g. "co.uk"), so
// extractRootDomain keeps three labels instead of two for domains ending
// in one of these.
var twoLevelTLDs = map[string]struct{}{
	// Australia
	"com.au": {}, "net.au": {}, "org.au": {}, "edu.au": {}, "gov.au": {}, "asn.au": {}, "id.au": {},
	// United Kingdom
	"co.uk": {}, "org.uk": {}, "net.uk": {}, "ac.uk": {}, "gov.uk": {}, "plc.uk": {}, "ltd.uk": {}, "me.uk": {},
	// Canada
	"co.ca": {}, "net.ca": {}, "org.ca": {}, "gc.ca": {}, "ab.ca": {}, "bc.ca": {}, "mb.ca": {}, "nb.ca": {}, "nf.ca": {}, "nl.ca": {}, "ns.ca": {}, "nt.ca": {}, "nu.ca": {},
	"on.ca": {}, "pe.ca": {}, "qc.ca": {}, "sk.ca": {}, "yk.ca": {},
	// India
	"co.in": {}, "net.in": {}, "org.in": {}, "edu.in": {}, "gov.in": {}, "ac.in": {}, "res.in": {}, "gen.in": {}, "firm.in": {}, "ind.in": {},
	// Japan
	"co.jp": {}, "ne.jp": {}, "or.jp": {}, "ac.jp": {}, "ad.jp": {}, "ed.jp": {}, "go.jp": {}, "gr.jp": {}, "lg.jp": {},
	// South Africa
	"co.za": {}, "net.za": {}, "org.za": {}, "edu.za": {}, "gov.za": {}, "ac.za": {}, "web.za": {},
	// New Zealand
	"co.nz": {}, "net.nz": {}, "org.nz": {}, "edu.nz": {}, "govt.nz": {}, "ac.nz": {}, "geek.nz": {}, "gen.nz": {}, "kiwi.nz": {}, "maori.nz": {}, "mil.nz": {}, "school.nz": {},
	// Brazil
	"com.br": {}, "net.br": {}, "org.br": {}, "edu.br": {}, "gov.br": {}, "mil.br": {}, "art.br": {}, "etc.br": {}, "adv.br": {}, "arq.br": {}, "bio.br": {}, "cim.br": {},
	"cng.br": {}, "cnt.br": {}, "ecn.br": {}, "eng.br": {}, "esp.br": {}, "eti.br": {}, "far.br": {}, "fnd.br": {}, "fot.br": {}, "fst.br": {}, "g12.br": {}, "geo.br": {},
	"ggf.br": {}, "jor.br": {}, "lel.br": {}, "mat.br": {}, "med.br": {}, "mus.br": {}, "not.br": {}, "ntr.br": {}, "odo.br": {}, "ppg.br": {}, "pro.br": {}, "psc.br": {},
	"psi.br": {}, "qsl.br": {}, "rec.br": {}, "slg.br": {}, "srv.br": {}, "tmp.br": {}, "trd.br": {}, "tur.br": {}, "tv.br": {}, "vet.br": {}, "zlg.br": {},
	// Russia
	"com.ru": {}, "net.ru": {}, "org.ru": {}, "edu.ru": {}, "gov.ru": {}, "int.ru": {}, "mil.ru": {}, "spb.ru": {}, "msk.ru": {},
	// China
	"com.cn": {}, "net.cn": {}, "org.cn": {}, "edu.cn": {}, "gov.cn": {}, "mil.cn": {}, "ac.cn": {}, "ah.cn": {}, "bj.cn": {}, "cq.cn": {}, "fj.cn": {}, "gd.cn": {}, "gs.cn": {},
	"gz.cn": {}, "gx.cn": {}, "ha.cn": {}, "hb.cn": {}, "he.cn": {}, "hi.cn": {}, "hk.cn": {}, "hl.cn": {}, "hn.cn": {}, "jl.cn": {}, "js.cn": {}, "jx.cn": {}, "ln.cn": {}, "mo.cn": {},
	"nm.cn": {}, "nx.cn": {}, "qh.cn": {}, "sc.cn": {}, "sd.cn": {}, "sh.cn": {}, "sn.cn": {}, "sx.cn": {}, "tj.cn": {}, "tw.cn": {}, "xj.cn": {}, "xz.cn": {}, "yn.cn": {}, "zj.cn": {},
	// Mexico
	"com.mx": {}, "net.mx": {}, "org.mx": {}, "edu.mx": {}, "gob.mx": {},
	// Argentina
	"com.ar": {}, "net.ar": {}, "org.ar": {}, "edu.ar": {}, "gov.ar": {}, "mil.ar": {}, "int.ar": {},
	// Chile
	"com.cl": {}, "net.cl": {}, "org.cl": {}, "edu.cl": {}, "gov.cl": {}, "mil.cl": {},
	// Colombia
	"com.co": {}, "net.co": {}, "org.co": {}, "edu.co": {}, "gov.co": {}, "mil.co": {}, "nom.co": {},
	// Venezuela
	"com.ve": {}, "net.ve": {}, "org.ve": {}, "edu.ve": {}, "gov.ve": {}, "mil.ve": {}, "web.ve": {},
	// Peru
	"com.pe": {}, "net.pe": {}, "org.pe": {}, "edu.pe": {}, "gob.pe": {}, "mil.pe": {}, "nom.pe": {},
	// Ecuador
	"com.ec": {}, "net.ec": {}, "org.ec": {}, "edu.ec": {}, "gov.ec": {}, "mil.ec": {}, "med.ec": {}, "fin.ec": {}, "pro.ec": {}, "info.ec": {},
	// Europe
	"co.at": {}, "or.at": {}, "ac.at": {}, "gv.at": {}, "priv.at": {},
	"co.be": {}, "ac.be": {},
	"co.dk": {}, "ac.dk": {},
	"co.il": {}, "net.il": {}, "org.il": {}, "ac.il": {}, "gov.il": {}, "idf.il": {}, "k12.il": {}, "muni.il": {},
	"co.no": {}, "ac.no": {}, "priv.no": {},
	"co.pl": {}, "net.pl": {}, "org.pl": {}, "edu.pl": {}, "gov.pl": {}, "mil.pl": {}, "nom.pl": {}, "com.pl": {},
	"co.th": {}, "net.th": {}, "org.th": {}, "edu.th": {}, "gov.th": {}, "mil.th": {}, "ac.th": {}, "in.th": {},
	"co.kr": {}, "net.kr": {}, "org.kr": {}, "edu.kr": {}, "gov.kr": {}, "mil.kr": {}, "ac.kr": {}, "go.kr": {}, "ne.kr": {}, "or.kr": {}, "pe.kr": {}, "re.kr": {}, "seoul.kr": {},
	"kyonggi.kr": {},
	// Others
	"co.id": {}, "net.id": {}, "org.id": {}, "edu.id": {}, "gov.id": {}, "mil.id": {}, "web.id": {}, "ac.id": {}, "sch.id": {},
	"co.ma": {}, "net.ma": {}, "org.ma": {}, "edu.ma": {}, "gov.ma": {}, "ac.ma": {}, "press.ma": {},
	"co.ke": {}, "net.ke": {}, "org.ke": {}, "edu.ke": {}, "gov.ke": {}, "ac.ke": {}, "go.ke": {}, "info.ke": {}, "me.ke": {}, "mobi.ke": {}, "sc.ke": {},
	"co.ug": {}, "net.ug": {}, "org.ug": {}, "edu.ug": {}, "gov.ug": {}, "ac.ug": {}, "sc.ug": {}, "go.ug": {}, "ne.ug": {}, "or.ug": {},
	"co.tz": {}, "net.tz": {}, "org.tz": {}, "edu.tz": {}, "gov.tz": {}, "ac.tz": {}, "go.tz": {}, "hotel.tz": {}, "info.tz": {}, "me.tz": {}, "mil.tz": {}, "mobi.tz": {},
	"ne.tz": {}, "or.tz": {}, "sc.tz": {}, "tv.tz": {},
}

// isAppPackageName reports whether text looks like a reversed mobile
// package name (e.g. "com.example.app") rather than a URL: it contains a
// dot, carries no http(s):// prefix, and its first label is a known TLD.
func isAppPackageName(text string) bool {
	if !strings.Contains(text, ".") {
		return false
	}
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return false
	}

	firstPart := strings.ToLower(text)
	if i := strings.IndexByte(firstPart, '.'); i >= 0 {
		firstPart = firstPart[:i]
	}

	_, ok := commonTLDs[firstPart]
	return ok
}

// DomainWithPort is an extracted host plus an optional port, used by the
// URL-domain priority to distinguish same-host-different-port services
// (e.g. two local dev servers on 127.0.0.1) without weakening the
// anti-phishing subdomain checks below, which still operate on Host
// alone. The Rust original this matcher is otherwise grounded on has no
// port concept; this is a Go-only addition.
type DomainWithPort struct {
	Host string
	Port string // empty when the URL carried no explicit port
}

// extractDomainWithPort extracts the host and, if present, a trailing
// ":port" from url. The port is split off before the char-validity
// checks run, so a URL carrying a port is validated on its host alone.
func extractDomainWithPort(url string) DomainWithPort {
	host, port := extractHostAndPort(url)
	if host == "" {
		return DomainWithPort{}
	}
	return DomainWithPort{Host: host, Port: port}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// extractDomain extracts a bare domain from url, handling both full URLs
// and plain hostnames. Returns "" if url is not a plausible domain.
func extractDomain(url string) string {
	host, _ := extractHostAndPort(url)
	return host
}

// extractHostAndPort normalizes url (protocol, "www.", path/query/
// fragment) and splits off a trailing ":port", then validates the
// remaining host. The port is split off first so that a URL with a
// port is validated on its host alone, rather than having the ':'
// trip the host's char-validity check below.
func extractHostAndPort(url string) (host string, port string) {
	if url == "" {
		return "", ""
	}

	domain := strings.ToLower(url)
	hasProtocol := strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://")

	if !hasProtocol && isAppPackageName(domain) {
		return "", ""
	}

	switch {
	case strings.HasPrefix(domain, "https://"):
		domain = domain[len("https://"):]
	case strings.HasPrefix(domain, "http://"):
		domain = domain[len("http://"):]
	}

	domain = strings.TrimPrefix(domain, "www.")

	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	if i := strings.IndexByte(domain, '?'); i >= 0 {
		domain = domain[:i]
	}
	if i := strings.IndexByte(domain, '#'); i >= 0 {
		domain = domain[:i]
	}

	if i := strings.LastIndexByte(domain, ':'); i >= 0 {
		if candidate := domain[i+1:]; isDigits(candidate) {
			domain = domain[:i]
			port = candidate
		}
	}

	if !strings.Contains(domain, ".") {
		return "", ""
	}

	for _, c := range domain {
		if !isASCIIAlnum(c) && c != '.' && c != '-' {
			return "", ""
		}
	}

	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return "", ""
	}

	return domain, port
}

func isASCIIAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// extractRootDomain collapses a domain to its registrable root: the last
// two labels, or the last three if the last two form a known two-level
// public suffix (e.g. "sub.example.co.uk" -> "example.co.uk").
func extractRootDomain(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}

	if len(parts) >= 3 {
		lastTwo := parts[len(parts)-2] + "." + parts[len(parts)-1]
		if _, ok := twoLevelTLDs[lastTwo]; ok {
			return strings.Join(parts[len(parts)-3:], ".")
		}
	}

	return strings.Join(parts[len(parts)-2:], ".")
}

// domainsMatch reports whether two pre-extracted domains refer to the
// same site: exact match, a proper subdomain relationship, or a shared
// registrable root domain.
func domainsMatch(domain1, domain2 string) bool {
	if domain1 == "" || domain2 == "" {
		return false
	}
	if domain1 == domain2 {
		return true
	}
	if isSubdomainOf(domain1, domain2) || isSubdomainOf(domain2, domain1) {
		return true
	}
	return extractRootDomain(domain1) == extractRootDomain(domain2)
}

// isSubdomainOf reports whether domain1 is a proper subdomain of
// domain2 — domain1 must be longer and end with ".domain2", never just
// contain domain2 as a substring (that would let "another-example.com"
// falsely match "example.com").
func isSubdomainOf(domain1, domain2 string) bool {
	if len(domain1) <= len(domain2) {
		return false
	}
	return strings.HasSuffix(domain1, "."+domain2)
}

// domainsMatchWithPort extends domainsMatch with an optional port
// comparison: Sub-priority 1 requires both host and port to match
// (ignorePort=false); Sub-priority 2 accepts a host match on any port.
func domainsMatchWithPort(a, b DomainWithPort, ignorePort bool) bool {
	if !domainsMatch(a.Host, b.Host) {
		return false
	}
	if ignorePort {
		return true
	}
	return a.Port == b.Port
}
