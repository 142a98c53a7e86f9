package credentialmatcher

import "testing"

func TestIsAppPackageName(t *testing.T) {
	cases := map[string]bool{
		"com.coolblue.app":    true,
		"com.example.app":     true,
		"nl.ing.mobile":       true,
		"example.com":         false,
		"https://example.com": false,
		"no-dot-at-all":       false,
		"xyz.notatld.thing":   false,
	}
	for in, want := range cases {
		if got := isAppPackageName(in); got != want {
			t.Errorf("isAppPackageName(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.example.com/login":  "example.com",
		"http://example.com":             "example.com",
		"example.com":                    "example.com",
		"www.example.com":                "example.com",
		"https://sub.example.com/a?b=c":  "sub.example.com",
		"https://example.com#fragment":   "example.com",
		"com.example.app":                "",
		"not-a-domain":                   "",
		"":                               "",
		"https://exa mple.com":           "",
		"..example.com":                  "",
		"example.com.":                   "",
	}
	for in, want := range cases {
		if got := extractDomain(in); got != want {
			t.Errorf("extractDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractRootDomain(t *testing.T) {
	cases := map[string]string{
		"example.com":           "example.com",
		"sub.example.com":       "example.com",
		"a.b.sub.example.com":   "example.com",
		"example.co.uk":         "example.co.uk",
		"sub.example.co.uk":     "example.co.uk",
		"example.com.au":        "example.com.au",
		"sub.example.com.au":    "example.com.au",
	}
	for in, want := range cases {
		if got := extractRootDomain(in); got != want {
			t.Errorf("extractRootDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDomainsMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"example.com", "example.com", true},
		{"sub.example.com", "example.com", true},
		{"example.com", "sub.example.com", true},
		{"example.co.uk", "sub.example.co.uk", true},
		// Anti-phishing: must never match on substring containment.
		{"another-example.com", "example.com", false},
		{"example.com.evil.com", "example.com", false},
		{"evilexample.com", "example.com", false},
		{"", "example.com", false},
	}
	for _, c := range cases {
		if got := domainsMatch(c.a, c.b); got != c.want {
			t.Errorf("domainsMatch(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIsSubdomainOf(t *testing.T) {
	if !isSubdomainOf("sub.example.com", "example.com") {
		t.Error("sub.example.com should be a subdomain of example.com")
	}
	if isSubdomainOf("another-example.com", "example.com") {
		t.Error("another-example.com must not be treated as a subdomain of example.com")
	}
	if isSubdomainOf("example.com", "example.com") {
		t.Error("a domain is not its own subdomain")
	}
}

func TestExtractDomainWithPort(t *testing.T) {
	cases := []struct {
		in         string
		host, port string
	}{
		{"https://dev.local:8080/app", "dev.local", "8080"},
		{"http://example.com:3000", "example.com", "3000"},
		{"https://example.com", "example.com", ""},
		{"https://blabla.asd.com:1234", "blabla.asd.com", "1234"},
	}
	for _, c := range cases {
		got := extractDomainWithPort(c.in)
		if got.Host != c.host {
			t.Errorf("extractDomainWithPort(%q).Host = %q, want %q", c.in, got.Host, c.host)
		}
		if got.Port != c.port {
			t.Errorf("extractDomainWithPort(%q).Port = %q, want %q", c.in, got.Port, c.port)
		}
	}
}

func TestDomainsMatchWithPort(t *testing.T) {
	a := extractDomainWithPort("https://dev.local:8080")
	b := extractDomainWithPort("https://dev.local:9090")

	if domainsMatchWithPort(a, b, false) {
		t.Error("different ports must not match when ignorePort is false")
	}
	if !domainsMatchWithPort(a, b, true) {
		t.Error("same host on different ports must match when ignorePort is true")
	}
}
