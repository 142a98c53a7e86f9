// Package credentialmatcher decides which stored credentials a browser
// extension or autofill client should offer for a given page: by app
// package name, by URL domain, or — for credentials that carry no URL at
// all — by a conservative page-title fallback. It never consults a
// database; callers hand it the candidate credentials and the page
// context as JSON, and get back a ranked list of matching ids.
package credentialmatcher

import (
	"encoding/json"
	"strings"

	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// AutofillMatchingMode controls how strictly a URL must match a stored
// credential's service URL before it is offered.
type AutofillMatchingMode string

const (
	// MatchingModeDefault applies the full priority ladder, including
	// root-domain and page-title fallbacks.
	MatchingModeDefault AutofillMatchingMode = "default"
	// MatchingModeURLExact only offers a credential when its domain
	// matches the current page's domain exactly.
	MatchingModeURLExact AutofillMatchingMode = "url_exact"
	// MatchingModeURLSubdomain allows subdomain and root-domain matches
	// but not the page-title or raw-text fallbacks.
	MatchingModeURLSubdomain AutofillMatchingMode = "url_subdomain"
)

// Credential is one stored login a client is asking whether to offer.
type Credential struct {
	ID          string `json:"Id"`
	ServiceName string `json:"ServiceName"`
	ServiceURL  string `json:"ServiceUrl"`
	Username    string `json:"Username"`
}

// CredentialMatcherInput is the full matching request: the candidate
// credentials plus the page context to match them against.
type CredentialMatcherInput struct {
	Credentials  []Credential         `json:"credentials"`
	CurrentURL   string               `json:"current_url"`
	PageTitle    string               `json:"page_title"`
	MatchingMode AutofillMatchingMode `json:"matching_mode"`
	// IgnorePort forces port equality to true during Sub-1/Sub-2 domain
	// matching, so credentials on different ports of the same host are
	// treated as the same service (e.g. several local dev servers).
	IgnorePort bool `json:"ignore_port"`
}

// CredentialMatcherOutput is the ranked result: ids of matching
// credentials and the priority tier that produced the match (0 means no
// match was found).
type CredentialMatcherOutput struct {
	MatchedIDs     []string `json:"matched_ids"`
	MatchedPriority uint32  `json:"matched_priority"`
}

// credentialWithPriority pairs a credential with the tier it matched at,
// so results from different tiers can be merged and sorted consistently.
type credentialWithPriority struct {
	credential Credential
	priority   uint32
}

// FilterCredentials ranks input.Credentials against the page context
// using a four-tier priority ladder:
//
//  1. App package name: an exact match on a package name in ServiceURL
//     or CurrentURL short-circuits every other tier.
//  2. URL domain: exact domain+port match (sub-priority 1) beats a
//     same-domain-other-port, subdomain or shared-root-domain match
//     (sub-priority 2; subdomain and root matches are skipped in
//     url_exact mode); only credentials at the best sub-priority
//     observed are kept, capped at 3.
//  3. Page title / service name fallback, but only for credentials that
//     carry no ServiceURL at all — a credential with a URL is never
//     matched by title, to avoid a phishing page borrowing a legitimate
//     site's title.
//  4. Raw text match between CurrentURL and ServiceName tokens, entered
//     only when CurrentURL is not a package name and domain extraction
//     failed outright (not merely "found no match"). An unmatched
//     package name returns no match.
func FilterCredentials(input CredentialMatcherInput) CredentialMatcherOutput {
	mode := input.MatchingMode
	if mode == "" {
		mode = MatchingModeDefault
	}

	if matches := matchByPackageName(input.Credentials, input.CurrentURL); len(matches) > 0 {
		return rank(matches, 1)
	}
	packageNameAttempted := isAppPackageName(input.CurrentURL)

	currentDomain := extractDomainWithPort(input.CurrentURL)
	domainExtractionFailed := currentDomain.Host == ""

	if !domainExtractionFailed {
		if matches := matchByDomain(input.Credentials, currentDomain, mode, input.IgnorePort); len(matches) > 0 {
			return rankWithPriority(trimTo(matches, 3), 2)
		}

		if mode == MatchingModeDefault {
			if matches := matchByTitle(input.Credentials, input.PageTitle); len(matches) > 0 {
				return rank(matches, 3)
			}
		}
		return CredentialMatcherOutput{MatchedIDs: []string{}, MatchedPriority: 0}
	}

	if mode != MatchingModeDefault {
		return CredentialMatcherOutput{MatchedIDs: []string{}, MatchedPriority: 0}
	}

	if !packageNameAttempted {
		if matches := matchByRawText(input.Credentials, input.CurrentURL); len(matches) > 0 {
			return rank(matches, 4)
		}
	}

	return CredentialMatcherOutput{MatchedIDs: []string{}, MatchedPriority: 0}
}

func matchByPackageName(credentials []Credential, currentURL string) []Credential {
	if !isAppPackageName(currentURL) {
		return nil
	}
	var matches []Credential
	for _, c := range credentials {
		if c.ServiceURL != "" && strings.EqualFold(c.ServiceURL, currentURL) {
			matches = append(matches, c)
		}
	}
	return matches
}

func matchByDomain(credentials []Credential, current DomainWithPort, mode AutofillMatchingMode, ignorePort bool) []credentialWithPriority {
	var withPriority []credentialWithPriority
	seen := map[string]struct{}{}

	for _, c := range credentials {
		if c.ServiceURL == "" {
			continue
		}
		credDomain := extractDomainWithPort(c.ServiceURL)
		if credDomain.Host == "" {
			continue
		}

		var priority uint32
		switch {
		case current.Host == credDomain.Host && domainsMatchWithPort(current, credDomain, ignorePort):
			priority = 1
		case current.Host == credDomain.Host || (mode != MatchingModeURLExact && domainsMatch(current.Host, credDomain.Host)):
			priority = 2
		default:
			continue
		}

		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		withPriority = append(withPriority, credentialWithPriority{credential: c, priority: priority})
	}

	return bestPriorityOnly(withPriority)
}

// bestPriorityOnly keeps only the entries at the minimum observed
// sub-priority: an exact-port match for one credential must not be
// diluted by a root-domain match for another once both are present.
func bestPriorityOnly(matches []credentialWithPriority) []credentialWithPriority {
	if len(matches) == 0 {
		return matches
	}

	best := matches[0].priority
	for _, m := range matches[1:] {
		if m.priority < best {
			best = m.priority
		}
	}

	filtered := matches[:0]
	for _, m := range matches {
		if m.priority == best {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func matchByTitle(credentials []Credential, pageTitle string) []Credential {
	titleWords := extractWords(pageTitle)
	if len(titleWords) == 0 {
		return nil
	}

	var matches []Credential
	for _, c := range credentials {
		if c.ServiceURL != "" {
			continue
		}
		nameWords := extractWords(c.ServiceName)
		if wordsOverlap(titleWords, nameWords) {
			matches = append(matches, c)
		}
	}
	return matches
}

func matchByRawText(credentials []Credential, currentURL string) []Credential {
	urlWords := extractWords(currentURL)
	if len(urlWords) == 0 {
		return nil
	}

	var matches []Credential
	for _, c := range credentials {
		nameWords := extractWords(c.ServiceName)
		if wordsOverlap(urlWords, nameWords) {
			matches = append(matches, c)
		}
	}
	return matches
}

func wordsOverlap(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}
	for _, w := range b {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func rank(matches []Credential, priority uint32) CredentialMatcherOutput {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return CredentialMatcherOutput{MatchedIDs: ids, MatchedPriority: priority}
}

func rankWithPriority(matches []credentialWithPriority, priority uint32) CredentialMatcherOutput {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.credential.ID
	}
	return CredentialMatcherOutput{MatchedIDs: ids, MatchedPriority: priority}
}

func trimTo(matches []credentialWithPriority, max int) []credentialWithPriority {
	if len(matches) > max {
		return matches[:max]
	}
	return matches
}

// extractWords lowercases text, replaces every non-alphanumeric rune
// with a space, and returns the tokens longer than 3 characters that
// are not stop words.
func extractWords(text string) []string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	var words []string
	for _, token := range strings.Fields(b.String()) {
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		words = append(words, token)
	}
	return words
}

// FilterCredentialsJSON is the JSON-in/JSON-out entry point transport
// adapters call.
func FilterCredentialsJSON(inputJSON string) (string, error) {
	var input CredentialMatcherInput
	if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
		return "", protocol.NewJSONError(err)
	}

	output := FilterCredentials(input)
	if output.MatchedIDs == nil {
		output.MatchedIDs = []string{}
	}

	outputJSON, err := json.Marshal(output)
	if err != nil {
		return "", protocol.NewJSONError(err)
	}
	return string(outputJSON), nil
}
