package scrape

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newswire"
)

// NormalizeCandidate trims a candidate's fields and resolves its URL to an
// absolute one against the source's base URL. It rejects candidates with an
// empty title, an unresolvable URL, or a URL pointing off-site: the model
// occasionally follows an external link and mislabels it as an article.
// Rejections are per-candidate outcomes; the caller counts them instead of
// failing the source.
func NormalizeCandidate(candidate newswire.Candidate, source *newswire.Source) (newswire.Candidate, error) {
	candidate.Title = strings.TrimSpace(candidate.Title)
	candidate.Summary = strings.TrimSpace(candidate.Summary)
	candidate.URL = strings.TrimSpace(candidate.URL)
	candidate.SourceName = source.Name

	if candidate.Title == "" {
		return candidate, newswire.Errorf(newswire.EINVALID, "candidate title empty")
	}
	if candidate.URL == "" {
		return candidate, newswire.Errorf(newswire.EINVALID, "candidate URL empty")
	}

	base, err := url.Parse(source.BaseURL)
	if err != nil {
		return candidate, newswire.Errorf(newswire.EINVALID, "invalid base URL %q: %v", source.BaseURL, err)
	}

	ref, err := url.Parse(candidate.URL)
	if err != nil {
		return candidate, newswire.Errorf(newswire.EINVALID, "unparseable candidate URL %q: %v", candidate.URL, err)
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = "" // fragments never change the article identity

	if (resolved.Scheme != "http" && resolved.Scheme != "https") || resolved.Host == "" {
		return candidate, newswire.Errorf(newswire.EINVALID, "candidate URL %q did not resolve to absolute http(s)", candidate.URL)
	}

	if !sameSite(base.Hostname(), resolved.Hostname()) {
		return candidate, newswire.Errorf(newswire.EINVALID,
			"candidate URL host %q outside source site %q", resolved.Hostname(), base.Hostname())
	}

	candidate.URL = resolved.String()
	return candidate, nil
}

// sameSite reports whether two hostnames belong to the same site: an exact
// match or a subdomain relationship in either direction (news.example.com
// vs example.com, www.example.com vs example.com).
func sameSite(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return true
	}
	return strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a)
}
