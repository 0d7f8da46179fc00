package domain

import (
	"net/url"
	"strings"
)

// Platform identifies the ATS vendor hosting a posting. The set is closed;
// dispatch is a switch, not an interface hierarchy.
type Platform string

const (
	PlatformLever           Platform = "Lever"
	PlatformAshby           Platform = "Ashby"
	PlatformGreenhouse      Platform = "Greenhouse"
	PlatformSmartRecruiters Platform = "SmartRecruiters"
	PlatformUnknown         Platform = ""
)

// PlatformForURL picks the platform from the URL host. Content never decides
// the platform; unsupported hosts are discarded upstream of extraction.
func PlatformForURL(raw string) Platform {
	u, err := url.Parse(raw)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "ashbyhq.com"):
		return PlatformAshby
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "smartrecruiters.com"):
		return PlatformSmartRecruiters
	}
	return PlatformUnknown
}

// JobPosting is the normalized record produced by extraction. SourceURL is
// the sole identity key: two fetches of the same URL are the same posting
// even when every other field differs.
type JobPosting struct {
	Title          string
	Company        string
	Location       string
	Description    string
	SourceURL      string
	CompanyWebsite string
	HREmail        string
	HRName         string
	HRLinkedIn     string
	Platform       Platform
}

// CompanyFromURL derives the company identity from the first path segment
// under the ATS host. ATS URLs follow domain/<company>/<job-id>.
func CompanyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "Unknown"
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "Unknown"
	}
	return parts[0]
}
