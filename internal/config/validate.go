package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything worth
// surfacing before a run starts.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Ashby.Companies = trimList(out.Ashby.Companies)

	if out.Search.MaxResults > 200 {
		res.addWarn("search.max_results is %d; runs will be slow at one fetch per second.", out.Search.MaxResults)
	}
	if out.Pacing.FetchSeconds < 1 {
		res.addWarn("pacing.fetch_seconds below 1 risks rate limiting by the ATS hosts.")
	}
	if len(out.Ashby.Companies) == 0 {
		res.addWarn("ashby.companies is empty; Ashby postings are rarely discoverable via search engines.")
	}

	if out.Notify.Telegram.Enabled {
		if strings.TrimSpace(out.Notify.Telegram.Token) == "" {
			res.addErr("notify.telegram.token (or TELEGRAM_BOT_TOKEN) is required when telegram is enabled")
		}
		if out.Notify.Telegram.ChatID == 0 {
			res.addErr("notify.telegram.chat_id (or TELEGRAM_CHAT_ID) is required when telegram is enabled")
		}
	}

	return out, res
}
