package config

import "strings"

// AllowList is the fixed set of administrator emails. It is consulted only
// when an account is created; changing it requires a redeploy.
type AllowList map[string]struct{}

func ParseAllowList(raw string) AllowList {
	res := make(AllowList)
	for _, p := range strings.Split(raw, ",") {
		email := normalizeEmail(p)
		if email == "" {
			continue
		}
		res[email] = struct{}{}
	}
	return res
}

func (a AllowList) Contains(email string) bool {
	_, ok := a[normalizeEmail(email)]
	return ok
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
