package server

import (
	"net/url"
	"strconv"
	"strings"
)

func manageGamePath(id uint) string {
	return "/games/manage/" + strconv.FormatUint(uint64(id), 10)
}

func challengeGamePath(id uint) string {
	return "/games/challenge/" + strconv.FormatUint(uint64(id), 10)
}

func memberPath(id uint) string {
	return "/members/" + strconv.FormatUint(uint64(id), 10)
}

func loginPath(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// safeNext keeps only local absolute paths so a login cannot redirect
// off-site.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host != "" || parsed.Scheme != "" {
		return ""
	}
	return raw
}
