package cache

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// CookieKeyPrefix prefixes the per-host key holding backend cookies, so a
// CLI login survives until the next command.
const CookieKeyPrefix = "cookies:"

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func cookieKey(u *url.URL) string {
	return CookieKeyPrefix + u.Host
}

// SaveCookies writes the cookies jar holds for u. An empty jar clears the
// entry.
func SaveCookies(store Store, jar http.CookieJar, u *url.URL) error {
	cookies := jar.Cookies(u)
	if len(cookies) == 0 {
		return store.Delete(cookieKey(u))
	}
	out := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, storedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}
	return store.Set(cookieKey(u), string(data))
}

// LoadCookies puts the cookies saved for u back into jar.
func LoadCookies(store Store, jar http.CookieJar, u *url.URL) error {
	raw, ok, err := store.Get(cookieKey(u))
	if err != nil || !ok {
		return err
	}
	var saved []storedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return fmt.Errorf("failed to decode cookies: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(u, cookies)
	return nil
}
