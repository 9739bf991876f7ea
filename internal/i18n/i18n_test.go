package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url    string
		header string
		want   string
	}{
		{url: "/", want: LocaleEN},
		{url: "/?lang=zh-CN", want: LocaleZH},
		{url: "/", header: "zh-TW,zh;q=0.9", want: LocaleTW},
		{url: "/?lang=en", header: "zh-CN", want: LocaleEN},
		{url: "/", header: "en;q=0.1, zh-CN;q=0.9", want: LocaleZH},
		{url: "/", header: "fr-FR, zh-HK;q=0.5", want: LocaleTW},
		{url: "/", header: "de, fr;q=0.8", want: LocaleEN},
		{url: "/", header: ";;;", want: LocaleEN},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("ResolveLocale(%s, %s) = %s, want %s", tc.url, tc.header, got, tc.want)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":        LocaleEN,
		"zh-CN":   LocaleZH,
		"zh":      LocaleZH,
		"zh-Hant": LocaleTW,
		"zh-TW":   LocaleTW,
		"en-GB":   LocaleEN,
		"ja":      LocaleEN,
		"%%bad":   LocaleEN,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleTW, "error.refresh_token_missing"); got != messages[LocaleEN]["error.refresh_token_missing"] {
		t.Fatalf("expected english fallback, got %s", got)
	}
	if got := T(LocaleZH, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("expected key fallback, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}
