package ecourts

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"causelist-backend/lib/restyutil"
	"causelist-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://services.ecourts.gov.in/ecourtindia_v6"

// the page whose markup carries the first app_token
const entryPath = "/?p=cause_list/"

// Client scrapes the eCourts district court portal. The portal has no
// published API: every operation emulates the browser's form posts and
// parses the markup or markup-bearing JSON that comes back.
//
// A Client owns a single logical portal session. The anti-automation
// token is shared mutable state, so requests that depend on it must not
// race; callers sharing one Client are expected to serialize their
// requests. Independent Clients are fully isolated.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	mu       sync.Mutex
	appToken string
	warmedUp bool
}

type ClientOptions struct {
	// BaseUrl defaults to the public portal when empty.
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseRaw := opts.BaseUrl
	if baseRaw == "" {
		baseRaw = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(baseRaw)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(baseRaw)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	client.SetHeader("accept", "application/json, text/javascript, */*; q=0.01")
	client.SetHeader("x-requested-with", "XMLHttpRequest")
	client.SetHeader("referer", baseRaw+entryPath)
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/ecourts/http")
	restyutil.InstrumentClient(client, deferredOutput{})

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// ensureReady performs the one-time warm-up exchange against the entry
// page so the session cookie and app_token exist before form posts go
// out. A failed warm-up is not fatal: the first exchange on several
// endpoints is tolerated token-less, so the error is only logged.
func (c *Client) ensureReady(ctx context.Context) {
	c.mu.Lock()
	warmed := c.warmedUp
	c.mu.Unlock()
	if warmed {
		return
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(entryPath)
	if err != nil {
		slog.WarnContext(ctx, "unable to warm up portal session", "url", entryPath, "err", err)
		return
	}

	c.observeMarkup(res.String())
	c.mu.Lock()
	c.warmedUp = true
	c.mu.Unlock()
}

// observeMarkup captures the anti-automation token from a full HTML
// page. Markup only ever seeds the token; once captured, refreshes come
// from JSON payloads via observePayload.
func (c *Client) observeMarkup(markup string) {
	c.mu.Lock()
	have := c.appToken != ""
	c.mu.Unlock()
	if have {
		return
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		slog.Warn("failed to parse portal page for app_token", "err", err)
		return
	}
	token := strings.TrimSpace(doc.Find("input#app_token").AttrOr("value", ""))
	if token == "" {
		return
	}

	c.mu.Lock()
	c.appToken = token
	c.mu.Unlock()
}

// observePayload is the single writer path for token refreshes: when a
// response payload carries app_token, it replaces the stored value
// outright.
func (c *Client) observePayload(payload map[string]any) {
	token, _ := payload["app_token"].(string)
	if token == "" {
		return
	}
	c.mu.Lock()
	c.appToken = token
	c.mu.Unlock()
}

// prepareFormData merges the ajax marker, the current token and the
// caller's fields into the flat form the portal expects. Nil values are
// dropped, everything else is stringified.
func (c *Client) prepareFormData(fields map[string]any) map[string]string {
	data := map[string]string{"ajax_req": "true"}

	c.mu.Lock()
	if c.appToken != "" {
		data["app_token"] = c.appToken
	}
	c.mu.Unlock()

	for key, value := range fields {
		if value == nil {
			continue
		}
		data[key] = fmt.Sprint(value)
	}
	return data
}

// postForm runs the warm-up if needed and posts an ajax form to a
// portal path, returning the raw response text.
func (c *Client) postForm(ctx context.Context, path string, fields map[string]any) (string, error) {
	c.ensureReady(ctx)

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(c.prepareFormData(fields)).
		Post(path)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// resolvePortalURL resolves a reference against the portal root. The
// captcha image and audio live under the root host, not under the
// ecourtindia app sub-path the rest of the scraper talks to.
func (c *Client) resolvePortalURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	root := *c.BaseUrl
	root.Path = ""
	root.RawQuery = ""
	return root.String() + "/" + strings.TrimLeft(ref, "/")
}
