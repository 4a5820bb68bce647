package pcf

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kcyang/pcf/date"
)

// DefaultBaseURL is the EZMoney PCF export endpoint.
const DefaultBaseURL = "https://www.ezmoney.com.tw/ETF/Transaction/PCFExcelNPOI"

// defaultReferer accompanies every request; the endpoint serves error
// pages to requests that do not look like they come from the site.
const defaultReferer = "https://www.ezmoney.com.tw/"

// userAgent mimics a desktop browser for the same reason.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// minWorkbookSize is the smallest plausible workbook body. Anything
// below it is an HTML error page served in place of the file.
const minWorkbookSize = 1000

// maxBackwardAttempts bounds the search for the nearest prior business
// day with a retrievable file.
const maxBackwardAttempts = 10

// ErrNoPriorData reports that no prior business day within the search
// window had a retrievable PCF file.
var ErrNoPriorData = errors.New("no prior business day with PCF data within search window")

// Client retrieves PCF workbooks from the EZMoney endpoint.
type Client struct {
	BaseURL string
	Referer string

	hc  *http.Client
	log *logrus.Logger
}

// NewClient returns a client for the given endpoint. An empty baseURL
// selects DefaultBaseURL; a nil logger selects the standard one.
//
// TLS certificate verification is disabled: the endpoint has served
// certificates that fail chain validation, and the tool would be
// useless against it otherwise. The exception is logged at
// construction so the operator is aware of it.
func NewClient(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithField("url", baseURL).Warn("TLS certificate verification is disabled for the PCF endpoint")
	return &Client{
		BaseURL: baseURL,
		Referer: defaultReferer,
		hc: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		log: log,
	}
}

// Fetch downloads the PCF workbook for one fund on one date. A
// transport error, a non-2xx status, or a body smaller than
// minWorkbookSize bytes all count as failure.
func (c *Client) Fetch(fundCode string, on date.Date) ([]byte, error) {
	q := url.Values{}
	q.Set("fundCode", fundCode)
	q.Set("date", on.ROC())
	q.Set("specificDate", "true")
	addr := c.BaseURL + "?" + q.Encode()

	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, application/vnd.ms-excel, */*")
	req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9,en;q=0.8")
	req.Header.Set("Referer", c.Referer)

	entry := c.log.WithFields(logrus.Fields{"fund": fundCode, "date": on.String(), "url": addr})
	entry.Info("fetching PCF workbook")

	resp, err := c.hc.Do(req)
	if err != nil {
		entry.WithError(err).Warn("fetch failed")
		return nil, fmt.Errorf("cannot GET PCF for %s on %s: %w", fundCode, on, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		entry.WithField("status", resp.Status).Warn("fetch failed")
		return nil, fmt.Errorf("cannot GET PCF for %s on %s: %s", fundCode, on, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Warn("fetch failed")
		return nil, fmt.Errorf("cannot read PCF body for %s on %s: %w", fundCode, on, err)
	}
	if len(body) < minWorkbookSize {
		entry.WithField("size", len(body)).Warn("response too small to be a workbook")
		return nil, fmt.Errorf("PCF response for %s on %s is %d bytes, not a workbook", fundCode, on, len(body))
	}
	entry.WithField("size", len(body)).Info("fetched PCF workbook")
	return body, nil
}

// FetchPreviousAvailable walks backward through business days starting
// the day before from, attempting at most maxBackwardAttempts fetches,
// and returns the first body that succeeds together with its date.
// Each candidate is derived from the previous one, so the walk is
// strictly backward and never revisits a day. Exhaustion wraps
// ErrNoPriorData.
func (c *Client) FetchPreviousAvailable(fundCode string, from date.Date) ([]byte, date.Date, error) {
	on := from
	for attempt := 1; attempt <= maxBackwardAttempts; attempt++ {
		on = on.PreviousBusinessDay()
		c.log.WithFields(logrus.Fields{"fund": fundCode, "date": on.String(), "attempt": attempt}).
			Info("trying prior business day")
		raw, err := c.Fetch(fundCode, on)
		if err == nil {
			return raw, on, nil
		}
	}
	return nil, date.Date{}, fmt.Errorf("tried %d business days before %s: %w", maxBackwardAttempts, from, ErrNoPriorData)
}
