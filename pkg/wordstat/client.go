// Package wordstat is a typed client for the Wordstat keyword statistics
// methods of the Yandex Direct JSON API.
package wordstat

import (
	"context"
	"time"

	"wordstat-go/pkg/logger"
)

// API endpoints. Version 4 of the JSON API serves the Wordstat methods;
// sandbox tokens only work against SandboxURL.
const (
	ProductionURL = "https://api.direct.yandex.ru/v4/json/"
	SandboxURL    = "https://api-sandbox.direct.yandex.ru/v4/json/"
)

// Method names understood by the service
const (
	MethodGetRegions    = "GetRegions"
	MethodGetReportList = "GetWordstatReportList"
	MethodCreateReport  = "CreateNewWordstatReport"
	MethodGetReport     = "GetWordstatReport"
	MethodDeleteReport  = "DeleteWordstatReport"
)

// Client calls the Wordstat methods of the API. Every method makes exactly
// one request and never retries, polls or caches; the service keeps at most
// five reports, so callers should delete a report once it is downloaded.
type Client struct {
	token     string
	transport Transport
	log       *logger.Logger
}

// NewClient creates a client talking to apiURL over HTTP
func NewClient(token, apiURL string) *Client {
	return NewClientWithTransport(token, NewHTTPTransport(apiURL, DefaultConnectionConfig()))
}

// NewClientWithTransport creates a client on top of any Transport
func NewClientWithTransport(token string, transport Transport) *Client {
	return &Client{
		token:     token,
		transport: transport,
		log: logger.GetLogger().WithFields(map[string]interface{}{
			"component": "wordstat_client",
			"token":     logger.MaskToken(token),
		}),
	}
}

// WithToken returns a copy of c that authenticates with token
func (c *Client) WithToken(token string) *Client {
	return NewClientWithTransport(token, c.transport)
}

// WithURL returns a copy of c that calls apiURL, for example to switch
// between ProductionURL and SandboxURL. An HTTPTransport keeps its
// connection settings; any other Transport is replaced by an HTTPTransport
// with DefaultConnectionConfig.
func (c *Client) WithURL(apiURL string) *Client {
	if t, ok := c.transport.(*HTTPTransport); ok {
		return NewClientWithTransport(c.token, t.WithURL(apiURL))
	}
	return NewClient(c.token, apiURL)
}

// call runs one round trip and the status check shared by every method
func (c *Client) call(ctx context.Context, method string, param any) (any, error) {
	start := time.Now()
	envelope, err := c.transport.Send(ctx, method, c.token, param)
	if err == nil {
		err = CheckStatus(envelope)
	}

	log := c.log.WithFields(map[string]interface{}{
		"method":      method,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Warn("API call failed")
		return nil, err
	}
	log.Debug("API call completed")
	return envelope, nil
}

// GetRegions lists the regions that can be used in a ReportRequest
func (c *Client) GetRegions(ctx context.Context) ([]Region, error) {
	envelope, err := c.call(ctx, MethodGetRegions, nil)
	if err != nil {
		return nil, err
	}
	return DecodeRegions(envelope)
}

// GetReportList returns the status of every report stored for the account
func (c *Client) GetReportList(ctx context.Context) ([]ReportStatus, error) {
	envelope, err := c.call(ctx, MethodGetReportList, nil)
	if err != nil {
		return nil, err
	}
	return DecodeReportStatuses(envelope)
}

// CreateReport starts generating a report and returns its id
func (c *Client) CreateReport(ctx context.Context, request ReportRequest) (int64, error) {
	envelope, err := c.call(ctx, MethodCreateReport, request)
	if err != nil {
		return 0, err
	}
	return DecodeReportID(envelope)
}

// GetReport downloads a finished report, one entry per requested phrase.
// A report that is still being generated yields ErrReportNotReady.
func (c *Client) GetReport(ctx context.Context, reportID int64) ([]ReportEntry, error) {
	envelope, err := c.call(ctx, MethodGetReport, reportID)
	if err != nil {
		return nil, err
	}
	return DecodeReportEntries(envelope)
}

// DeleteReport removes a report from the server
func (c *Client) DeleteReport(ctx context.Context, reportID int64) error {
	envelope, err := c.call(ctx, MethodDeleteReport, reportID)
	if err != nil {
		return err
	}
	return DecodeDeleteResult(envelope)
}
