package wordstat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/valyala/fasthttp"
	"wordstat-go/pkg/logger"
)

// Transport sends one API call and returns the parsed response envelope.
// param is omitted from the request envelope when nil.
type Transport interface {
	Send(ctx context.Context, method, token string, param any) (any, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, method, token string, param any) (any, error)

func (f TransportFunc) Send(ctx context.Context, method, token string, param any) (any, error) {
	return f(ctx, method, token, param)
}

type requestEnvelope struct {
	Method string `json:"method"`
	Token  string `json:"token"`
	Param  any    `json:"param,omitempty"`
}

// HTTPTransport posts JSON envelopes to a single API URL over fasthttp.
// It holds no per-call state and is safe for concurrent use.
type HTTPTransport struct {
	apiURL  string
	client  *fasthttp.Client
	timeout time.Duration
	log     *logger.Logger
}

// NewHTTPTransport creates a transport for apiURL with the given connection settings
func NewHTTPTransport(apiURL string, config ConnectionConfig) *HTTPTransport {
	config = config.withDefaults()
	return &HTTPTransport{
		apiURL:  apiURL,
		client:  newFastHTTPClient(config),
		timeout: config.RequestTimeout,
		log:     transportLogger(apiURL),
	}
}

// WithURL returns a transport posting to apiURL that shares t's connection
// pool and request timeout
func (t *HTTPTransport) WithURL(apiURL string) *HTTPTransport {
	return &HTTPTransport{
		apiURL:  apiURL,
		client:  t.client,
		timeout: t.timeout,
		log:     transportLogger(apiURL),
	}
}

func transportLogger(apiURL string) *logger.Logger {
	return logger.GetLogger().WithFields(map[string]interface{}{
		"component": "wordstat_transport",
		"endpoint":  logger.MaskAPIEndpoint(apiURL),
	})
}

// Send performs exactly one POST. Anything but HTTP 200 is ErrTransport
// carrying the status code; a 200 body that cannot be read in full or is
// not a single JSON value is ErrMalformedResponse. Cancelling ctx abandons
// the call.
func (t *HTTPTransport) Send(ctx context.Context, method, token string, param any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	body, err := json.Marshal(requestEnvelope{Method: method, Token: token, Param: param})
	if err != nil {
		return nil, &Error{Kind: KindTransport, Reason: "failed to encode request", Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	release := func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}

	req.SetRequestURI(t.apiURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.SetBody(body)

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	done := make(chan error, 1)
	go func() {
		done <- t.client.DoDeadline(req, resp, deadline)
	}()

	select {
	case <-ctx.Done():
		// req and resp still belong to the in-flight call
		go func() {
			<-done
			release()
		}()
		t.log.WithField("method", method).Debug("API call cancelled")
		return nil, &Error{Kind: KindTransport, Err: ctx.Err()}
	case err = <-done:
	}
	defer release()

	if err != nil {
		if bodyReadFailed(resp, err) {
			return nil, &Error{Kind: KindMalformedResponse, Reason: "failed to read response body", Err: err}
		}
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusOK {
		t.log.WithFields(map[string]interface{}{
			"method": method,
			"status": status,
		}).Warn("API returned non-OK status")
		return nil, &Error{Kind: KindTransport, Code: int64(status)}
	}

	// resp.Body is only valid until release; ParseJSON copies what it keeps
	return ParseJSON(resp.Body())
}

// bodyReadFailed reports whether a 200 response arrived but its body could
// not be read in full: cut short by the server or over MaxResponseBodySize.
// Dial errors and timeouts stay transport failures.
func bodyReadFailed(resp *fasthttp.Response, err error) bool {
	if resp.StatusCode() != fasthttp.StatusOK {
		return false
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, fasthttp.ErrBodyTooLarge)
}
