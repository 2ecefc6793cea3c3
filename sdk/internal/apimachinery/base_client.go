package apimachinery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zerofinance/xwallet-console/sdk/locale"
	"github.com/zerofinance/xwallet-console/sdk/meta"
	"go.uber.org/zap"
)

// Credentials supplies the bearer credential for outbound requests and is
// told when the server rejects it. *session.Store satisfies this interface.
type Credentials interface {
	// Credential returns the current token (possibly empty) and the
	// generation of the session it belongs to.
	Credential() (string, uint64)
	// Teardown clears the session of the given generation and returns true
	// only the first time that generation is torn down.
	Teardown(generation uint64) bool
}

// BaseClient executes requests against the xwallet backend on behalf of the
// specialized API clients.
type BaseClient struct {
	APIAddress  string
	Credentials Credentials
	HTTPClient  *http.Client
	// Locales determines the login route navigated to after a 401.
	Locales locale.Config
	// Location returns the console path the caller is currently on. The
	// locale of the login route is parsed from it.
	Location func() string
	// Navigator, if non-nil, is sent to the login route after a 401.
	Navigator locale.Navigator
	Logger    *zap.Logger
}

// ExecuteRequest submits req and unmarshals the response into req.RespObj.
func (b *BaseClient) ExecuteRequest(
	ctx context.Context,
	req OutboundRequest,
) error {
	resp, err := b.SubmitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.RespObj == nil && !req.Envelope {
		return nil
	}
	respBodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "error reading response body")
	}
	if !req.Envelope {
		if err := json.Unmarshal(respBodyBytes, req.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
		return nil
	}
	result := meta.Result{}
	if err := json.Unmarshal(respBodyBytes, &result); err != nil {
		return errors.Wrap(err, "error unmarshaling response envelope")
	}
	if !result.OK() {
		return &meta.ErrRequestFailed{
			StatusCode: result.Code,
			Message:    messageOrDefault(result.Message, ""),
		}
	}
	if req.RespObj == nil || len(result.Data) == 0 ||
		string(result.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(result.Data, req.RespObj); err != nil {
		return errors.Wrap(err, "error unmarshaling response data")
	}
	return nil
}

// SubmitRequest submits req and returns the raw response, which the caller
// must close. Any non-success status is converted to an error; a 401
// additionally tears down the local session and navigates to the login route
// before the error is returned.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	req OutboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.ReqBodyObj != nil {
		switch rb := req.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.Method,
		fmt.Sprintf(
			"%s/%s",
			strings.TrimSuffix(b.APIAddress, "/"),
			strings.TrimPrefix(req.Path, "/"),
		),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.Method,
			req.Path,
		)
	}
	if len(req.QueryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	requestID := uuid.New().String()
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	r.Header.Set("X-Request-Id", requestID)
	for k, v := range req.Headers {
		r.Header.Add(k, v)
	}
	// The credential is read now, not when the client was constructed, so
	// that every request carries whatever session is current.
	token, generation := b.credential()
	if token != "" {
		r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	logger := b.logger().With(
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("requestID", requestID),
	)
	resp, err := b.httpClient().Do(r)
	if err != nil {
		logger.Debug("no response from API server", zap.Error(err))
		return nil, meta.NewErrNetwork(err)
	}
	logger.Debug("received API response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized {
		reason := readErrorMessage(resp)
		b.unauthorized(logger, generation)
		return nil, &meta.ErrUnauthorized{Reason: reason}
	}

	if (req.SuccessCode == 0 &&
		(resp.StatusCode < 200 || resp.StatusCode > 299)) ||
		(req.SuccessCode != 0 && resp.StatusCode != req.SuccessCode) {
		return nil, &meta.ErrRequestFailed{
			StatusCode: resp.StatusCode,
			Message: messageOrDefault(
				readErrorMessage(resp),
				http.StatusText(resp.StatusCode),
			),
		}
	}
	return resp, nil
}

// unauthorized tears down the session whose credential was rejected and, the
// first time that session is torn down, navigates to the login route.
func (b *BaseClient) unauthorized(logger *zap.Logger, generation uint64) {
	first := true
	if b.Credentials != nil {
		first = b.Credentials.Teardown(generation)
	}
	if !first || b.Navigator == nil {
		logger.Debug("session torn down after unauthorized response")
		return
	}
	var path string
	if b.Location != nil {
		path = b.Location()
	}
	route := b.Locales.LoginRoute(path)
	logger.Info(
		"session torn down after unauthorized response; navigating to login",
		zap.String("route", route),
	)
	b.Navigator.Navigate(route)
}

func (b *BaseClient) credential() (string, uint64) {
	if b.Credentials == nil {
		return "", 0
	}
	return b.Credentials.Credential()
}

func (b *BaseClient) httpClient() *http.Client {
	if b.HTTPClient == nil {
		return http.DefaultClient
	}
	return b.HTTPClient
}

func (b *BaseClient) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// readErrorMessage extracts the human-readable message from an error
// response body and closes it. It returns an empty string if the body holds
// no message.
func readErrorMessage(resp *http.Response) string {
	defer resp.Body.Close()
	bodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	body := struct {
		Message string `json:"message"`
		ErrMsg  string `json:"errmsg"`
	}{}
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.ErrMsg
}

func messageOrDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	if fallback != "" {
		return fallback
	}
	return "request failed"
}
