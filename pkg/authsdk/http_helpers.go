package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// endpoint builds a complete auth endpoint URL.
func (c *AuthClient) endpoint(path string) string {
	return c.apiURL + "/auth/v1/" + path
}

// doJSON performs one exchange against an auth endpoint: it sends reqBody as
// JSON (or an empty body when nil) with apikey and bearer credentials,
// classifies the response status, and on success decodes the body into out
// (skipped when out is nil).
//
// The response body is always read in full, even for failure statuses, so
// the service's error payload can be logged; classification never depends
// on it. Errors map to the taxonomy: ErrHTTP for transport failures, the
// classified error for non-2xx statuses, ErrInternal for a payload that
// fails to decode on a success status.
func (c *AuthClient) doJSON(ctx context.Context, method, url, apiKey, bearer string, reqBody, out any) error {
	var body io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			c.logger.Error("encode request body", "err", err)
			return ErrInternal
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		c.logger.Error("create request", "err", err)
		return ErrHTTP
	}
	req.Header.Set("apiKey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("send request", "method", method, "url", url, "err", err)
		return ErrHTTP
	}
	defer resp.Body.Close()

	statusErr := classifyStatus(resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("read response body", "err", err)
		return ErrHTTP
	}
	c.logger.Debug("auth response",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"body", string(respBody),
	)

	if statusErr != nil {
		c.logServiceError(resp.StatusCode, respBody)
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("decode response body", "status", resp.StatusCode, "err", err)
		return ErrInternal
	}
	return nil
}

// logServiceError decodes the service's error payload for diagnostics.
func (c *AuthClient) logServiceError(status int, body []byte) {
	var svcErr ServiceErrorResponse
	if err := json.Unmarshal(body, &svcErr); err != nil || svcErr.Message() == "" {
		c.logger.Debug("non-success response status from auth service", "status", status)
		return
	}
	c.logger.Debug("non-success response status from auth service",
		"status", status,
		"message", svcErr.Message(),
	)
}
