package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type (
	Params struct {
		Method      string
		Path        string
		Body        interface{}
		Response    interface{}
		QueryParams map[string]string
	}

	Client interface {
		Do(ctx context.Context, param Params) error
		Download(ctx context.Context, param Params) (io.ReadCloser, error)
	}

	client struct {
		httpClient  *http.Client
		baseUrl     string
		accessToken string
	}
)

const accessTokenHeader = "X-Access-Token"

func NewClient(host, accessToken string) Client {
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	if !strings.HasSuffix(host, "v1/") {
		host += "v1/"
	}

	return &client{
		httpClient:  &http.Client{},
		baseUrl:     host,
		accessToken: accessToken,
	}
}

func (c client) Do(ctx context.Context, param Params) error {
	req, err := c.newRequest(ctx, param)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(responseBody)
	}

	if param.Response != nil {
		if err := json.Unmarshal(responseBody, &param.Response); err != nil {
			return err
		}
	}
	return nil
}

func (c client) Download(ctx context.Context, param Params) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, param)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, parseError(body)
	}
	return resp.Body, nil
}

func (c client) newRequest(ctx context.Context, param Params) (*http.Request, error) {
	requestUrl, err := url.Parse(c.baseUrl + param.Path)
	if err != nil {
		return nil, err
	}

	if len(param.QueryParams) > 0 {
		values := url.Values{}
		for k, v := range param.QueryParams {
			values.Add(k, v)
		}
		requestUrl.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, param.Method, requestUrl.String(), nil)
	if err != nil {
		return nil, err
	}
	if param.Body != nil {
		bodyBin, err := json.Marshal(param.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBin))
	}

	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(accessTokenHeader, c.accessToken)
	}
	return req, nil
}

func parseError(b []byte) error {
	var errorResponse struct {
		Message string
	}
	if err := json.Unmarshal(b, &errorResponse); err != nil || errorResponse.Message == "" {
		return errors.New("request failed")
	}
	return errors.New(errorResponse.Message)
}
