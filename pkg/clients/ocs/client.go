// Package ocs is a client for the Nextcloud OCS user provisioning API. The
// API is REST-over-HTTP but reports success and failure as numeric codes
// inside an XML envelope; this package decodes the envelope and translates
// the codes so callers only ever see a uniform (payload, Status) pair.
package ocs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/samber/oops"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/config"
	"github.com/Mase3206/nextcloud-scim-connector/pkg/utils/errs"
	"github.com/Mase3206/nextcloud-scim-connector/pkg/utils/tlsconfig"
)

const (
	// cloudBasePath is the OCS provisioning API prefix on any instance.
	cloudBasePath = "/ocs/v1.php/cloud"

	// headerAPIRequest must be sent on every call or the API answers with
	// an HTML login page instead of the XML envelope.
	headerAPIRequest = "OCS-APIRequest"
)

var (
	errOCS = oops.In("ocs client")

	ErrUsername  = errors.New("failed to load the provisioning username")
	ErrSecret    = errors.New("failed to load the provisioning secret")
	ErrTransport = errors.New("provisioning API unreachable")
)

// Client issues provisioning calls against one Nextcloud instance.
// It is safe for concurrent use; it holds no mutable state.
type Client struct {
	logger     hclog.Logger
	httpClient *http.Client
	baseURL    string

	username string
	secret   string
}

func NewClient(cfg *config.Config, logger hclog.Logger) (*Client, error) {
	username, err := commoncfg.LoadValueFromSourceRef(cfg.Nextcloud.Username)
	if err != nil {
		return nil, errs.Wrap(ErrUsername, err)
	}

	secret, err := commoncfg.LoadValueFromSourceRef(cfg.Nextcloud.Secret)
	if err != nil {
		return nil, errs.Wrap(ErrSecret, err)
	}

	scheme := "http"
	if cfg.Nextcloud.HTTPS {
		scheme = "https"
	}

	httpClient := &http.Client{}

	if cfg.Nextcloud.CAFile != "" {
		tlsCfg, err := tlsconfig.NewTLSConfig(tlsconfig.WithCA(cfg.Nextcloud.CAFile))
		if err != nil {
			return nil, errOCS.Wrapf(err, "failed to build TLS config")
		}

		httpClient.Transport = &http.Transport{TLSClientConfig: tlsCfg}
	}

	return &Client{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    scheme + "://" + strings.TrimRight(cfg.Nextcloud.BaseURL, "/") + cloudBasePath,
		username:   string(username),
		secret:     string(secret),
	}, nil
}

// call performs one provisioning request and translates its envelope with
// the operation's own code table. The returned error covers transport and
// decode failures only; a backend-level failure comes back as a non-OK
// Status with a nil error.
func (c *Client) call(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	form url.Values,
	codes statusTable,
) (*Envelope, Status, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, Status{}, errOCS.Wrapf(err, "failed to create request")
	}

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set(headerAPIRequest, "true")
	req.SetBasicAuth(c.username, c.secret)

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Status{}, errs.Wrap(ErrTransport, err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			c.logger.Error("failed to close response body", "path", path, "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, Status{}, errs.Wrapf(ErrTransport, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Status{}, errs.Wrap(ErrTransport, err)
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, Status{}, err
	}

	status := codes.translate(env.StatusCode())
	c.logger.Debug("ocs call", "method", method, "path", path, "statuscode", status.Code)

	return env, status, nil
}
