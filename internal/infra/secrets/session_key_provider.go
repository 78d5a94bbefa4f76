// internal/infra/secrets/session_key_provider.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var (
	ErrSessionKeyNotConfigured = errors.New("session_key_provider: not configured")
	ErrSessionKeyNotFound      = errors.New("session_key_provider: secret not found")
)

// SessionKeyProvider resolves the HMAC key used to sign session cookies.
//
// Resolution order:
// 1. explicit key (SESSION_SECRET) — no Secret Manager call
// 2. Secret Manager: projects/{project}/secrets/{secretName}/versions/latest
type SessionKeyProvider struct {
	Client     *secretmanager.Client
	ProjectID  string
	SecretName string

	// 環境変数で直接指定された鍵（あれば最優先）
	explicit string
}

func NewSessionKeyProvider(ctx context.Context, projectID, secretName, explicitKey string) (*SessionKeyProvider, error) {
	if k := strings.TrimSpace(explicitKey); k != "" {
		// Secret Manager クライアントは不要
		return &SessionKeyProvider{explicit: k}, nil
	}

	pid := strings.TrimSpace(projectID)
	if pid == "" {
		pid = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
	}
	if pid == "" {
		return nil, fmt.Errorf("%w: projectID is empty", ErrSessionKeyNotConfigured)
	}

	name := strings.TrimSpace(secretName)
	if name == "" {
		return nil, fmt.Errorf("%w: secretName is empty", ErrSessionKeyNotConfigured)
	}

	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &SessionKeyProvider{
		Client:     c,
		ProjectID:  pid,
		SecretName: name,
	}, nil
}

// GetKey returns the signing key bytes.
func (p *SessionKeyProvider) GetKey(ctx context.Context) ([]byte, error) {
	if p == nil {
		return nil, ErrSessionKeyNotConfigured
	}
	if p.explicit != "" {
		return []byte(p.explicit), nil
	}
	if p.Client == nil {
		return nil, ErrSessionKeyNotConfigured
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.ProjectID, p.SecretName)

	res, err := p.Client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionKeyNotFound, err)
	}
	if res == nil || res.Payload == nil || len(res.Payload.Data) == 0 {
		return nil, ErrSessionKeyNotFound
	}

	return res.Payload.Data, nil
}

// Close closes the underlying Secret Manager client (if any).
func (p *SessionKeyProvider) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
