package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"reading-log-server/config"
	"reading-log-server/internal/util"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GooglePayload : проверенные данные из ID токена провайдера
type GooglePayload struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

// GoogleVerifier проверяет ID токен через tokeninfo endpoint Google
type GoogleVerifier struct {
	clientID string
	client   *http.Client
	endpoint string
}

func NewGoogleVerifier(cfg *config.GoogleConfig) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: cfg.ClientID,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: tokenInfoURL,
	}
}

// NewGoogleVerifierWithEndpoint нужен тестам, чтобы подменить endpoint
func NewGoogleVerifierWithEndpoint(cfg *config.GoogleConfig, endpoint string) *GoogleVerifier {
	verifier := NewGoogleVerifier(cfg)
	verifier.endpoint = endpoint
	return verifier
}

// VerifyIDToken отдает credential на проверку Google и сверяет audience.
// Детали отказа провайдера наружу не уходят, наверх поднимается
// одна и та же ошибка "невалидный credential"
func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, credential string) (*GooglePayload, error) {
	reqURL := fmt.Sprintf("%s?id_token=%s", v.endpoint, url.QueryEscape(credential))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, util.LogError("[GoogleVerifier] ошибка создания запроса", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, util.LogError("[GoogleVerifier] невалидный credential", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.LogError("[GoogleVerifier] невалидный credential",
			fmt.Errorf("tokeninfo вернул статус %d", resp.StatusCode))
	}

	var payload GooglePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, util.LogError("[GoogleVerifier] невалидный credential", err)
	}

	if payload.Aud != v.clientID {
		return nil, util.LogError("[GoogleVerifier] невалидный credential",
			fmt.Errorf("audience не совпадает с client id"))
	}

	if payload.Email == "" || payload.Name == "" {
		return nil, util.LogError("[GoogleVerifier] невалидный credential",
			fmt.Errorf("в payload нет email или имени"))
	}

	return &payload, nil
}
