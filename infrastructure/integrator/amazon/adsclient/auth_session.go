package adsclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
)

// margem de segurança antes da expiração para renovar o token
const refreshMargin = 60 * time.Second

// AuthSession gerencia o access token da Amazon Ads API sobre um pool de
// conexões reutilizado. O token é renovado proativamente quando está a menos
// de 60s de expirar; chamadores concorrentes não disparam renovações
// duplicadas (a renovação é serializada pelo mutex e re-verificada dentro
// dele). O token nunca é persistido fora da memória do processo.
type AuthSession struct {
	cfg        *config.Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenType   string
	expiresAt   time.Time
}

func NewAuthSession(cfg *config.Config, httpClient *http.Client) *AuthSession {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &AuthSession{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Headers retorna os cabeçalhos de autenticação, renovando o token antes se
// necessário. É seguro e barato chamar redundantemente. A renovação respeita
// o contexto do chamador: um run com deadline expirado não dispara refresh.
func (s *AuthSession) Headers(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureValidTokenLocked(ctx); err != nil {
		return nil, err
	}

	return map[string]string{
		"Authorization":                     fmt.Sprintf("%s %s", s.tokenType, s.accessToken),
		"Amazon-Advertising-API-ClientId":   s.cfg.Amazon.ClientID,
		"Amazon-Advertising-API-Scope":      s.cfg.Amazon.ProfileID,
		"Content-Type":                      "application/json",
		"Accept":                            "application/json",
	}, nil
}

// ensureValidTokenLocked renova o token se ausente ou a menos de 60s da
// expiração. Deve ser chamado com o mutex adquirido; a re-verificação aqui
// garante que apenas uma renovação aconteça por janela de validade.
func (s *AuthSession) ensureValidTokenLocked(ctx context.Context) error {
	if s.accessToken != "" && time.Until(s.expiresAt) > refreshMargin {
		return nil
	}
	return s.refreshLocked(ctx)
}

func (s *AuthSession) refreshLocked(ctx context.Context) error {
	logrus.Info("Renovando access token da Amazon Ads API")

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", s.cfg.Amazon.RefreshToken)
	form.Set("client_id", s.cfg.Amazon.ClientID)
	form.Set("client_secret", s.cfg.Amazon.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Amazon.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("erro ao criar requisição de token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao chamar endpoint de token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do endpoint de token: %w", err)
	}

	// Um refresh token inválido não se recupera com retry: falha fatal.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
		}).Error("Falha ao renovar access token")
		return fmt.Errorf("%w: status %d", ErrAuthentication, resp.StatusCode)
	}

	var token amazondomain.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("%w: resposta de token inválida: %v", ErrAuthentication, err)
	}

	if token.AccessToken == "" {
		return fmt.Errorf("%w: resposta sem access_token", ErrAuthentication)
	}

	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	if token.ExpiresIn <= 0 {
		token.ExpiresIn = 3600
	}

	s.accessToken = token.AccessToken
	s.tokenType = token.TokenType
	s.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	logrus.WithField("expires_at", s.expiresAt.Format(time.RFC3339)).
		Info("Access token renovado com sucesso")

	return nil
}
