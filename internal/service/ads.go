package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agencyhub/internal/ads_client"
	"agencyhub/internal/crypto"
	"agencyhub/internal/models"
	"agencyhub/internal/repository"

	"go.uber.org/zap"
)

var ErrProviderNotConnected = errors.New("ad provider is not connected")

// AdsService manages per-user ad platform connections. OAuth tokens are
// encrypted before they reach the database and decrypted only for the
// duration of an upstream call.
type AdsService interface {
	Connect(ctx context.Context, userID int64, provider, code, redirectURI string) (*models.AdConnection, error)
	Disconnect(userID int64, provider string) error
	ListAdAccounts(ctx context.Context, userID int64, provider string) ([]ads_client.AdAccount, error)
	ListCampaigns(ctx context.Context, userID int64, provider, accountID string) ([]ads_client.Campaign, error)
}

type adsService struct {
	clients     map[string]*ads_client.Client
	connections repository.AdConnectionRepository
	cipher      *crypto.TokenCipher
	logger      *zap.Logger
}

func NewAdsService(clients map[string]*ads_client.Client, connections repository.AdConnectionRepository,
	cipher *crypto.TokenCipher, logger *zap.Logger) AdsService {
	return &adsService{
		clients:     clients,
		connections: connections,
		cipher:      cipher,
		logger:      logger,
	}
}

func (s *adsService) Connect(ctx context.Context, userID int64, provider, code, redirectURI string) (*models.AdConnection, error) {
	client, err := s.client(provider)
	if err != nil {
		return nil, err
	}

	token, err := client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	encrypted, err := s.cipher.EncryptToken(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	conn := &models.AdConnection{
		UserID:         userID,
		Provider:       provider,
		TokenEncrypted: encrypted,
	}
	if token.ExpiresIn > 0 {
		conn.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	if err := s.connections.Upsert(conn); err != nil {
		return nil, fmt.Errorf("failed to store ad connection: %w", err)
	}

	s.logger.Info("Ad provider connected",
		zap.Int64("user_id", userID),
		zap.String("provider", provider))
	return conn, nil
}

func (s *adsService) Disconnect(userID int64, provider string) error {
	if !models.ValidAdProvider(provider) {
		return fmt.Errorf("unsupported ad provider %q", provider)
	}
	return s.connections.Delete(userID, provider)
}

func (s *adsService) ListAdAccounts(ctx context.Context, userID int64, provider string) ([]ads_client.AdAccount, error) {
	client, accessToken, err := s.authorized(userID, provider)
	if err != nil {
		return nil, err
	}
	return client.ListAdAccounts(ctx, accessToken)
}

func (s *adsService) ListCampaigns(ctx context.Context, userID int64, provider, accountID string) ([]ads_client.Campaign, error) {
	client, accessToken, err := s.authorized(userID, provider)
	if err != nil {
		return nil, err
	}
	return client.ListCampaigns(ctx, accessToken, accountID)
}

// authorized loads the stored connection and decrypts its token.
func (s *adsService) authorized(userID int64, provider string) (*ads_client.Client, string, error) {
	client, err := s.client(provider)
	if err != nil {
		return nil, "", err
	}

	conn, err := s.connections.Get(userID, provider)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load ad connection: %w", err)
	}
	if conn == nil {
		return nil, "", ErrProviderNotConnected
	}

	accessToken, err := s.cipher.DecryptToken(conn.TokenEncrypted)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decrypt access token: %w", err)
	}
	return client, accessToken, nil
}

func (s *adsService) client(provider string) (*ads_client.Client, error) {
	client, ok := s.clients[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported ad provider %q", provider)
	}
	return client, nil
}
