package prime

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/coinbase-samples/prime-sdk-go/client"
	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/coinbase-samples/prime-sdk-go/model"
	"github.com/coinbase-samples/prime-sdk-go/portfolios"
	"github.com/coinbase-samples/prime-sdk-go/transactions"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Portfolio is a Prime portfolio summary
type Portfolio struct {
	Id   string
	Name string
}

// Withdrawal is a submitted Prime wallet withdrawal
type Withdrawal struct {
	ActivityId     string
	Symbol         string
	Amount         string
	Destination    string
	IdempotencyKey string
}

type Service struct {
	client          client.RestClient
	portfoliosSvc   portfolios.PortfoliosService
	transactionsSvc transactions.TransactionsService
}

func NewService(creds *credentials.Credentials) (*Service, error) {
	httpClient, err := createCustomHttpClient()
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}

	restClient := client.NewRestClient(creds, httpClient)

	return &Service{
		client:          restClient,
		portfoliosSvc:   portfolios.NewPortfoliosService(restClient),
		transactionsSvc: transactions.NewTransactionsService(restClient),
	}, nil
}

func createCustomHttpClient() (http.Client, error) {
	tr := &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return http.Client{}, err
	}

	return http.Client{
		Transport: tr,
		Timeout:   60 * time.Second,
	}, nil
}

func (s *Service) FindDefaultPortfolio(ctx context.Context) (*Portfolio, error) {
	response, err := s.portfoliosSvc.ListPortfolios(ctx, &portfolios.ListPortfoliosRequest{})
	if err != nil {
		return nil, fmt.Errorf("unable to list portfolios: %w", err)
	}

	for _, p := range response.Portfolios {
		if p.Name == "Default Portfolio" {
			return &Portfolio{Id: p.Id, Name: p.Name}, nil
		}
	}

	return nil, fmt.Errorf("default portfolio not found")
}

// CreateWithdrawalParams contains parameters for creating a withdrawal
type CreateWithdrawalParams struct {
	PortfolioId        string
	WalletId           string
	DestinationAddress string
	Amount             string
	Asset              string // SYMBOL or SYMBOL-network-type
	IdempotencyKey     string
}

// CreateWithdrawal creates a withdrawal from a wallet
func (s *Service) CreateWithdrawal(ctx context.Context, params CreateWithdrawalParams) (*Withdrawal, error) {
	zap.L().Info("Creating withdrawal via Prime API",
		zap.String("portfolio_id", params.PortfolioId),
		zap.String("wallet_id", params.WalletId),
		zap.String("asset", params.Asset),
		zap.String("amount", params.Amount),
		zap.String("destination", params.DestinationAddress))

	request := withdrawalRequest(params)

	response, err := s.transactionsSvc.CreateWalletWithdrawal(ctx, request)
	if err != nil {
		zap.L().Error("Failed to create withdrawal",
			zap.String("wallet_id", params.WalletId),
			zap.String("amount", params.Amount),
			zap.String("asset", params.Asset),
			zap.Error(err))
		return nil, fmt.Errorf("unable to create withdrawal: %w", err)
	}

	zap.L().Info("Withdrawal created successfully",
		zap.String("activity_id", response.ActivityId),
		zap.String("wallet_id", params.WalletId),
		zap.String("amount", params.Amount),
		zap.String("asset", params.Asset))

	return &Withdrawal{
		ActivityId:     response.ActivityId,
		Symbol:         request.Symbol,
		Amount:         params.Amount,
		Destination:    params.DestinationAddress,
		IdempotencyKey: params.IdempotencyKey,
	}, nil
}

// withdrawalRequest builds the Prime request. An asset such as
// "ATOM-cosmos-mainnet" carries explicit network details; a bare symbol
// lets Prime pick the default network.
func withdrawalRequest(params CreateWithdrawalParams) *transactions.CreateWalletWithdrawalRequest {
	parts := strings.Split(params.Asset, "-")

	blockchainAddr := &model.BlockchainAddress{
		Address: params.DestinationAddress,
	}
	if len(parts) >= 3 {
		blockchainAddr.Network = &model.NetworkDetails{
			Id:   parts[1],
			Type: parts[2],
		}
	}

	return &transactions.CreateWalletWithdrawalRequest{
		PortfolioId:       params.PortfolioId,
		SourceWalletId:    params.WalletId,
		Amount:            params.Amount,
		IdempotencyKey:    params.IdempotencyKey,
		Symbol:            parts[0],
		DestinationType:   "DESTINATION_BLOCKCHAIN",
		BlockchainAddress: blockchainAddr,
	}
}
