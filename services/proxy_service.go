// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package services holds the business logic between the HTTP controllers
// and the Ethos client.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wso2/ethos-integration-service/clients/ethossvc"
	"github.com/wso2/ethos-integration-service/clients/requests"
	"github.com/wso2/ethos-integration-service/config"
	"github.com/wso2/ethos-integration-service/middleware"
	"github.com/wso2/ethos-integration-service/middleware/logger"
	"github.com/wso2/ethos-integration-service/models"
	"github.com/wso2/ethos-integration-service/repositories"
	"github.com/wso2/ethos-integration-service/utils"
)

// GetResourceParams describes a proxied GET request
type GetResourceParams struct {
	APIKey       string
	RootOverride string
	Resource     string
	ID           string
	Criteria     string
	Offset       string
	Limit        string
}

// CreateResourceParams describes a proxied POST request
type CreateResourceParams struct {
	APIKey       string
	RootOverride string
	Resource     string
	Data         any
}

// ProxyService exposes the provider operations behind the proxy API
type ProxyService interface {
	ResolveToken(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error)
	GetResource(ctx context.Context, params GetResourceParams) (*models.ResourceResponse, error)
	CreateResource(ctx context.Context, params CreateResourceParams) (*models.ResourceResponse, error)
	GraphQL(ctx context.Context, req models.GraphQLRequest) (*models.GraphQLResponse, error)
}

type proxyService struct {
	ethosClient *ethossvc.Client
	sessions    *SessionStore
	callRecords repositories.CallRecordRepository
	allowlist   *config.ResourceAllowlist
}

// NewProxyService creates the proxy service
func NewProxyService(
	ethosClient *ethossvc.Client,
	sessions *SessionStore,
	callRecords repositories.CallRecordRepository,
	allowlist *config.ResourceAllowlist,
) ProxyService {
	return &proxyService{
		ethosClient: ethosClient,
		sessions:    sessions,
		callRecords: callRecords,
		allowlist:   allowlist,
	}
}

// ResolveToken exchanges an API key for a provider bearer token, reusing
// the per-key session so unexpired tokens are served from cache.
func (s *proxyService) ResolveToken(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error) {
	if req.APIKey == "" {
		return nil, fmt.Errorf("%w: apiKey is required", utils.ErrBadRequest)
	}

	fingerprint := utils.FingerprintAPIKey(req.APIKey)
	session := s.sessions.Get(fingerprint)

	start := time.Now()
	_, token, err := s.ethosClient.GetToken(ctx, ethossvc.TokenParams{
		APIKey:       req.APIKey,
		Session:      session,
		RootOverride: req.RootOverride,
	})
	s.audit(ctx, fingerprint, models.OperationToken, "", start, err)
	if err != nil {
		return nil, mapTokenError(err)
	}

	resp := &models.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
	}
	if cached, ok := session.TokensByAPIKey[req.APIKey]; ok {
		resp.ExpiresAt = cached.ExpiresAt.Unix()
	}
	return resp, nil
}

// GetResource proxies a GET for one resource or collection. Provider
// failures are surfaced in the response's Error field, matching the
// containment behavior of the underlying client.
func (s *proxyService) GetResource(ctx context.Context, params GetResourceParams) (*models.ResourceResponse, error) {
	if err := s.checkResource(params.Resource); err != nil {
		return nil, err
	}

	fingerprint := utils.FingerprintAPIKey(params.APIKey)
	session := s.sessions.Get(fingerprint)

	searchParams := make(map[string]any)
	if params.Criteria != "" {
		searchParams["criteria"] = params.Criteria
	}
	if params.Offset != "" {
		searchParams["offset"] = params.Offset
	}
	if params.Limit != "" {
		searchParams["limit"] = params.Limit
	}

	start := time.Now()
	result, err := s.ethosClient.Get(ctx, ethossvc.GetParams{
		TokenParams: ethossvc.TokenParams{
			APIKey:       params.APIKey,
			Session:      session,
			RootOverride: params.RootOverride,
		},
		Resource:     params.Resource,
		ID:           params.ID,
		SearchParams: searchParams,
	})
	if err != nil {
		s.audit(ctx, fingerprint, models.OperationGet, params.Resource, start, err)
		return nil, mapTokenError(err)
	}
	s.audit(ctx, fingerprint, models.OperationGet, params.Resource, start, result.Err)

	resp := &models.ResourceResponse{Counts: sessionCounts(session)}
	if result.Err != nil {
		resp.Error = result.Err.Error()
		resp.ProviderStatus = providerStatus(result.Err)
	} else {
		resp.Data = result.Data
	}
	return resp, nil
}

// CreateResource proxies a POST creating a provider resource
func (s *proxyService) CreateResource(ctx context.Context, params CreateResourceParams) (*models.ResourceResponse, error) {
	if err := s.checkResource(params.Resource); err != nil {
		return nil, err
	}

	fingerprint := utils.FingerprintAPIKey(params.APIKey)
	session := s.sessions.Get(fingerprint)

	start := time.Now()
	result, err := s.ethosClient.Post(ctx, ethossvc.PostParams{
		TokenParams: ethossvc.TokenParams{
			APIKey:       params.APIKey,
			Session:      session,
			RootOverride: params.RootOverride,
		},
		Resource: params.Resource,
		Data:     params.Data,
	})
	if err != nil {
		s.audit(ctx, fingerprint, models.OperationPost, params.Resource, start, err)
		return nil, mapTokenError(err)
	}
	s.audit(ctx, fingerprint, models.OperationPost, params.Resource, start, result.Err)

	resp := &models.ResourceResponse{Counts: sessionCounts(session)}
	if result.Err != nil {
		resp.Error = result.Err.Error()
		resp.ProviderStatus = providerStatus(result.Err)
	} else {
		resp.Data = result.Data
	}
	return resp, nil
}

// GraphQL proxies a GraphQL query. Provider failures propagate as errors,
// matching the client's behavior for this operation.
func (s *proxyService) GraphQL(ctx context.Context, req models.GraphQLRequest) (*models.GraphQLResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("%w: query is required", utils.ErrBadRequest)
	}

	fingerprint := utils.FingerprintAPIKey(req.APIKey)
	session := s.sessions.Get(fingerprint)

	start := time.Now()
	result, err := s.ethosClient.GraphQL(ctx, ethossvc.GraphQLParams{
		TokenParams: ethossvc.TokenParams{
			APIKey:       req.APIKey,
			Session:      session,
			RootOverride: req.RootOverride,
		},
		Query:     req.Query,
		Variables: req.Variables,
	})
	s.audit(ctx, fingerprint, models.OperationGraphQL, "", start, err)
	if err != nil {
		return nil, mapTokenError(err)
	}

	return &models.GraphQLResponse{
		Data:   result.Data,
		Errors: result.Errors,
		Counts: sessionCounts(session),
	}, nil
}

func (s *proxyService) checkResource(resource string) error {
	if err := utils.ValidateResourceName(resource); err != nil {
		return err
	}
	if !s.allowlist.Allows(resource) {
		return fmt.Errorf("%w: %s", utils.ErrResourceNotAllowed, resource)
	}
	return nil
}

// audit records the call outcome. Audit writes are best effort; a failed
// insert never fails the proxied call.
func (s *proxyService) audit(ctx context.Context, fingerprint, operation, resource string, start time.Time, callErr error) {
	record := &models.CallRecord{
		APIKeyFingerprint: fingerprint,
		Operation:         operation,
		Resource:          resource,
		ProviderStatus:    providerStatus(callErr),
		Succeeded:         callErr == nil,
		DurationMs:        time.Since(start).Milliseconds(),
		CorrelationID:     middleware.GetCorrelationID(ctx),
	}
	if err := s.callRecords.Create(record); err != nil {
		logger.GetLogger(ctx).Error("failed to write call record",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
}

// providerStatus extracts the provider HTTP status from a call error, if
// the error carries one. Successful calls are recorded as 200.
func providerStatus(callErr error) int {
	if callErr == nil {
		return 200
	}
	var authErr *ethossvc.AuthenticationError
	if errors.As(callErr, &authErr) {
		return authErr.StatusCode
	}
	var intErr *ethossvc.IntegrationError
	if errors.As(callErr, &intErr) {
		return intErr.StatusCode
	}
	var httpErr *requests.HttpError
	if errors.As(callErr, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func sessionCounts(session *ethossvc.Session) models.SessionCounts {
	return models.SessionCounts{
		Get:     session.GetCount,
		Post:    session.PostCount,
		GraphQL: session.GraphQLCount,
	}
}

// mapTokenError converts client sentinel errors into the service error
// taxonomy so controllers can choose status codes.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, ethossvc.ErrMissingAPIKey), errors.Is(err, ethossvc.ErrMissingResource):
		return fmt.Errorf("%w: %s", utils.ErrBadRequest, err.Error())
	default:
		return err
	}
}
