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

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wso2/ethos-integration-service/clients/ethossvc"
	"github.com/wso2/ethos-integration-service/middleware/logger"
	"github.com/wso2/ethos-integration-service/models"
	"github.com/wso2/ethos-integration-service/services"
	"github.com/wso2/ethos-integration-service/utils"
)

// APIKeyHeader is the request header carrying the Ethos API key for
// proxied resource and graphql calls.
const APIKeyHeader = "X-Ethos-Api-Key"

// RootOverrideHeader optionally overrides the configured integration root.
const RootOverrideHeader = "X-Ethos-Root-Override"

// ProxyController defines the interface for proxied provider operations
type ProxyController interface {
	// ResolveToken handles the provider token exchange request
	ResolveToken(w http.ResponseWriter, r *http.Request)
	// GetResource handles a proxied resource read
	GetResource(w http.ResponseWriter, r *http.Request)
	// CreateResource handles a proxied resource create
	CreateResource(w http.ResponseWriter, r *http.Request)
	// GraphQL handles a proxied GraphQL query
	GraphQL(w http.ResponseWriter, r *http.Request)
}

type proxyController struct {
	proxyService services.ProxyService
}

// NewProxyController creates a new ProxyController instance
func NewProxyController(proxyService services.ProxyService) ProxyController {
	return &proxyController{
		proxyService: proxyService,
	}
}

// ResolveToken handles POST /token
func (c *proxyController) ResolveToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var tokenRequest models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&tokenRequest); err != nil {
		log.Error("ResolveToken: failed to parse request body", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokenResponse, err := c.proxyService.ResolveToken(ctx, tokenRequest)
	if err != nil {
		log.Error("ResolveToken: failed to resolve token", "error", err)
		writeProxyError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, tokenResponse)
}

// GetResource handles GET /resources/{resource} and /resources/{resource}/{id}
func (c *proxyController) GetResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	apiKey := r.Header.Get(APIKeyHeader)
	if apiKey == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "missing header: "+APIKeyHeader)
		return
	}

	query := r.URL.Query()
	params := services.GetResourceParams{
		APIKey:       apiKey,
		RootOverride: r.Header.Get(RootOverrideHeader),
		Resource:     r.PathValue("resource"),
		ID:           r.PathValue("id"),
		Criteria:     query.Get("criteria"),
		Offset:       query.Get("offset"),
		Limit:        query.Get("limit"),
	}

	log.Info("GetResource request received",
		"resource", params.Resource,
		"hasId", params.ID != "")

	resp, err := c.proxyService.GetResource(ctx, params)
	if err != nil {
		log.Error("GetResource: proxied call failed", "resource", params.Resource, "error", err)
		writeProxyError(w, err)
		return
	}

	writeResourceResponse(w, http.StatusOK, resp)
}

// CreateResource handles POST /resources/{resource}
func (c *proxyController) CreateResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	apiKey := r.Header.Get(APIKeyHeader)
	if apiKey == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "missing header: "+APIKeyHeader)
		return
	}

	var data any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Error("CreateResource: failed to parse request body", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := services.CreateResourceParams{
		APIKey:       apiKey,
		RootOverride: r.Header.Get(RootOverrideHeader),
		Resource:     r.PathValue("resource"),
		Data:         data,
	}

	log.Info("CreateResource request received", "resource", params.Resource)

	resp, err := c.proxyService.CreateResource(ctx, params)
	if err != nil {
		log.Error("CreateResource: proxied call failed", "resource", params.Resource, "error", err)
		writeProxyError(w, err)
		return
	}

	writeResourceResponse(w, http.StatusCreated, resp)
}

// GraphQL handles POST /graphql
func (c *proxyController) GraphQL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var graphqlRequest models.GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&graphqlRequest); err != nil {
		log.Error("GraphQL: failed to parse request body", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if graphqlRequest.APIKey == "" {
		graphqlRequest.APIKey = r.Header.Get(APIKeyHeader)
	}

	log.Info("GraphQL request received")

	resp, err := c.proxyService.GraphQL(ctx, graphqlRequest)
	if err != nil {
		log.Error("GraphQL: proxied call failed", "error", err)
		writeProxyError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, resp)
}

// writeResourceResponse writes a proxied GET or POST outcome. A contained
// provider failure is reported as 502 with the failure and the provider
// status in the body; the session counters still reflect the attempt.
func writeResourceResponse(w http.ResponseWriter, successStatus int, resp *models.ResourceResponse) {
	status := successStatus
	if resp.Error != "" {
		status = http.StatusBadGateway
	}
	utils.WriteSuccessResponse(w, status, resp)
}

// writeProxyError maps service errors onto response status codes
func writeProxyError(w http.ResponseWriter, err error) {
	var authErr *ethossvc.AuthenticationError
	var intErr *ethossvc.IntegrationError

	switch {
	case errors.Is(err, utils.ErrBadRequest), errors.Is(err, utils.ErrInvalidInput):
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrResourceNotAllowed):
		utils.WriteErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.As(err, &authErr):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &intErr):
		utils.WriteErrorResponse(w, http.StatusBadGateway, err.Error())
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to reach provider")
	}
}
