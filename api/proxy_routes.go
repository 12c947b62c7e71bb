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

package api

import (
	"net/http"

	"github.com/wso2/ethos-integration-service/controllers"
)

// registerProxyRoutes registers the provider proxy API routes
func registerProxyRoutes(mux *http.ServeMux, ctrl controllers.ProxyController) {
	// Token exchange endpoint
	mux.HandleFunc("POST /token", ctrl.ResolveToken)

	// Resource proxy endpoints
	mux.HandleFunc("GET /resources/{resource}", ctrl.GetResource)
	mux.HandleFunc("GET /resources/{resource}/{id}", ctrl.GetResource)
	mux.HandleFunc("POST /resources/{resource}", ctrl.CreateResource)

	// GraphQL proxy endpoint
	mux.HandleFunc("POST /graphql", ctrl.GraphQL)
}
