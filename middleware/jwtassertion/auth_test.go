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

package jwtassertion

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedAssertion(t *testing.T, issuer string, audience string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"iss": issuer,
		"aud": audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func callMiddleware(t *testing.T, assertion string) (*httptest.ResponseRecorder, *TokenClaims) {
	t.Helper()
	var claims *TokenClaims
	handler := JWTAuthMiddleware("Authorization")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = GetTokenClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/persons", nil)
	if assertion != "" {
		req.Header.Set("Authorization", "Bearer "+assertion)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, claims
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Run("A missing assertion header should return 401", func(t *testing.T) {
		rr, _ := callMiddleware(t, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("A malformed token should return 401", func(t *testing.T) {
		rr, _ := callMiddleware(t, "not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("A wrong issuer should return 401", func(t *testing.T) {
		rr, _ := callMiddleware(t, signedAssertion(t, "someone-else", "localhost"))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("A wrong audience should return 401", func(t *testing.T) {
		rr, _ := callMiddleware(t, signedAssertion(t, "Ethos Integration Service Local", "other-service"))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("A local assertion with allowed issuer and audience should pass", func(t *testing.T) {
		rr, claims := callMiddleware(t, signedAssertion(t, "Ethos Integration Service Local", "localhost"))
		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, claims)
		require.Equal(t, "user-1", claims.Sub)
	})
}

func TestValidateIssuer(t *testing.T) {
	require.NoError(t, validateIssuer("issuer-a", []string{"issuer-a", "issuer-b"}))
	require.NoError(t, validateIssuer(" issuer-a ", []string{"issuer-a"}))
	require.Error(t, validateIssuer("issuer-c", []string{"issuer-a", "issuer-b"}))
	require.Error(t, validateIssuer("issuer-a", nil))
}

func TestValidateAudience(t *testing.T) {
	require.NoError(t, validateAudience(jwt.ClaimStrings{"svc-a"}, []string{"svc-a"}))
	require.NoError(t, validateAudience(jwt.ClaimStrings{"svc-b", "svc-a"}, []string{"svc-a"}))
	require.Error(t, validateAudience(jwt.ClaimStrings{"svc-c"}, []string{"svc-a"}))
	require.Error(t, validateAudience(nil, []string{"svc-a"}))
}
