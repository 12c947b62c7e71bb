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

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/wso2/ethos-integration-service/models"
)

// MaxResourceNameLength bounds Ethos resource names passed through the proxy.
const MaxResourceNameLength = 100

var resourceNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)

// ValidateResourceName checks that an Ethos resource name is a lowercase
// hyphenated identifier (for example "student-academic-programs") so it can
// be embedded into a provider URL path safely.
func ValidateResourceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: resource name cannot be empty", ErrInvalidInput)
	}
	if len(name) > MaxResourceNameLength {
		return fmt.Errorf("%w: resource name must be at most %d characters, got %d",
			ErrInvalidInput, MaxResourceNameLength, len(name))
	}
	if len(name) == 1 {
		if name[0] < 'a' || name[0] > 'z' {
			return fmt.Errorf("%w: resource name must start with an alphabetic character", ErrInvalidInput)
		}
		return nil
	}
	if !resourceNamePattern.MatchString(name) {
		return fmt.Errorf("%w: resource name must contain only lowercase alphanumeric characters or '-', "+
			"start with a letter and end with an alphanumeric character", ErrInvalidInput)
	}
	return nil
}

// WriteSuccessResponse writes a successful API response
func WriteSuccessResponse[T any](w http.ResponseWriter, statusCode int, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if statusCode == http.StatusNoContent {
		return
	}
	_ = json.NewEncoder(w).Encode(data) // Ignore encoding errors for response
}

// WriteErrorResponse writes an error API response
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	errPayload := &models.ErrorResponse{
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(errPayload) // Ignore encoding errors for response
}
