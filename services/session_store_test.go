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

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreReturnsSameSessionWithinTTL(t *testing.T) {
	store := NewSessionStore(time.Minute)

	first := store.Get("fp-1")
	first.GetCount = 7

	second := store.Get("fp-1")
	require.Same(t, first, second)
	require.Equal(t, int64(7), second.GetCount)
	require.Equal(t, 1, store.Size())
}

func TestSessionStoreSeparatesFingerprints(t *testing.T) {
	store := NewSessionStore(time.Minute)

	first := store.Get("fp-1")
	second := store.Get("fp-2")
	require.NotSame(t, first, second)
	require.Equal(t, 2, store.Size())
}

func TestSessionStoreReplacesExpiredSession(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	first := store.Get("fp-1")
	first.GetCount = 3
	time.Sleep(20 * time.Millisecond)

	second := store.Get("fp-1")
	require.NotSame(t, first, second)
	require.Zero(t, second.GetCount)
}

func TestSessionStoreEviction(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	store.Get("fp-1")
	store.Get("fp-2")
	require.Equal(t, 2, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.evictExpired()
	require.Zero(t, store.Size())
}
