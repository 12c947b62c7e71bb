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
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wso2/ethos-integration-service/clients/ethossvc"
)

// sessionEntry tracks a provider session and its last use
type sessionEntry struct {
	session  *ethossvc.Session
	lastUsed time.Time
}

// SessionStore keeps one provider session per API key fingerprint so token
// caches and call counters survive across requests. Idle sessions are
// evicted after the TTL, bounding what would otherwise grow with every
// distinct key.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

// NewSessionStore creates a session store with the given idle TTL
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}
}

// Get returns the session for a fingerprint, creating one if absent or
// expired. The returned session is shared by concurrent requests for the
// same key; the client layer tolerates those races.
func (s *SessionStore) Get(fingerprint string) *ethossvc.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[fingerprint]
	if exists && time.Since(entry.lastUsed) <= s.ttl {
		entry.lastUsed = time.Now()
		return entry.session
	}

	session := &ethossvc.Session{}
	s.sessions[fingerprint] = &sessionEntry{session: session, lastUsed: time.Now()}
	return session
}

// Size returns the current number of stored sessions
func (s *SessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictExpired removes sessions idle beyond the TTL
func (s *SessionStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for fingerprint, entry := range s.sessions {
		if time.Since(entry.lastUsed) > s.ttl {
			delete(s.sessions, fingerprint)
			count++
		}
	}
	if count > 0 {
		slog.Info("evicted expired provider sessions", slog.Int("count", count))
	}
}

// StartCleanup sweeps expired sessions on the given interval until the
// context is cancelled.
func (s *SessionStore) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.evictExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
}
