package db

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Top-level collections and sub-collections of the keyspace.
const (
	CollectionPointsCollection = "ecopontos"
	SuggestionsCollection      = "sugestoes_ecopontos"
	UsersCollection            = "users"
	RatingsSubcollection       = "avaliacoes"
)

const maxKeyBytes = 768

// ErrInvalidKey is returned when an identifier cannot be used as a keyspace segment.
var ErrInvalidKey = errors.New("invalid key")

// ValidateKey checks that key is a single legal path segment.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if len(key) > maxKeyBytes {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidKey, maxKeyBytes)
	}
	if strings.ContainsAny(key, "/.#$[]") {
		return fmt.Errorf("%w: %q contains one of / . # $ [ ]", ErrInvalidKey, key)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidKey, key)
		}
	}
	return nil
}

// EntityPath returns collection/id.
func EntityPath(collection, id string) string {
	return collection + "/" + id
}

// SubEntityPath returns collection/id/sub/subID.
func SubEntityPath(collection, id, sub, subID string) string {
	return EntityPath(collection, id) + "/" + sub + "/" + subID
}

// SubcollectionPath returns collection/id/sub.
func SubcollectionPath(collection, id, sub string) string {
	return EntityPath(collection, id) + "/" + sub
}

// NewID returns a random UUID for caller-assigned identifiers.
func NewID() string {
	return uuid.NewString()
}

const pushKeyAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// PushKeyGenerator produces 20-character keys in the same format the database assigns
// on push: 8 characters of millisecond timestamp followed by 12 random characters.
// Keys sort lexicographically in creation order, including keys generated within the
// same millisecond.
type PushKeyGenerator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTime int64
	lastRand [12]int
}

// NewPushKeyGenerator creates a generator reading the given clock (time.Now when nil).
func NewPushKeyGenerator(now func() time.Time) *PushKeyGenerator {
	if now == nil {
		now = time.Now
	}
	return &PushKeyGenerator{now: now}
}

// Next returns a fresh push key.
func (g *PushKeyGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UnixMilli()
	if ts <= g.lastTime {
		// Same (or earlier) millisecond: keep the previous timestamp and bump the
		// random suffix so ordering holds.
		ts = g.lastTime
		i := len(g.lastRand) - 1
		for ; i >= 0 && g.lastRand[i] == len(pushKeyAlphabet)-1; i-- {
			g.lastRand[i] = 0
		}
		if i >= 0 {
			g.lastRand[i]++
		}
	} else {
		for i := range g.lastRand {
			g.lastRand[i] = rand.IntN(len(pushKeyAlphabet))
		}
	}
	g.lastTime = ts

	var key [20]byte
	for i := 7; i >= 0; i-- {
		key[i] = pushKeyAlphabet[ts%int64(len(pushKeyAlphabet))]
		ts /= int64(len(pushKeyAlphabet))
	}
	for i, r := range g.lastRand {
		key[8+i] = pushKeyAlphabet[r]
	}
	return string(key[:])
}

var defaultPushKeys = NewPushKeyGenerator(nil)

// NewPushKey returns a push key from the process-wide generator.
func NewPushKey() string {
	return defaultPushKeys.Next()
}
