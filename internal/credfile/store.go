package credfile

import (
	"encoding/json"
	"fmt"
	"os"
)

// oauthKeys are probed in priority order. The order is load-bearing: when
// more than one key is present only the first match is used.
var oauthKeys = []string{"claudeAiOauth", "oauthAccount", "oauth"}

// Store holds a credential document between load and save. The document is
// kept as raw JSON per top-level key so that fields the merge never touches
// survive a round trip unchanged.
type Store struct {
	Path string

	orig []byte
	doc  map[string]json.RawMessage
}

func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %s", path, err)
	}

	return &Store{
		Path: path,
		orig: data,
		doc:  doc,
	}, nil
}

// OAuthSection is the sub-object of the document that holds the token pair.
// Key records which top-level key it was found under.
type OAuthSection struct {
	Key string

	fields map[string]json.RawMessage
}

// OAuth probes the recognized top-level keys and returns the first
// sub-object that contains a refreshToken key.
func (s *Store) OAuth() (OAuthSection, bool) {
	for _, key := range oauthKeys {
		raw, ok := s.doc[key]
		if !ok {
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}

		if _, ok := fields["refreshToken"]; !ok {
			continue
		}

		return OAuthSection{Key: key, fields: fields}, true
	}

	return OAuthSection{}, false
}

func (o OAuthSection) RefreshToken() string {
	var token string
	_ = json.Unmarshal(o.fields["refreshToken"], &token)
	return token
}

// ExpiresAt returns the stored expiry in epoch milliseconds, or 0 when the
// field is absent or not a number.
func (o OAuthSection) ExpiresAt() int64 {
	var at int64
	_ = json.Unmarshal(o.fields["expiresAt"], &at)
	return at
}
