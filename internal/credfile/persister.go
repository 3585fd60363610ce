package credfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claudeutils/claude-token-refresh/internal/anthropic"
)

// Apply merges a token grant into the OAuth section stored under key. An
// empty key defaults to claudeAiOauth, created if missing. Fields the grant
// does not carry keep their prior values.
func (s *Store) Apply(key string, grant *anthropic.Grant, now time.Time) {
	if key == "" {
		key = oauthKeys[0]
	}

	var fields map[string]json.RawMessage
	if raw, ok := s.doc[key]; ok {
		_ = json.Unmarshal(raw, &fields)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}

	expiresIn := grant.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}

	setField(fields, "accessToken", grant.AccessToken)
	setField(fields, "expiresAt", now.UnixMilli()+expiresIn*1000)

	if grant.RefreshToken != "" {
		setField(fields, "refreshToken", grant.RefreshToken)
	}

	if grant.Scope != "" {
		setField(fields, "scopes", strings.Fields(grant.Scope))
	}

	if grant.Organization != nil {
		setField(fields, "organizationUuid", grant.Organization.UUID)
		setField(fields, "organizationName", grant.Organization.Name)
	}

	if grant.Account != nil {
		setField(fields, "accountUuid", grant.Account.UUID)
		setField(fields, "emailAddress", grant.Account.EmailAddress)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	s.doc[key] = raw
}

func setField(fields map[string]json.RawMessage, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	fields[key] = raw
}

// Save writes the document as read at load time to the backup path, then
// overwrites the primary file with the merged document. If the backup write
// fails the primary is left untouched.
func (s *Store) Save() error {
	backup := BackupPath(s.Path)
	if err := os.WriteFile(backup, s.orig, 0600); err != nil {
		return fmt.Errorf("failed to write backup %s: %s", backup, err)
	}

	out, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %s", s.Path, err)
	}

	if err := os.WriteFile(s.Path, out, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %s", s.Path, err)
	}

	return nil
}

// BackupPath swaps the final extension for .json.backup, so
// .credentials.json becomes .credentials.json.backup.
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json.backup"
}
