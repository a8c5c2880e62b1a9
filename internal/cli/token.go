package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/spotbar/internal/spotify/auth"
	"github.com/tessro/spotbar/internal/spotify/client"
)

var (
	tokenRefresh bool
	tokenCheck   bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show the stored Spotify token",
	Long: `Shows where the Spotify token comes from and when it expires.

spotbar does not log in by itself. It reads the token file written by
another tool, or a bare access token from SPOTBAR_ACCESS_TOKEN.
With --check the token is sent to Spotify and the account it belongs to
is shown.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&tokenRefresh, "refresh", false, "Refresh the token now if it has expired")
	tokenCmd.Flags().BoolVar(&tokenCheck, "check", false, "Verify the token with Spotify and show its account")
	rootCmd.AddCommand(tokenCmd)
}

type tokenStatus struct {
	Present    bool       `json:"present"`
	Source     string     `json:"source,omitempty"`
	Path       string     `json:"path"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Expired    bool       `json:"expired"`
	CanRefresh bool       `json:"can_refresh"`
	Scopes     []string   `json:"scopes,omitempty"`
	Account    string     `json:"account,omitempty"`
}

func runToken(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if tokenRefresh || tokenCheck {
		if err := s.requireToken(); err != nil {
			return err
		}
	}
	if tokenRefresh {
		if err := s.client.RefreshToken(ctx); err != nil {
			return err
		}
	}

	var account string
	if tokenCheck {
		user, err := s.client.GetCurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("token check failed: %w", client.Classify(err))
		}
		account = accountName(user)
	}

	st := describeToken(s.client.Token(), s.storage)
	st.Account = account

	out := cmd.OutOrStdout()
	if JSONOutput() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	printTokenStatus(out, st, time.Now())
	return nil
}

// accountName is the user's display name, their ID if they have none, and
// their plan when Spotify reports it.
func accountName(u *client.User) string {
	name := u.DisplayName
	if name == "" {
		name = u.ID
	}
	if u.Product != "" {
		name = fmt.Sprintf("%s (%s)", name, u.Product)
	}
	return name
}

func describeToken(tok *auth.Token, storage *auth.TokenStorage) tokenStatus {
	st := tokenStatus{Path: storage.Path()}
	if tok == nil || tok.AccessToken == "" {
		return st
	}

	st.Present = true
	st.Source = "file"
	if !storage.Exists() {
		st.Source = "env"
	}
	if !tok.ExpiresAt.IsZero() {
		at := tok.ExpiresAt
		st.ExpiresAt = &at
	}
	st.Expired = tok.IsExpired()
	st.CanRefresh = tok.RefreshToken != ""
	if tok.Scope != "" {
		st.Scopes = strings.Fields(tok.Scope)
	}
	return st
}

func printTokenStatus(w io.Writer, st tokenStatus, now time.Time) {
	if !st.Present {
		fmt.Fprintf(w, "No token. Write one to %s or set %s.\n", st.Path, auth.AccessTokenEnv)
		return
	}

	switch st.Source {
	case "env":
		fmt.Fprintf(w, "Token:   from %s\n", auth.AccessTokenEnv)
	default:
		fmt.Fprintf(w, "Token:   %s\n", st.Path)
	}

	if st.ExpiresAt != nil {
		when := humanize.RelTime(*st.ExpiresAt, now, "ago", "from now")
		if st.Expired {
			fmt.Fprintf(w, "Expires: %s (expired)\n", when)
		} else {
			fmt.Fprintf(w, "Expires: %s\n", when)
		}
	}
	fmt.Fprintf(w, "Refresh: %s\n", YesNo(st.CanRefresh))
	if len(st.Scopes) > 0 {
		fmt.Fprintf(w, "Scopes:  %s\n", strings.Join(st.Scopes, " "))
	}
	if st.Account != "" {
		fmt.Fprintf(w, "Account: %s\n", st.Account)
	}
}
