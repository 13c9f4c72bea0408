package service

import (
	"context"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/pkg/errors"
	"github.com/spendly/api/internal/server"
)

// AuthService owns the Clerk integration: it configures the SDK with the
// secret key and provides the identity resolver and profile fetcher the
// record operations depend on.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}

// Identity returns the resolver backed by Clerk session claims.
func (a *AuthService) Identity() IdentityResolver {
	return clerkIdentityResolver{}
}

// Profiles returns the profile fetcher backed by the Clerk user API.
func (a *AuthService) Profiles() ProfileFetcher {
	return clerkProfileFetcher{}
}

// clerkIdentityResolver reads the session claims the Clerk middleware
// stored in the request context. The subject is the Clerk user id.
type clerkIdentityResolver struct{}

func (clerkIdentityResolver) ResolveIdentity(ctx context.Context) (string, bool) {
	claims, ok := clerk.SessionClaimsFromContext(ctx)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// clerkProfileFetcher loads user profile data from the Clerk backend API.
type clerkProfileFetcher struct{}

func (clerkProfileFetcher) FetchProfile(ctx context.Context, clerkUserID string) (*Profile, error) {
	usr, err := clerkuser.Get(ctx, clerkUserID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching clerk user")
	}
	if usr == nil {
		return nil, errors.New("clerk returned no user")
	}

	profile := &Profile{}

	// Prefer the primary email address, fall back to the first one.
	if len(usr.EmailAddresses) > 0 {
		profile.Email = usr.EmailAddresses[0].EmailAddress
		if usr.PrimaryEmailAddressID != nil {
			for _, addr := range usr.EmailAddresses {
				if addr.ID == *usr.PrimaryEmailAddressID {
					profile.Email = addr.EmailAddress
					break
				}
			}
		}
	}

	// Full name when both parts exist, first name otherwise.
	var parts []string
	if usr.FirstName != nil && *usr.FirstName != "" {
		parts = append(parts, *usr.FirstName)
	}
	if usr.LastName != nil && *usr.LastName != "" {
		parts = append(parts, *usr.LastName)
	}
	profile.Name = strings.Join(parts, " ")

	if usr.ImageURL != nil {
		profile.ImageURL = *usr.ImageURL
	}

	return profile, nil
}
