package auth

import (
	"context"
	"strconv"
	"strings"

	"service-plus/internal/apperr"
	"service-plus/pkg/config"
	"service-plus/pkg/database"
	"service-plus/pkg/jwtutil"
	"service-plus/pkg/password"

	"go.uber.org/zap"
)

// Executor is the slice of the statement executor this package needs.
type Executor interface {
	Query(ctx context.Context, target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error)
}

// Resolver maps a client id to its physical database name.
type Resolver interface {
	ResolveDatabaseName(ctx context.Context, clientID int64) (string, error)
}

// Authenticator authenticates credentials against the correct tenant's user
// table (or the configured superadmin) and issues the signed token that
// carries the resolved tenant context.
type Authenticator struct {
	exec     Executor
	resolver Resolver
	jwt      *jwtutil.JWTUtil
	cfg      *config.AuthConfig
	log      *zap.Logger
}

// NewAuthenticator wires the authenticator's collaborators.
func NewAuthenticator(exec Executor, resolver Resolver, jwt *jwtutil.JWTUtil, cfg *config.AuthConfig, log *zap.Logger) *Authenticator {
	return &Authenticator{exec: exec, resolver: resolver, jwt: jwt, cfg: cfg, log: log}
}

// LoginResult is the login payload served to the client.
type LoginResult struct {
	AccessToken  string   `json:"access_token"`
	AccessRights []string `json:"access_rights"`
	Email        string   `json:"email"`
	FullName     string   `json:"full_name"`
	Mobile       string   `json:"mobile"`
	RoleName     string   `json:"role_name"`
	UserType     string   `json:"user_type"`
}

// Login authenticates identity/secret for the given client and returns the
// signed token plus profile fields. Unknown tenant, unknown identity and
// wrong secret all fail with the same invalid-credentials kind; only a
// known-but-deactivated user gets the distinct forbidden kind.
func (a *Authenticator) Login(ctx context.Context, clientID int64, identity, secret string) (*LoginResult, error) {
	// [1] Superadmin bypass: no tenant database involved.
	if identity == a.cfg.SuperadminUsername {
		if a.cfg.SuperadminPasswordHash == "" || !password.Verify(secret, a.cfg.SuperadminPasswordHash) {
			a.log.Warn("Login failed", zap.String("reason", "superadmin secret mismatch"))
			return nil, apperr.InvalidCredentials()
		}

		principal := &Principal{
			Subject:      SuperAdminSubject,
			UserType:     UserTypeSuperAdmin,
			ClientID:     clientID,
			AccessRights: []string{},
		}
		token, err := a.issueToken(principal)
		if err != nil {
			return nil, err
		}

		a.log.Info(apperr.MsgLoginSuccessful, zap.String("user_type", UserTypeSuperAdmin))
		return &LoginResult{
			AccessToken:  token,
			AccessRights: []string{},
			FullName:     "Super Admin",
			UserType:     UserTypeSuperAdmin,
		}, nil
	}

	// [2] Resolve the tenant. Not-found stays indistinguishable from a bad
	// secret; connectivity and query failures pass through unchanged.
	dbName, err := a.resolver.ResolveDatabaseName(ctx, clientID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			a.log.Warn("Login failed", zap.Int64("client_id", clientID),
				zap.String("reason", "unknown or inactive client"))
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}
	if dbName == "" {
		// Active but unprovisioned tenant: nothing to authenticate against.
		a.log.Warn("Login failed", zap.Int64("client_id", clientID),
			zap.String("reason", "client has no database"))
		return nil, apperr.InvalidCredentials()
	}

	// [3] Look the identity up inside the tenant's own database.
	rows, err := a.exec.Query(ctx, database.Tenant(dbName), SecuritySchema, stmtUserByIdentity,
		map[string]interface{}{"identity": identity})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		a.log.Warn("Login failed", zap.Int64("client_id", clientID),
			zap.String("reason", "unknown identity"))
		return nil, apperr.InvalidCredentials()
	}
	user := rows[0]

	// [4] A deactivated user already proved tenant knowledge, so the
	// forbidden kind is deliberately distinguishable here.
	if !user.Bool("is_active") {
		a.log.Warn("Login failed", zap.Int64("client_id", clientID),
			zap.Int64("user_id", user.Int("id")),
			zap.String("reason", "user deactivated"))
		return nil, apperr.Forbidden()
	}

	// [5] Verify the secret.
	if !password.Verify(secret, user.String("password_hash")) {
		a.log.Warn("Login failed", zap.Int64("client_id", clientID),
			zap.Int64("user_id", user.Int("id")),
			zap.String("reason", "secret mismatch"))
		return nil, apperr.InvalidCredentials()
	}

	// [6] Classify and build the principal.
	userType := UserTypeUser
	if user.Bool("is_admin") {
		userType = UserTypeAdmin
	}

	principal := &Principal{
		Subject:      strconv.FormatInt(user.Int("id"), 10),
		UserType:     userType,
		ClientID:     clientID,
		DBName:       dbName,
		AccessRights: splitAccessRights(user.String("access_rights")),
	}

	// [7] Encode the principal into the token.
	token, err := a.issueToken(principal)
	if err != nil {
		return nil, err
	}

	a.log.Info(apperr.MsgLoginSuccessful,
		zap.String("subject", principal.Subject),
		zap.Int64("client_id", clientID),
		zap.String("user_type", userType))

	return &LoginResult{
		AccessToken:  token,
		AccessRights: principal.AccessRights,
		Email:        user.String("email"),
		FullName:     user.String("full_name"),
		Mobile:       user.String("mobile"),
		RoleName:     user.String("role_name"),
		UserType:     userType,
	}, nil
}

func (a *Authenticator) issueToken(p *Principal) (string, error) {
	token, err := a.jwt.Generate(p.Subject, p.UserType, p.ClientID, p.DBName)
	if err != nil {
		a.log.Error("Failed to generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func splitAccessRights(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}
