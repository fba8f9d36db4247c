package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// DefaultAccessExpirySeconds is the access token lifetime used when the
// configured expiry cannot be parsed.
const DefaultAccessExpirySeconds int64 = 900

// refreshTokenBytes sizes the opaque refresh token at 512 bits.
const refreshTokenBytes = 64

var expiryPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseExpiry converts a duration shorthand like "15m", "900s" or "7d"
// into seconds. Malformed values fall back to DefaultAccessExpirySeconds.
func ParseExpiry(expiry string) int64 {
	m := expiryPattern.FindStringSubmatch(expiry)
	if m == nil {
		return DefaultAccessExpirySeconds
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return DefaultAccessExpirySeconds
	}
	switch m[2] {
	case "s":
		return n
	case "m":
		return n * 60
	case "h":
		return n * 3600
	case "d":
		return n * 86400
	}
	return DefaultAccessExpirySeconds
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTService creates a token service. accessExpiry uses the
// <number><s|m|h|d> shorthand understood by ParseExpiry.
func NewJWTService(secretKey, issuer, accessExpiry string) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		accessTTL: time.Duration(ParseExpiry(accessExpiry)) * time.Second,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateAccessToken implements domain.TokenService. The token embeds the
// user's full authorization context so verification needs no lookups.
func (j *JWTServiceImpl) GenerateAccessToken(user *domain.User, branchIDs []uint, permissions []domain.Permission) (string, error) {
	if branchIDs == nil {
		branchIDs = []uint{}
	}
	perms := make([]string, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, string(p))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         user.ID,
		"tenant_id":   user.TenantID,
		"branch_ids":  branchIDs,
		"role":        string(user.Role),
		"permissions": perms,
		"iss":         j.issuer,
		"iat":         now.Unix(),
		"exp":         now.Add(j.accessTTL).Unix(),
		"jti":         j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateRefreshToken implements domain.TokenService. Refresh tokens are
// opaque random values with no embedded claims; the database row is their
// only state.
func (j *JWTServiceImpl) GenerateRefreshToken() (string, error) {
	bytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("refresh token entropy: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GeneratePair implements domain.TokenService
func (j *JWTServiceImpl) GeneratePair(user *domain.User, branchIDs []uint, permissions []domain.Permission) (*domain.TokenPair, error) {
	access, err := j.GenerateAccessToken(user, branchIDs, permissions)
	if err != nil {
		return nil, err
	}
	refresh, err := j.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(j.accessTTL.Seconds()),
	}, nil
}

// AccessExpirySeconds implements domain.TokenService
func (j *JWTServiceImpl) AccessExpirySeconds() int64 {
	return int64(j.accessTTL.Seconds())
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	tenantID, ok := claims["tenant_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	branchIDs, err := uintSliceClaim(claims, "branch_ids")
	if err != nil {
		return nil, err
	}
	permissions, err := permissionSliceClaim(claims, "permissions")
	if err != nil {
		return nil, err
	}

	tokenClaims := &domain.TokenClaims{
		UserID:      uint(sub),
		TenantID:    uint(tenantID),
		BranchIDs:   branchIDs,
		Role:        domain.Role(role),
		Permissions: permissions,
		IssuedAt:    int64(iat),
		ExpiresAt:   int64(exp),
	}

	if jti, ok := claims["jti"].(string); ok {
		tokenClaims.TokenID = jti
	}

	return tokenClaims, nil
}

func uintSliceClaim(claims jwt.MapClaims, key string) ([]uint, error) {
	raw, exists := claims[key]
	if !exists || raw == nil {
		return []uint{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	out := make([]uint, 0, len(list))
	for _, v := range list {
		n, ok := v.(float64)
		if !ok {
			return nil, domain.ErrTokenMalformed
		}
		out = append(out, uint(n))
	}
	return out, nil
}

func permissionSliceClaim(claims jwt.MapClaims, key string) ([]domain.Permission, error) {
	raw, exists := claims[key]
	if !exists || raw == nil {
		return []domain.Permission{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	out := make([]domain.Permission, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, domain.ErrTokenMalformed
		}
		out = append(out, domain.Permission(s))
	}
	return out, nil
}
