package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uplifts-neel/lab-inventory-managment/models"
	"github.com/uplifts-neel/lab-inventory-managment/utils"
)

// Identity is the authenticated caller, resolved by whichever TokenVerifier
// the server was started with and carried in the request context.
type Identity struct {
	UserID primitive.ObjectID
	Name   string
	Role   string
}

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier resolves a bearer token to an identity. The strategy is
// chosen once at startup; handlers never see which one is in play.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

var errInvalidToken = errors.New("invalid or expired token")

// JWTVerifier validates HS256 tokens and loads the referenced user so that
// deleted users lose access immediately.
type JWTVerifier struct {
	Users *mongo.Collection
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := utils.ValidateJWT(token)
	if err != nil || claims == nil {
		return nil, errInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, errInvalidToken
	}

	var user models.User
	if err := v.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, errInvalidToken
	}

	return &Identity{UserID: user.ID, Name: user.Name, Role: user.Role}, nil
}

// MockVerifier accepts exactly one development token and resolves it to a
// fixed admin identity. It is wired in only when AUTH_MODE=mock.
type MockVerifier struct {
	Token    string
	Identity Identity
}

// NewMockVerifier builds the demo-admin verifier the development frontend
// expects.
func NewMockVerifier(token string) *MockVerifier {
	id, _ := primitive.ObjectIDFromHex("60d5ec49f8c7d10015f8e123")
	return &MockVerifier{
		Token:    token,
		Identity: Identity{UserID: id, Name: "Demo Admin", Role: models.RoleAdmin},
	}
}

func (v *MockVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token != v.Token {
		return nil, errInvalidToken
	}
	ident := v.Identity
	return &ident, nil
}

// Auth returns the bearer-token middleware for the given verifier.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// WebSocket clients pass the token as a query parameter because
			// browsers cannot set headers on upgrade requests.
			token := ""
			authHeader := r.Header.Get("Authorization")
			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				token = strings.TrimPrefix(authHeader, "Bearer ")
			case r.Header.Get("Upgrade") == "websocket":
				token = r.URL.Query().Get("token")
			}

			if token == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			ident, err := verifier.Verify(r.Context(), token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// WithIdentity stores the identity in ctx. Exposed for handler tests.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom retrieves the authenticated identity, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*Identity)
	return ident, ok
}
