package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

type contextKey string

const clientKey contextKey = "client"

const (
	CookieName = "session_token"
	TokenTTL   = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("auth: invalid token")

// Authenv checks API keys and session tokens. A zero JWTkey disables
// authentication.
type Authenv struct {
	JWTkey  []byte
	KeyHash []byte // bcrypt hash of the accepted API key
}

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type Loginrequest struct {
	Key    string `json:"key"`
	Client string `json:"client"`
}

type LoginResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

// Rate limiting middleware
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Key on the host only so reconnecting from a new port shares a bucket
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		limiter := i.getLimiter(ip)
		if !limiter.Allow() {
			http.Error(w, "Too Many Requests. Try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HashKey returns the bcrypt hash stored in api_key_hash.
func HashKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) Enabled() bool { return len(env.JWTkey) > 0 }

// ClientFromContext returns the token subject set by AuthMiddleware.
func ClientFromContext(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(clientKey).(string)
	return c, ok
}

func (env *Authenv) issueToken(client string, now time.Time) (string, time.Time, error) {
	exp := now.Add(TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   client,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString(env.JWTkey)
	return s, exp, err
}

func (env *Authenv) parseToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		// verify signing method and return key
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	})
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// tokenFromRequest prefers an Authorization: Bearer header over the cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if t, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(t)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !env.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		client, err := env.parseToken(tokenString)
		if err != nil {
			log.Println("auth: rejecting token:", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), clientKey, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (env *Authenv) addCookie(w http.ResponseWriter, token string, expiration time.Time) {
	cookie := http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, &cookie)
}

// LoginHandler exchanges the API key for a session token, returned both
// as a cookie and in the body for Bearer use.
func (env *Authenv) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !env.Enabled() {
		http.Error(w, "Authentication disabled", http.StatusNotFound)
		return
	}
	var req Loginrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Key == "" {
		http.Error(w, "API key required", http.StatusBadRequest)
		return
	}
	if err := bcrypt.CompareHashAndPassword(env.KeyHash, []byte(req.Key)); err != nil {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
		return
	}
	client := strings.TrimSpace(req.Client)
	if client == "" {
		client = "api"
	}

	token, exp, err := env.issueToken(client, time.Now())
	if err != nil {
		log.Println("auth: signing token:", err)
		http.Error(w, "Token error", http.StatusInternalServerError)
		return
	}
	env.addCookie(w, token, exp)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token, Expires: exp})
}
