package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"celustock-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDKey    = "userId"
	NegocioIDKey = "negocioId"
	RolKey       = "rol"
)

var (
	secretKey  []byte
	production bool
)

func LoadSecret(secret string, isProduction bool) {
	secretKey = []byte(secret)
	production = isProduction
}

func GetSecret() []byte {
	return secretKey
}

type Claims struct {
	UserID    string     `json:"userId"`
	NegocioID string     `json:"negocioId"`
	Rol       models.Rol `json:"rol"`
	jwt.RegisteredClaims
}

func NewToken(u models.User, duration time.Duration) (string, error) {
	claims := Claims{
		UserID:    u.ID,
		NegocioID: u.NegocioID,
		Rol:       u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(GetSecret())
}

func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return GetSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido o expirado")
	}
	if claims.UserID == "" || claims.NegocioID == "" {
		return nil, errors.New("claims inválidos")
	}
	return claims, nil
}

// TokenFromRequest reads "Authorization: Bearer <token>" and falls back to
// the token cookie.
func TokenFromRequest(c *gin.Context) string {
	if parts := strings.Split(c.GetHeader("Authorization"), " "); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	token, _ := c.Cookie("token")
	return token
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado: token ausente"})
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(NegocioIDKey, claims.NegocioID)
		c.Set(RolKey, string(claims.Rol))
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RolKey) != string(models.RolAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso restringido a administradores"})
			return
		}
		c.Next()
	}
}

func SetAuthCookie(c *gin.Context, tokenString string, duration time.Duration) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie("token", tokenString, int(duration.Seconds()), "/", "", production, true)
}

func ClearAuthCookie(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", production, true)
}
