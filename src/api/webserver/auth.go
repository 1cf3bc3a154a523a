package webserver

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Auth struct {
	rdb      *redis.Client
	secret   []byte
	modToken string
}

func NewAuth(rdb *redis.Client, secret []byte, modToken string) Auth {
	return Auth{rdb: rdb, secret: secret, modToken: modToken}
}

// Login exchanges the shared moderator token for a short-lived JWT.
func (a Auth) Login(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if a.modToken == "" ||
		subtle.ConstantTimeCompare([]byte(req.Token), []byte(a.modToken)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid token"})
		return
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "moderator",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}
