package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"celustock-backend/database"
	"celustock-backend/middleware"
	"celustock-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminSecret guards the bootstrap endpoint. It is set by main.
var AdminSecret string

type usuarioInput struct {
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=6"`
	Username  string     `json:"username" binding:"required"`
	NegocioID string     `json:"negocioId"`
	Rol       models.Rol `json:"rol" binding:"omitempty,oneof=admin vendedor"`
	Theme     string     `json:"theme"`
	Language  string     `json:"language"`
}

func buscarUsuarioPorEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := database.ListAs[models.User](ctx, database.DB, database.Root(database.Usuarios), database.Filter{Field: "email", Value: email})
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func LoginHandler(c *gin.Context) {
	var creds struct {
		Email      string `json:"email" binding:"required"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "Datos inválidos")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	expiration := 24 * time.Hour
	if creds.RememberMe {
		expiration = 30 * 24 * time.Hour
	}

	user, err := buscarUsuarioPorEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		storeError(c, err, "Error al buscar usuario")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	tokenString, err := middleware.NewToken(*user, expiration)
	if err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("Error al firmar token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al iniciar sesión"})
		return
	}

	middleware.SetAuthCookie(c, tokenString, expiration)
	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "Logueado correctamente",
		"token":   tokenString,
		"user":    user,
	})
}

func LogoutHandler(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada correctamente"})
}

// AuthMeHandler runs behind AuthMiddleware.
func AuthMeHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := database.GetAs[models.User](ctx, database.DB, database.Root(database.Usuarios), c.GetString(middleware.UserIDKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"username":  user.Username,
			"negocioId": user.NegocioID,
			"rol":       user.Rol,
			"theme":     user.Theme,
			"language":  user.Language,
		},
	})
}

func registrarUsuario(c *gin.Context, input usuarioInput) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := buscarUsuarioPorEmail(ctx, email)
	if err != nil {
		storeError(c, err, "Error al buscar usuario")
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El email ya está registrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar contraseña"})
		return
	}

	user := models.User{
		ID:        newID(),
		Email:     email,
		Password:  string(hash),
		Username:  input.Username,
		NegocioID: input.NegocioID,
		Rol:       input.Rol,
		Theme:     input.Theme,
		Language:  input.Language,
	}
	if user.Theme == "" {
		user.Theme = "light"
	}
	if user.Language == "" {
		user.Language = "es"
	}

	if err := database.DB.Set(ctx, database.Root(database.Usuarios), user.ID, user); err != nil {
		storeError(c, err, "Error al registrar usuario")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado exitosamente",
		"userId":  user.ID,
	})
}

func secretoAdminValido(recibido string) bool {
	return subtle.ConstantTimeCompare([]byte(recibido), []byte(AdminSecret)) == 1
}

// AdminCreateUserHandler bootstraps users of any negocio with the
// X-Admin-Secret header. The first user of a negocio is usually its admin.
func AdminCreateUserHandler(c *gin.Context) {
	if AdminSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuración inválida: ADMIN_SECRET_KEY no definido"})
		return
	}
	if !secretoAdminValido(c.GetHeader("X-Admin-Secret")) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
		return
	}

	var input usuarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}
	if input.NegocioID == "" {
		badRequest(c, "El negocio es requerido")
		return
	}
	if input.Rol == "" {
		input.Rol = models.RolAdmin
	}
	registrarUsuario(c, input)
}

// CreateUsuarioHandler lets an admin add users to their own negocio.
func CreateUsuarioHandler(c *gin.Context) {
	var input usuarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}
	input.NegocioID = negocioID(c)
	if input.Rol == "" {
		input.Rol = models.RolVendedor
	}
	registrarUsuario(c, input)
}
