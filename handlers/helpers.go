package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"celustock-backend/database"
	"celustock-backend/middleware"
	"celustock-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var zonaHoraria = time.FixedZone("ART", -3*60*60)

// now is replaced in tests.
var now = func() time.Time { return time.Now().In(zonaHoraria) }

func dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func negocioID(c *gin.Context) string {
	return c.GetString(middleware.NegocioIDKey)
}

func negocioRef(c *gin.Context, collection string) database.Ref {
	return database.Negocio(negocioID(c), collection)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// storeError answers 404 for missing documents and 500 for everything else.
func storeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msg + ": no encontrado"})
		return
	}
	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("negocio", negocioID(c)).
		Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func configuracion(ctx context.Context, c *gin.Context) (models.Configuracion, error) {
	cfg, err := database.GetAs[models.Configuracion](ctx, database.DB, negocioRef(c, database.Configuracion), database.ConfigDatos)
	if errors.Is(err, database.ErrNotFound) {
		return models.Configuracion{}, nil
	}
	return cfg, err
}

func parseISO(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, zonaHoraria)
}
