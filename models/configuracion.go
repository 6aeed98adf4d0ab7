package models

// Configuracion lives at negocios/{negocioID}/configuracion/datos.
type Configuracion struct {
	NombreNegocio string  `bson:"nombreNegocio" json:"nombreNegocio" firestore:"nombreNegocio"`
	Direccion     string  `bson:"direccion" json:"direccion" firestore:"direccion"`
	Telefono      string  `bson:"telefono" json:"telefono" firestore:"telefono"`
	Cuit          string  `bson:"cuit" json:"cuit" firestore:"cuit"`
	Cotizacion    float64 `bson:"cotizacion" json:"cotizacion" firestore:"cotizacion" binding:"gte=0"`
}

// Capital lives at negocios/{negocioID}/configuracion/capital and only
// holds the manually entered cash figures.
type Capital struct {
	EfectivoUSD float64 `bson:"efectivoUSD" json:"efectivoUSD" firestore:"efectivoUSD"`
	EfectivoARS float64 `bson:"efectivoARS" json:"efectivoARS" firestore:"efectivoARS"`
}
