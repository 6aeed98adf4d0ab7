package models

type Cliente struct {
	ID        string `bson:"_id,omitempty" json:"id" firestore:"-"`
	Nombre    string `bson:"nombre" json:"nombre" firestore:"nombre" binding:"required"`
	Telefono  string `bson:"telefono" json:"telefono" firestore:"telefono"`
	Email     string `bson:"email" json:"email" firestore:"email" binding:"omitempty,email"`
	DNI       string `bson:"dni" json:"dni" firestore:"dni"`
	Direccion string `bson:"direccion" json:"direccion" firestore:"direccion"`
}

// Trabajo is a repair job. Its precio adds to the client's debt.
type Trabajo struct {
	ID            string  `bson:"_id,omitempty" json:"id" firestore:"-"`
	Cliente       string  `bson:"cliente" json:"cliente" firestore:"cliente" binding:"required"`
	Fecha         string  `bson:"fecha" json:"fecha" firestore:"fecha"`
	Modelo        string  `bson:"modelo" json:"modelo" firestore:"modelo"`
	Trabajo       string  `bson:"trabajo" json:"trabajo" firestore:"trabajo"`
	Clave         string  `bson:"clave,omitempty" json:"clave,omitempty" firestore:"clave,omitempty"`
	Imei          string  `bson:"imei,omitempty" json:"imei,omitempty" firestore:"imei,omitempty"`
	Observaciones string  `bson:"observaciones,omitempty" json:"observaciones,omitempty" firestore:"observaciones,omitempty"`
	Precio        float64 `bson:"precio" json:"precio" firestore:"precio" binding:"gte=0"`
	Moneda        Moneda  `bson:"moneda" json:"moneda" firestore:"moneda"`
	Estado        string  `bson:"estado" json:"estado" firestore:"estado"`
}
