package models

// Pago is a client payment. It is linked to a sale only through the loose
// cliente / idVenta fields.
type Pago struct {
	ID      string  `bson:"_id,omitempty" json:"id" firestore:"-"`
	Cliente string  `bson:"cliente" json:"cliente" firestore:"cliente" binding:"required"`
	Fecha   string  `bson:"fecha" json:"fecha" firestore:"fecha"`
	Monto   float64 `bson:"monto" json:"monto" firestore:"monto" binding:"gt=0"`
	Moneda  Moneda  `bson:"moneda" json:"moneda" firestore:"moneda" binding:"required,oneof=ARS USD"`
	Forma   string  `bson:"forma" json:"forma" firestore:"forma"`
	Destino string  `bson:"destino" json:"destino" firestore:"destino"`
	IDVenta string  `bson:"idVenta,omitempty" json:"idVenta,omitempty" firestore:"idVenta,omitempty"`
}
