package models

// CajaDiaria is the closed register of one calendar day, stored under
// negocios/{negocioID}/cajasDiarias with the date (YYYY-MM-DD) as id.
// Once written it is never updated.
type CajaDiaria struct {
	ID                 string  `bson:"_id,omitempty" json:"id" firestore:"-"`
	Fecha              string  `bson:"fecha" json:"fecha" firestore:"fecha"`
	TotalVentas        float64 `bson:"totalVentas" json:"totalVentas" firestore:"totalVentas"`
	Efectivo           float64 `bson:"efectivo" json:"efectivo" firestore:"efectivo"`
	Transferencia      float64 `bson:"transferencia" json:"transferencia" firestore:"transferencia"`
	CuentaCorriente    float64 `bson:"cuentaCorriente" json:"cuentaCorriente" firestore:"cuentaCorriente"`
	EfectivoEnCaja     float64 `bson:"efectivoEnCaja" json:"efectivoEnCaja" firestore:"efectivoEnCaja"`
	Diferencia         float64 `bson:"diferencia" json:"diferencia" firestore:"diferencia"`
	TotalVentasUSD     float64 `bson:"totalVentasUSD" json:"totalVentasUSD" firestore:"totalVentasUSD"`
	EfectivoUSD        float64 `bson:"efectivoUSD" json:"efectivoUSD" firestore:"efectivoUSD"`
	TransferenciaUSD   float64 `bson:"transferenciaUSD" json:"transferenciaUSD" firestore:"transferenciaUSD"`
	CuentaCorrienteUSD float64 `bson:"cuentaCorrienteUSD" json:"cuentaCorrienteUSD" firestore:"cuentaCorrienteUSD"`
	EfectivoEnCajaUSD  float64 `bson:"efectivoEnCajaUSD" json:"efectivoEnCajaUSD" firestore:"efectivoEnCajaUSD"`
	DiferenciaUSD      float64 `bson:"diferenciaUSD" json:"diferenciaUSD" firestore:"diferenciaUSD"`
	CerradaPor         string  `bson:"cerradaPor,omitempty" json:"cerradaPor,omitempty" firestore:"cerradaPor,omitempty"`
	Timestamp          int64   `bson:"timestamp" json:"timestamp" firestore:"timestamp"`
}
