package database

import (
	"context"
	"errors"
	"fmt"
)

// Collection names. They are part of the stored data layout and must not
// change.
const (
	Ventas          = "ventasGeneral"
	Cajas           = "cajasDiarias"
	StockAccesorios = "stockAccesorios"
	StockExtra      = "stockExtra"
	StockTelefonos  = "stockTelefonos"
	Pagos           = "pagos"
	Clientes        = "clientes"
	Trabajos        = "trabajos"
	Configuracion   = "configuracion"
	Usuarios        = "usuarios"

	ConfigDatos   = "datos"
	ConfigCapital = "capital"
)

var ErrNotFound = errors.New("documento no encontrado")

// DB is the store every handler reads from and writes to. It is set once by
// Connect at startup.
var DB Store

// Ref addresses negocios/{NegocioID}/{Collection}. An empty NegocioID
// addresses a root collection such as usuarios.
type Ref struct {
	NegocioID  string
	Collection string
}

func Negocio(negocioID, collection string) Ref {
	return Ref{NegocioID: negocioID, Collection: collection}
}

func Root(collection string) Ref {
	return Ref{Collection: collection}
}

func (r Ref) Path() string {
	if r.NegocioID == "" {
		return r.Collection
	}
	return fmt.Sprintf("negocios/%s/%s", r.NegocioID, r.Collection)
}

// Filter is an equality match on a string field.
type Filter struct {
	Field string
	Value string
}

// Document is a stored document whose body is decoded lazily into a model.
type Document struct {
	ID     string
	decode func(v interface{}) error
}

func (d Document) Decode(v interface{}) error {
	if d.decode == nil {
		return errors.New("documento vacío")
	}
	return d.decode(v)
}

// Store is the schema-less document store. Writes are independent: there is
// no transaction spanning more than one call and the last write wins.
type Store interface {
	List(ctx context.Context, ref Ref, filters ...Filter) ([]Document, error)
	Get(ctx context.Context, ref Ref, id string) (Document, error)
	// Set creates or fully replaces the document.
	Set(ctx context.Context, ref Ref, id string, doc interface{}) error
	// Update merges fields into an existing document.
	Update(ctx context.Context, ref Ref, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, ref Ref, id string) error
	Close(ctx context.Context) error
}

type identifiable[T any] interface {
	*T
	SetID(id string)
}

// ListAs decodes every document in ref into T, filling its id.
func ListAs[T any, PT identifiable[T]](ctx context.Context, s Store, ref Ref, filters ...Filter) ([]T, error) {
	docs, err := s.List(ctx, ref, filters...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := d.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", ref.Path(), d.ID, err)
		}
		PT(&v).SetID(d.ID)
		out = append(out, v)
	}
	return out, nil
}

// GetAs decodes a single document into T, filling its id.
func GetAs[T any, PT identifiable[T]](ctx context.Context, s Store, ref Ref, id string) (T, error) {
	var v T
	d, err := s.Get(ctx, ref, id)
	if err != nil {
		return v, err
	}
	if err := d.Decode(&v); err != nil {
		return v, fmt.Errorf("decode %s/%s: %w", ref.Path(), id, err)
	}
	PT(&v).SetID(d.ID)
	return v, nil
}
